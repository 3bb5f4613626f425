package graph

import (
	"context"
	"time"

	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/logging"
)

// DefaultStepBudget is used when Run is called with a non-positive budget.
const DefaultStepBudget = 100

// Options holds dependency and configuration overrides passed to New().
type Options struct {
	// NodeTimeout bounds each node invocation. Zero disables the per-node
	// deadline; the run context still applies.
	NodeTimeout time.Duration

	// TranscriptStore persists finished run results when non-nil.
	TranscriptStore core.TranscriptStore

	// Logger receives one record per node invocation and per run
	// termination. Defaults to the no-op logger.
	Logger logging.Logger

	// Hooks receives lifecycle notifications during traversal. A nil
	// registry disables hooks entirely.
	Hooks *Hooks
}

// Engine drives step-by-step traversal of a compiled graph: it resolves the
// executor bound to the current node, invokes it with the current message and
// the accumulated run state, records the produced message and follows the
// matching edge until End, budget exhaustion or a fatal defect.
//
// The traversal loop is single-threaded and cooperative within one run.
// Multiple independent runs against the same Engine may execute concurrently;
// each run owns its transcript and step counter, and agent executors
// serialize their own state internally.
type Engine struct {
	graph       *Graph
	nodeTimeout time.Duration
	store       core.TranscriptStore
	logger      logging.Logger
	hooks       *Hooks
}

// New constructs an Engine around a compiled graph.
func New(g *Graph, optFns ...func(o *Options)) *Engine {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		graph:       g,
		nodeTimeout: opts.NodeTimeout,
		store:       opts.TranscriptStore,
		logger:      opts.Logger,
		hooks:       opts.Hooks,
	}
}

// Graph returns the compiled graph this engine executes.
func (e *Engine) Graph() *Graph { return e.graph }

// Run executes the traversal loop starting from the entry node with the
// given initial message. stepBudget caps the number of node invocations;
// non-positive values fall back to DefaultStepBudget.
//
// Run always returns a non-nil result carrying the transcript accumulated so
// far and a termination kind. The error return is non-nil only for
// TerminationFatal runs and mirrors result.Err; callers are never left with
// a half-built result.
func (e *Engine) Run(ctx context.Context, initial core.Message, stepBudget int) (*core.RunResult, error) {
	if stepBudget <= 0 {
		stepBudget = DefaultStepBudget
	}

	runID := core.NewID()
	run := core.NewRunState(runID, e.graph.EntryPoint())
	run.Seed(initial)

	e.logger.Info("run.start",
		"run_id", runID,
		"entry", e.graph.EntryPoint(),
		"step_budget", stepBudget,
	)

	current := e.graph.EntryPoint()
	msg := initial

	if err := e.hooks.fire(ctx, &HookContext{
		Type: HookRunStart, RunID: runID, Message: initial, Run: run,
	}); err != nil {
		return e.finish(ctx, run, core.TerminationFatal, current, err)
	}

	for {
		if run.Steps() >= stepBudget {
			return e.finish(ctx, run, core.TerminationBudgetExceeded, current, nil)
		}
		if err := ctx.Err(); err != nil {
			return e.finish(ctx, run, core.TerminationFatal, current, err)
		}

		node, ok := e.graph.Node(current)
		if !ok {
			// Unreachable after Compile; kept as a hard stop for corrupted state.
			return e.finish(ctx, run, core.TerminationFatal, current,
				core.NewConfigurationError("traversal reached unknown node %q", current))
		}

		if err := e.hooks.fire(ctx, &HookContext{
			Type: HookBeforeNode, RunID: runID, Node: current, Message: msg, Run: run,
		}); err != nil {
			return e.finish(ctx, run, core.TerminationFatal, current, err)
		}

		out, label, err := e.invokeNode(ctx, node, msg, run)
		if err != nil {
			e.logger.Error("node.failed", "run_id", runID, "node", current, "error", err.Error())
			return e.finish(ctx, run, core.TerminationFatal, current, err)
		}

		run.Record(current, out)

		e.logger.Info("node.invoked",
			"run_id", runID,
			"node", current,
			"kind", string(node.Kind),
			"label", label,
			"step", run.Steps(),
			"message_id", out.ID,
		)

		if err := e.hooks.fire(ctx, &HookContext{
			Type: HookAfterNode, RunID: runID, Node: current, Message: out, Label: label, Run: run,
		}); err != nil {
			return e.finish(ctx, run, core.TerminationFatal, current, err)
		}

		next, err := e.graph.resolveNext(current, label)
		if err != nil {
			return e.finish(ctx, run, core.TerminationFatal, current, err)
		}
		if next == End {
			return e.finish(ctx, run, core.TerminationTerminal, current, nil)
		}

		current = next
		msg = out
	}
}

// invokeNode applies the per-node timeout and calls the executor. Executors
// convert recoverable failures into error-content responses themselves; an
// error here is fatal by contract.
func (e *Engine) invokeNode(ctx context.Context, node Node, msg core.Message, run *core.RunState) (core.Message, string, error) {
	if e.nodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.nodeTimeout)
		defer cancel()
	}
	return node.Executor.Invoke(ctx, msg, run)
}

// finish builds the run result, emits the termination record, fires the
// run-end hooks and persists the transcript when a store is configured.
func (e *Engine) finish(ctx context.Context, run *core.RunState, kind core.Termination, lastNode string, err error) (*core.RunResult, error) {
	result := &core.RunResult{
		RunID:       run.RunID(),
		Transcript:  run.Transcript(),
		Termination: kind,
		LastNode:    lastNode,
		Steps:       run.Steps(),
		Err:         err,
	}

	args := []any{
		"run_id", run.RunID(),
		"termination", string(kind),
		"last_node", lastNode,
		"steps", run.Steps(),
	}
	if err != nil {
		args = append(args, "error", err.Error())
		e.logger.Error("run.end", args...)
	} else {
		e.logger.Info("run.end", args...)
	}

	last, _ := run.LastMessage()
	if hookErr := e.hooks.fire(ctx, &HookContext{
		Type: HookRunEnd, RunID: run.RunID(), Node: lastNode,
		Message: last, Termination: kind, Run: run,
	}); hookErr != nil {
		// The outcome is already decided; a failing run-end hook cannot
		// change it.
		e.logger.Warn("run.hook_failed", "run_id", run.RunID(), "error", hookErr.Error())
	}

	if e.store != nil {
		if saveErr := e.store.Save(result); saveErr != nil {
			e.logger.Warn("run.persist_failed", "run_id", run.RunID(), "error", saveErr.Error())
		}
	}

	return result, err
}
