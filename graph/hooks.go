package graph

import (
	"context"

	"github.com/hupe1980/graphmesh/core"
)

// HookType defines the lifecycle points where hooks can be executed.
//
// Hooks provide a mechanism for observing and vetoing traversal without
// modifying engine logic. They are executed synchronously: a slow hook slows
// the run, and a before-node hook returning an error aborts the run fatally.
type HookType string

const (
	// HookRunStart is triggered once before the traversal loop begins.
	HookRunStart HookType = "run_start"

	// HookBeforeNode is triggered before each node invocation. A returned
	// error aborts the run with TerminationFatal, which makes this the place
	// for admission checks and guardrails.
	HookBeforeNode HookType = "before_node"

	// HookAfterNode is triggered after each successful node invocation, with
	// the produced message and the resolved edge label in the hook context.
	HookAfterNode HookType = "after_node"

	// HookRunEnd is triggered once when the run terminates, regardless of
	// termination kind. Errors returned here are logged and ignored; the run
	// outcome is already decided.
	HookRunEnd HookType = "run_end"
)

// HookContext carries the traversal state visible to a hook execution.
type HookContext struct {
	// Type indicates which lifecycle point triggered this execution.
	Type HookType

	// RunID identifies the run.
	RunID string

	// Node is the id of the node being visited. Empty for run-level hooks.
	Node string

	// Message is the message flowing into (before) or out of (after) the
	// node, or the initial/final message for run-level hooks.
	Message core.Message

	// Label is the edge label the node yielded. Set for HookAfterNode only.
	Label string

	// Termination is the run outcome. Set for HookRunEnd only.
	Termination core.Termination

	// Run exposes the accumulated run state for inspection. Hooks must not
	// mutate the transcript; SetState is the supported side channel.
	Run *core.RunState
}

// Hook is an execution lifecycle observer.
type Hook interface {
	// Type returns the lifecycle point this hook handles.
	Type() HookType

	// Execute performs the hook logic. For HookBeforeNode a returned error
	// aborts the run.
	Execute(ctx context.Context, hc *HookContext) error
}

// HookFunc wraps a function as a Hook for simple, stateless hook logic.
type HookFunc struct {
	hookType HookType
	fn       func(ctx context.Context, hc *HookContext) error
}

// NewHookFunc creates a function-based hook for the given lifecycle point.
func NewHookFunc(hookType HookType, fn func(ctx context.Context, hc *HookContext) error) *HookFunc {
	return &HookFunc{hookType: hookType, fn: fn}
}

// Type implements Hook.
func (h *HookFunc) Type() HookType { return h.hookType }

// Execute implements Hook.
func (h *HookFunc) Execute(ctx context.Context, hc *HookContext) error {
	return h.fn(ctx, hc)
}

// Hooks is a registry of lifecycle hooks keyed by type. Registration is not
// safe for concurrent use; register everything before handing the registry to
// an engine. Execution after that point is read-only and safe for concurrent
// runs.
type Hooks struct {
	hooks map[HookType][]Hook
}

// NewHooks creates an empty hook registry.
func NewHooks() *Hooks {
	return &Hooks{hooks: make(map[HookType][]Hook)}
}

// Register adds a hook. Multiple hooks per type run in registration order.
func (h *Hooks) Register(hook Hook) {
	h.hooks[hook.Type()] = append(h.hooks[hook.Type()], hook)
}

// fire executes all hooks registered for hc.Type in order, stopping at the
// first error.
func (h *Hooks) fire(ctx context.Context, hc *HookContext) error {
	if h == nil {
		return nil
	}
	for _, hook := range h.hooks[hc.Type] {
		if err := hook.Execute(ctx, hc); err != nil {
			return err
		}
	}
	return nil
}
