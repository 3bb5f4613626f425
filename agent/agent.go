package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/graphmesh/backend"
	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/logging"
	"github.com/hupe1980/graphmesh/tool"
)

// BackendError wraps a reasoning backend failure (remote error, timeout,
// malformed tool directive). It is always recovered inside Receive and
// surfaced as an error-content response message.
type BackendError struct {
	Agent string
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend failure in agent %q: %v", e.Agent, e.Err)
}

// Unwrap returns the underlying failure.
func (e *BackendError) Unwrap() error { return e.Err }

// ProcessFunc is the specialization point for custom agent behavior. It
// returns the response content plus optional response metadata. Returning an
// error never aborts the run; Receive converts it into an error-content
// response.
type ProcessFunc func(ctx context.Context, msg core.Message, run *core.RunState) (string, map[string]any, error)

// Config captures the agent's declarative options. Options is an open-ended
// bag for caller-defined settings; the typed fields are the ones the agent
// itself interprets.
type Config struct {
	Temperature     float64        `json:"temperature,omitempty"`
	MaxHistoryTurns int            `json:"max_history_turns,omitempty"`
	Options         map[string]any `json:"options,omitempty"`
}

// Options configures an Agent instance.
type Options struct {
	Description     string
	Instruction     Instruction
	Backend         backend.Backend
	Process         ProcessFunc
	Temperature     float64
	MaxHistoryTurns int
	Tools           []tool.Tool
	Logger          logging.Logger
	ConfigOptions   map[string]any
}

// Agent is a stateful executor with a private memory log, an idle/busy/error
// status state machine and a per-agent tool registry. It delegates text
// generation to a reasoning backend unless a custom ProcessFunc is supplied.
//
// An Agent is constructed once at graph-build time and lives for the process
// lifetime of the graph. Receive calls are serialized internally so agents
// may be shared across sequential runs; the state machine assumes
// single-writer semantics.
type Agent struct {
	name        string
	description string
	config      Config
	instruction Instruction
	backend     backend.Backend
	process     ProcessFunc
	memory      *Memory
	tools       *tool.Registry
	logger      logging.Logger

	mu       sync.Mutex // serializes Receive
	statusMu sync.RWMutex
	status   Status
}

// New constructs an Agent with sensible defaults: no backend (process must be
// supplied or calls fail softly), a 20-turn history window and a no-op logger.
func New(name string, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Description:     fmt.Sprintf("Agent %s", name),
		MaxHistoryTurns: 20,
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	a := &Agent{
		name:        name,
		description: opts.Description,
		config: Config{
			Temperature:     opts.Temperature,
			MaxHistoryTurns: opts.MaxHistoryTurns,
			Options:         opts.ConfigOptions,
		},
		instruction: opts.Instruction,
		backend:     opts.Backend,
		process:     opts.Process,
		memory:      NewMemory(),
		tools:       tool.NewRegistry(),
		logger:      opts.Logger,
		status:      StatusIdle,
	}

	for _, t := range opts.Tools {
		a.tools.Register(t)
	}

	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Description returns the agent's purpose description.
func (a *Agent) Description() string { return a.description }

// Config returns the agent's declarative configuration.
func (a *Agent) Config() Config { return a.config }

// Status returns the current state-machine position.
func (a *Agent) Status() Status {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	return a.status
}

func (a *Agent) setStatus(s Status) {
	a.statusMu.Lock()
	a.status = s
	a.statusMu.Unlock()
}

// RegisterTool adds a tool to the agent's registry. Registering an existing
// name overwrites silently (last write wins).
func (a *Agent) RegisterTool(t tool.Tool) { a.tools.Register(t) }

// GetTool looks up a tool by exact name.
func (a *Agent) GetTool(name string) (tool.Tool, error) { return a.tools.Get(name) }

// HasTool reports whether a tool is registered under name.
func (a *Agent) HasTool(name string) bool { return a.tools.Has(name) }

// Tools exposes the agent's registry.
func (a *Agent) Tools() *tool.Registry { return a.tools }

// Memory returns the most recent limit memory entries (all when limit is
// non-positive) without mutating storage.
func (a *Agent) Memory(limit int) []MemoryEntry { return a.memory.Entries(limit) }

// ClearMemory resets the memory log. The agent's identity is unaffected.
func (a *Agent) ClearMemory() { a.memory.Clear() }

// Receive runs the invocation protocol: status goes busy, the inbound message
// is appended to memory, processing produces a response which is also
// appended, and status returns to idle on success or error on failure.
//
// Receive always returns a message and never panics or propagates an error;
// internal failures are synthesized into an error-content response whose
// metadata carries the failure description, so a single agent failure cannot
// unwind the run.
func (a *Agent) Receive(ctx context.Context, msg core.Message, run *core.RunState) core.Message {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.setStatus(StatusBusy)
	a.memory.Append(msg)

	content, metadata, err := a.safeProcess(ctx, msg, run)
	if err != nil {
		a.logger.Warn("agent.receive.failed", "agent", a.name, "message_id", msg.ID, "error", err.Error())

		resp := msg.CreateResponse(
			fmt.Sprintf("Agent %s failed to process message: %v", a.name, err),
			map[string]any{core.MetaError: err.Error()},
		)
		a.memory.Append(resp)
		a.setStatus(StatusError)
		return resp
	}

	resp := msg.CreateResponse(content, metadata)
	a.memory.Append(resp)
	a.setStatus(StatusIdle)

	a.logger.Debug("agent.receive.ok", "agent", a.name, "message_id", msg.ID, "response_id", resp.ID)

	return resp
}

// Invoke implements core.Executor. Agent nodes leave the edge label empty so
// the engine resolves the node's implicit or declared default edge.
func (a *Agent) Invoke(ctx context.Context, msg core.Message, run *core.RunState) (core.Message, string, error) {
	return a.Receive(ctx, msg, run), "", nil
}

// safeProcess dispatches to the configured ProcessFunc or the backend-driven
// default, recovering panics into ordinary errors at this boundary.
func (a *Agent) safeProcess(ctx context.Context, msg core.Message, run *core.RunState) (content string, metadata map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during processing: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", nil, fmt.Errorf("invocation cancelled before processing: %w", err)
	}

	if a.process != nil {
		return a.process(ctx, msg, run)
	}
	return a.processWithBackend(ctx, msg, run)
}

// processWithBackend is the default process implementation: resolve the
// instruction, call the reasoning backend with the conversation history, then
// either return the generated text or dispatch the tool directive embedded in
// it.
func (a *Agent) processWithBackend(ctx context.Context, msg core.Message, run *core.RunState) (string, map[string]any, error) {
	if a.backend == nil {
		return "", nil, errors.New("process not implemented: configure a backend or a custom process function")
	}

	system, err := a.instruction.Resolve(run)
	if err != nil {
		return "", nil, &BackendError{Agent: a.name, Err: fmt.Errorf("instruction resolution failed: %w", err)}
	}

	text, err := a.backend.Generate(ctx, backend.Request{
		Prompt:        msg.Content,
		SystemMessage: system,
		History:       a.historyTurns(msg.ID),
		Temperature:   a.config.Temperature,
	})
	if err != nil {
		return "", nil, &BackendError{Agent: a.name, Err: err}
	}

	directive, ok, err := ParseDirective(text)
	if err != nil {
		// Parse failure of an attempted directive is a backend defect.
		return "", nil, &BackendError{Agent: a.name, Err: err}
	}
	if !ok {
		return text, nil, nil
	}

	return a.dispatchTool(ctx, directive)
}

// dispatchTool looks the directive's tool up by name and executes it. Lookup
// and execution failures surface as errors; Receive converts them into
// error-content responses.
func (a *Agent) dispatchTool(ctx context.Context, d Directive) (string, map[string]any, error) {
	t, err := a.tools.Get(d.Tool)
	if err != nil {
		return "", nil, err
	}

	a.logger.Debug("agent.tool.dispatch", "agent", a.name, "tool", d.Tool)

	result, err := t.Call(ctx, d.Args)
	if err != nil {
		return "", nil, err
	}

	return formatToolResult(result), map[string]any{
		core.MetaToolResult: true,
		core.MetaToolName:   d.Tool,
	}, nil
}

// historyTurns renders memory into backend conversation turns, excluding the
// in-flight inbound message (it is passed as the prompt). Messages the agent
// sent map to assistant turns, everything else to user turns.
func (a *Agent) historyTurns(inboundID string) []backend.Turn {
	limit := a.config.MaxHistoryTurns
	entries := a.memory.Entries(limit + 1)

	turns := make([]backend.Turn, 0, len(entries))
	for _, e := range entries {
		if e.Message.ID == inboundID {
			continue
		}
		role := backend.RoleUser
		if e.Message.Sender == a.name {
			role = backend.RoleAssistant
		}
		turns = append(turns, backend.Turn{Role: role, Content: e.Message.Content})
	}

	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return turns
}

func formatToolResult(result any) string {
	switch v := result.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", v)
	}
}
