package core

import "context"

// Executor is the single polymorphic contract bound to every node kind
// (agent, tool, router, conditional). The engine invokes it once per visit
// with the current message and the accumulated run state.
//
// The returned label selects the outgoing edge: an empty label instructs the
// engine to fall back to the node's implicit resolution (single unconditional
// edge or declared default). Router and conditional executors return the
// message unchanged together with a computed label; agent and tool executors
// return a newly produced message and leave the label empty.
//
// A non-nil error is fatal for the run. Recoverable failures (backend errors,
// missing tools, timeouts) must instead be converted into error-content
// response messages by the executor so the rest of the graph can observe and
// route around them.
type Executor interface {
	Invoke(ctx context.Context, msg Message, run *RunState) (Message, string, error)
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(ctx context.Context, msg Message, run *RunState) (Message, string, error)

// Invoke implements Executor.
func (f ExecutorFunc) Invoke(ctx context.Context, msg Message, run *RunState) (Message, string, error) {
	return f(ctx, msg, run)
}
