// Package agent implements the stateful agent executor: a named node with a
// private append-only memory log, an idle/busy/error status state machine, a
// per-agent tool registry and an optional reasoning backend. Receive is the
// single entry point and never propagates failure; backend errors, missing
// tools, malformed tool directives, panics and timeouts all degrade into
// error-content response messages the rest of the graph can observe and
// route around.
package agent
