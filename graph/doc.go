// Package graph owns the node/edge graph and drives step-by-step traversal.
// A Builder validates topology once at compile time (unique entry point,
// resolvable edge endpoints, unambiguous labels per source node) so the
// runtime loop never re-checks it. The Engine invokes the executor bound to
// the current node, records the produced message in the shared transcript and
// resolves the next node by matching the returned condition label against the
// node's outgoing edges, until the End marker, the step budget or a fatal
// routing defect stops the run.
//
// Router, Conditional and ToolNode are the built-in non-agent node kinds.
package graph
