package graph

import "github.com/hupe1980/graphmesh/core"

// End is the distinguished terminal marker. An edge targeting End stops
// traversal with TerminationTerminal.
const End = "__end__"

// NodeKind classifies the behavior bound to a node.
type NodeKind string

const (
	// KindAgent is a stateful agent executor node.
	KindAgent NodeKind = "agent"
	// KindTool is a node invoking a single tool directly.
	KindTool NodeKind = "tool"
	// KindRouter is a content-pattern routing node.
	KindRouter NodeKind = "router"
	// KindConditional is a transcript-inspecting boolean branch node.
	KindConditional NodeKind = "conditional"
	// KindCustom is any caller-supplied executor.
	KindCustom NodeKind = "custom"
)

// Node is one unit of work in the graph: an id, a kind and the executor
// invoked once per visit.
type Node struct {
	ID       string
	Kind     NodeKind
	Executor core.Executor
}

// Edge is a labeled transition between two nodes, or from a node to End.
// An empty Label marks the edge as the node's unconditional / default
// transition; each node may declare at most one.
type Edge struct {
	Source string
	Target string
	Label  string
}

// Graph is the compiled, immutable node/edge topology. Build one with a
// Builder; mutating the graph requires rebuilding it. A Graph is safe for
// concurrent use by multiple runs.
type Graph struct {
	entryPoint string
	nodes      map[string]Node
	out        map[string][]Edge // outgoing edges per source, config order
	defaults   map[string]Edge   // the single unlabeled edge per source, if any
}

// EntryPoint returns the id of the node traversal starts at.
func (g *Graph) EntryPoint() string { return g.entryPoint }

// Node returns the node descriptor for id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edges returns the outgoing edges of source in configuration order.
func (g *Graph) Edges(source string) []Edge {
	edges := g.out[source]
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// resolveNext computes the next node for the label an executor returned.
// Exact label match wins; an empty or unmatched label falls back to the
// node's declared default. Topology was validated at compile time, so the
// only runtime failure mode is an unmatched label with no default.
func (g *Graph) resolveNext(source, label string) (string, error) {
	if label != "" {
		for _, e := range g.out[source] {
			if e.Label == label {
				return e.Target, nil
			}
		}
	}
	if d, ok := g.defaults[source]; ok {
		return d.Target, nil
	}
	return "", &core.RoutingError{Node: source, Label: label}
}
