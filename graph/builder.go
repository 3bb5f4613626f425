package graph

import (
	"github.com/hupe1980/graphmesh/agent"
	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/tool"
)

// Builder accumulates nodes and edges and validates the topology once in
// Compile. All validation failures are *core.ConfigurationError values raised
// at build time, never during traversal.
type Builder struct {
	entryPoint string
	nodes      []Node
	edges      []Edge
}

// NewBuilder constructs an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetEntryPoint declares the node traversal starts at.
func (b *Builder) SetEntryPoint(id string) *Builder {
	b.entryPoint = id
	return b
}

// AddNode registers a node with an explicit kind and executor.
func (b *Builder) AddNode(id string, kind NodeKind, exec core.Executor) *Builder {
	b.nodes = append(b.nodes, Node{ID: id, Kind: kind, Executor: exec})
	return b
}

// AddAgent registers an agent node.
func (b *Builder) AddAgent(id string, a *agent.Agent) *Builder {
	return b.AddNode(id, KindAgent, a)
}

// AddRouter registers a router node.
func (b *Builder) AddRouter(id string, r *Router) *Builder {
	return b.AddNode(id, KindRouter, r)
}

// AddConditional registers a conditional node.
func (b *Builder) AddConditional(id string, c *Conditional) *Builder {
	return b.AddNode(id, KindConditional, c)
}

// AddTool registers a tool node invoking t directly.
func (b *Builder) AddTool(id string, t tool.Tool) *Builder {
	return b.AddNode(id, KindTool, NewToolNode(t))
}

// AddEdge declares a labeled transition from source to target. Target may be
// End. An empty label marks the node's single unconditional / default edge.
func (b *Builder) AddEdge(source, target, label string) *Builder {
	b.edges = append(b.edges, Edge{Source: source, Target: target, Label: label})
	return b
}

// Compile validates the accumulated topology and returns the immutable graph.
// Validated invariants:
//   - exactly one entry point, referencing an existing node
//   - unique node ids
//   - every node binds a non-nil executor
//   - every edge source and target (or End) references an existing node
//   - per source node, condition labels are distinct
//   - per source node, at most one unlabeled edge; several unlabeled edges
//     from one node are rejected instead of guessing a priority order
func (b *Builder) Compile() (*Graph, error) {
	if b.entryPoint == "" {
		return nil, core.NewConfigurationError("no entry point declared")
	}

	nodes := make(map[string]Node, len(b.nodes))
	for _, n := range b.nodes {
		if n.ID == "" {
			return nil, core.NewConfigurationError("node with empty id")
		}
		if n.ID == End {
			return nil, core.NewConfigurationError("node id %q collides with the terminal marker", End)
		}
		if n.Executor == nil {
			return nil, core.NewConfigurationError("node %q has no executor", n.ID)
		}
		if _, exists := nodes[n.ID]; exists {
			return nil, core.NewConfigurationError("duplicate node id %q", n.ID)
		}
		nodes[n.ID] = n
	}

	if _, ok := nodes[b.entryPoint]; !ok {
		return nil, core.NewConfigurationError("entry point %q references no node", b.entryPoint)
	}

	out := make(map[string][]Edge, len(nodes))
	defaults := make(map[string]Edge)
	labels := make(map[string]map[string]bool)

	for _, e := range b.edges {
		if _, ok := nodes[e.Source]; !ok {
			return nil, core.NewConfigurationError("edge source %q references no node", e.Source)
		}
		if e.Target != End {
			if _, ok := nodes[e.Target]; !ok {
				return nil, core.NewConfigurationError("edge target %q references no node", e.Target)
			}
		}

		if e.Label == "" {
			if _, exists := defaults[e.Source]; exists {
				return nil, core.NewConfigurationError(
					"node %q declares more than one unconditional edge", e.Source)
			}
			defaults[e.Source] = e
		} else {
			if labels[e.Source] == nil {
				labels[e.Source] = make(map[string]bool)
			}
			if labels[e.Source][e.Label] {
				return nil, core.NewConfigurationError(
					"node %q declares duplicate condition label %q", e.Source, e.Label)
			}
			labels[e.Source][e.Label] = true
		}

		out[e.Source] = append(out[e.Source], e)
	}

	return &Graph{
		entryPoint: b.entryPoint,
		nodes:      nodes,
		out:        out,
		defaults:   defaults,
	}, nil
}
