// Package loader parses declarative YAML graph descriptors and builds
// compiled graphs from them. The descriptor carries topology and the
// kind-specific parameters of router and conditional nodes; agent, tool and
// custom executors are process-level objects and are bound by name through a
// Bindings map. All structural defects surface as build-time configuration
// errors via graph.Builder.
package loader

import (
	"fmt"
	"os"

	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/graph"
	"gopkg.in/yaml.v3"
)

// Descriptor is the external graph definition: entry point id, node list and
// edge list. It mirrors the wire format one-to-one.
type Descriptor struct {
	EntryPoint string     `yaml:"entry_point"`
	Nodes      []NodeSpec `yaml:"nodes"`
	Edges      []EdgeSpec `yaml:"edges"`
}

// NodeSpec declares one node: its id, kind and kind-specific parameters.
type NodeSpec struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`

	// Router parameters. Rule order is significant and preserved.
	DefaultLabel string     `yaml:"default_label,omitempty"`
	Rules        []RuleSpec `yaml:"rules,omitempty"`

	// Conditional parameters. Check is one of "tool_result", "error",
	// "contains:<substring>" or "metadata:<key>".
	Check  string `yaml:"check,omitempty"`
	Offset int    `yaml:"offset,omitempty"`

	// Executor names the binding for agent, tool and custom nodes.
	// Defaults to the node id.
	Executor string `yaml:"executor,omitempty"`
}

// RuleSpec is one router pattern -> label mapping.
type RuleSpec struct {
	Match string `yaml:"match"`
	Regex bool   `yaml:"regex,omitempty"`
	Label string `yaml:"label"`
}

// EdgeSpec declares one labeled transition. Target accepts the literal
// terminal marker or the shorthand "end".
type EdgeSpec struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Label  string `yaml:"label,omitempty"`
}

// Bindings maps executor names to the process-level executors referenced by
// agent, tool and custom node specs.
type Bindings map[string]core.Executor

// Parse decodes a YAML descriptor.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse graph descriptor: %w", err)
	}
	return &d, nil
}

// LoadFile reads and decodes a YAML descriptor from path.
func LoadFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph descriptor: %w", err)
	}
	return Parse(data)
}

// Build materializes the descriptor into a compiled graph, constructing
// router and conditional executors from their declared parameters and
// resolving agent/tool/custom executors through binds.
func Build(d *Descriptor, binds Bindings) (*graph.Graph, error) {
	b := graph.NewBuilder().SetEntryPoint(d.EntryPoint)

	for _, n := range d.Nodes {
		switch n.Kind {
		case string(graph.KindRouter):
			rules := make([]graph.Rule, len(n.Rules))
			for i, r := range n.Rules {
				rules[i] = graph.Rule{Match: r.Match, Regex: r.Regex, Label: r.Label}
			}
			router, err := graph.NewRouter(n.DefaultLabel, rules...)
			if err != nil {
				return nil, err
			}
			b.AddRouter(n.ID, router)

		case string(graph.KindConditional):
			pred, err := predicateFor(n)
			if err != nil {
				return nil, err
			}
			b.AddConditional(n.ID, graph.NewConditional(pred, func(o *graph.ConditionalOptions) {
				o.Offset = n.Offset
			}))

		case string(graph.KindAgent), string(graph.KindTool), string(graph.KindCustom):
			exec, err := resolveBinding(n, binds)
			if err != nil {
				return nil, err
			}
			b.AddNode(n.ID, graph.NodeKind(n.Kind), exec)

		default:
			return nil, core.NewConfigurationError("node %q: unknown kind %q", n.ID, n.Kind)
		}
	}

	for _, e := range d.Edges {
		target := e.Target
		if target == "end" {
			target = graph.End
		}
		b.AddEdge(e.Source, target, e.Label)
	}

	return b.Compile()
}

func resolveBinding(n NodeSpec, binds Bindings) (core.Executor, error) {
	name := n.Executor
	if name == "" {
		name = n.ID
	}
	exec, ok := binds[name]
	if !ok {
		return nil, core.NewConfigurationError("node %q: no executor bound under %q", n.ID, name)
	}
	return exec, nil
}

func predicateFor(n NodeSpec) (graph.Predicate, error) {
	const (
		containsPrefix = "contains:"
		metadataPrefix = "metadata:"
	)

	switch {
	case n.Check == "tool_result":
		return graph.IsToolResult, nil
	case n.Check == "error":
		return graph.IsError, nil
	case len(n.Check) > len(containsPrefix) && n.Check[:len(containsPrefix)] == containsPrefix:
		return graph.ContentContains(n.Check[len(containsPrefix):]), nil
	case len(n.Check) > len(metadataPrefix) && n.Check[:len(metadataPrefix)] == metadataPrefix:
		return graph.HasMetadata(n.Check[len(metadataPrefix):]), nil
	default:
		return nil, core.NewConfigurationError("node %q: unknown check %q", n.ID, n.Check)
	}
}
