package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptorYAML = `
entry_point: triage
nodes:
  - id: triage
    kind: router
    default_label: general
    rules:
      - match: refund
        label: billing
      - match: "order\\s+\\d+"
        regex: true
        label: orders
  - id: billing
    kind: agent
  - id: orders
    kind: agent
    executor: order-agent
  - id: general
    kind: custom
  - id: check
    kind: conditional
    check: "contains:resolved"
edges:
  - source: triage
    target: billing
    label: billing
  - source: triage
    target: orders
    label: orders
  - source: triage
    target: general
    label: general
  - source: billing
    target: check
  - source: orders
    target: check
  - source: general
    target: check
  - source: check
    target: end
    label: "true"
  - source: check
    target: general
    label: "false"
`

func reply(content string) core.Executor {
	return core.ExecutorFunc(func(_ context.Context, msg core.Message, _ *core.RunState) (core.Message, string, error) {
		return msg.CreateResponse(content, nil), "", nil
	})
}

func testBindings() Bindings {
	return Bindings{
		"billing":     reply("billing resolved"),
		"order-agent": reply("order resolved"),
		"general":     reply("resolved"),
	}
}

func TestParse(t *testing.T) {
	d, err := Parse([]byte(descriptorYAML))
	require.NoError(t, err)

	assert.Equal(t, "triage", d.EntryPoint)
	require.Len(t, d.Nodes, 5)
	assert.Len(t, d.Edges, 8)

	// Router rule order is significant and must survive decoding.
	router := d.Nodes[0]
	require.Len(t, router.Rules, 2)
	assert.Equal(t, "billing", router.Rules[0].Label)
	assert.Equal(t, "orders", router.Rules[1].Label)
	assert.True(t, router.Rules[1].Regex)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("entry_point: [not, a, string"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse graph descriptor")
}

func TestBuild(t *testing.T) {
	d, err := Parse([]byte(descriptorYAML))
	require.NoError(t, err)

	g, err := Build(d, testBindings())
	require.NoError(t, err)

	assert.Equal(t, "triage", g.EntryPoint())

	node, ok := g.Node("triage")
	require.True(t, ok)
	assert.Equal(t, graph.KindRouter, node.Kind)

	node, ok = g.Node("check")
	require.True(t, ok)
	assert.Equal(t, graph.KindConditional, node.Kind)
}

func TestBuild_EndToEndRun(t *testing.T) {
	d, err := Parse([]byte(descriptorYAML))
	require.NoError(t, err)

	g, err := Build(d, testBindings())
	require.NoError(t, err)

	engine := graph.New(g)

	result, err := engine.Run(context.Background(), core.NewMessage("user", "triage", "I want a refund"), 10)
	require.NoError(t, err)

	assert.Equal(t, core.TerminationTerminal, result.Termination)
	assert.Equal(t, "check", result.LastNode)
	assert.Equal(t, "billing resolved", result.Transcript[2].Content)
}

func TestBuild_MissingBinding(t *testing.T) {
	d, err := Parse([]byte(descriptorYAML))
	require.NoError(t, err)

	binds := testBindings()
	delete(binds, "order-agent")

	_, err = Build(d, binds)
	require.Error(t, err)

	var cfgErr *core.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "order-agent")
}

func TestBuild_UnknownKind(t *testing.T) {
	d := &Descriptor{
		EntryPoint: "a",
		Nodes:      []NodeSpec{{ID: "a", Kind: "teleporter"}},
	}

	_, err := Build(d, nil)
	require.Error(t, err)

	var cfgErr *core.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuild_UnknownCheck(t *testing.T) {
	d := &Descriptor{
		EntryPoint: "c",
		Nodes:      []NodeSpec{{ID: "c", Kind: "conditional", Check: "phase_of_moon"}},
	}

	_, err := Build(d, nil)
	require.Error(t, err)

	var cfgErr *core.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuild_InvalidTopology(t *testing.T) {
	d := &Descriptor{
		EntryPoint: "ghost",
		Nodes:      []NodeSpec{{ID: "a", Kind: "custom"}},
		Edges:      []EdgeSpec{{Source: "a", Target: "end"}},
	}

	_, err := Build(d, Bindings{"a": reply("x")})
	require.Error(t, err)

	var cfgErr *core.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(descriptorYAML), 0o600))

	d, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "triage", d.EntryPoint)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
