package graph

import (
	"context"
	"testing"

	"github.com/hupe1980/graphmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditional_InspectsLastTranscriptEntry(t *testing.T) {
	cond := NewConditional(ContentContains("done"))

	run := core.NewRunState(core.NewID(), "check")
	run.Seed(core.NewMessage("user", "worker", "start"))
	run.Record("worker", core.NewMessage("worker", "check", "all done"))

	inbound := core.NewMessage("worker", "check", "irrelevant")

	out, label, err := cond.Invoke(context.Background(), inbound, run)
	require.NoError(t, err)
	assert.Equal(t, LabelTrue, label)
	assert.Equal(t, inbound, out)
}

func TestConditional_FalseBranch(t *testing.T) {
	cond := NewConditional(ContentContains("done"))

	run := core.NewRunState(core.NewID(), "check")
	run.Record("worker", core.NewMessage("worker", "check", "still working"))

	_, label, err := cond.Invoke(context.Background(), core.NewMessage("worker", "check", "x"), run)
	require.NoError(t, err)
	assert.Equal(t, LabelFalse, label)
}

func TestConditional_Offset(t *testing.T) {
	cond := NewConditional(ContentContains("older"), func(o *ConditionalOptions) {
		o.Offset = 1
	})

	run := core.NewRunState(core.NewID(), "check")
	run.Record("a", core.NewMessage("a", "b", "older entry"))
	run.Record("b", core.NewMessage("b", "check", "newest entry"))

	_, label, err := cond.Invoke(context.Background(), core.NewMessage("b", "check", "x"), run)
	require.NoError(t, err)
	assert.Equal(t, LabelTrue, label)
}

func TestConditional_EmptyTranscriptFallsBackToInbound(t *testing.T) {
	cond := NewConditional(ContentContains("inbound"))

	run := core.NewRunState(core.NewID(), "check")

	_, label, err := cond.Invoke(context.Background(), core.NewMessage("user", "check", "the inbound one"), run)
	require.NoError(t, err)
	assert.Equal(t, LabelTrue, label)
}

func TestPredicates(t *testing.T) {
	t.Run("is tool result", func(t *testing.T) {
		tagged := core.NewMessage("tool", "agent", "42", func(o *core.MessageOptions) {
			o.Metadata = map[string]any{core.MetaToolResult: true}
		})
		plain := core.NewMessage("a", "b", "42")

		assert.True(t, IsToolResult(tagged))
		assert.False(t, IsToolResult(plain))
	})

	t.Run("is error", func(t *testing.T) {
		failed := core.NewMessage("agent", "user", "oops", func(o *core.MessageOptions) {
			o.Metadata = map[string]any{core.MetaError: "boom"}
		})
		plain := core.NewMessage("a", "b", "fine")

		assert.True(t, IsError(failed))
		assert.False(t, IsError(plain))
	})

	t.Run("has metadata", func(t *testing.T) {
		msg := core.NewMessage("a", "b", "x", func(o *core.MessageOptions) {
			o.Metadata = map[string]any{"priority": "high"}
		})

		assert.True(t, HasMetadata("priority")(msg))
		assert.False(t, HasMetadata("missing")(msg))
	})
}

func TestConditional_InGraph(t *testing.T) {
	worker := core.ExecutorFunc(func(_ context.Context, msg core.Message, _ *core.RunState) (core.Message, string, error) {
		return msg.CreateResponse("task done", nil), "", nil
	})

	g, err := NewBuilder().
		SetEntryPoint("worker").
		AddNode("worker", KindCustom, worker).
		AddConditional("check", NewConditional(ContentContains("done"))).
		AddNode("retry", KindCustom, echoNode("retry")).
		AddEdge("worker", "check", "").
		AddEdge("check", End, LabelTrue).
		AddEdge("check", "retry", LabelFalse).
		AddEdge("retry", "worker", "").
		Compile()
	require.NoError(t, err)

	engine := New(g)

	result, err := engine.Run(context.Background(), core.NewMessage("user", "worker", "go"), 10)
	require.NoError(t, err)

	assert.Equal(t, core.TerminationTerminal, result.Termination)
	assert.Equal(t, "check", result.LastNode)
	assert.Equal(t, 2, result.Steps)
}
