package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/graphmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_LifecycleOrder(t *testing.T) {
	var events []string

	hooks := NewHooks()
	for _, ht := range []HookType{HookRunStart, HookBeforeNode, HookAfterNode, HookRunEnd} {
		hookType := ht
		hooks.Register(NewHookFunc(hookType, func(_ context.Context, hc *HookContext) error {
			events = append(events, fmt.Sprintf("%s:%s", hc.Type, hc.Node))
			return nil
		}))
	}

	g, err := NewBuilder().
		SetEntryPoint("a").
		AddNode("a", KindCustom, echoNode("a")).
		AddEdge("a", End, "").
		Compile()
	require.NoError(t, err)

	engine := New(g, func(o *Options) {
		o.Hooks = hooks
	})

	_, err = engine.Run(context.Background(), core.NewMessage("user", "a", "go"), 10)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"run_start:",
		"before_node:a",
		"after_node:a",
		"run_end:a",
	}, events)
}

func TestHooks_BeforeNodeErrorAbortsRun(t *testing.T) {
	hooks := NewHooks()
	hooks.Register(NewHookFunc(HookBeforeNode, func(_ context.Context, hc *HookContext) error {
		return fmt.Errorf("admission denied for %s", hc.Node)
	}))

	g, err := NewBuilder().
		SetEntryPoint("a").
		AddNode("a", KindCustom, echoNode("a")).
		AddEdge("a", End, "").
		Compile()
	require.NoError(t, err)

	engine := New(g, func(o *Options) {
		o.Hooks = hooks
	})

	result, err := engine.Run(context.Background(), core.NewMessage("user", "a", "go"), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admission denied")
	assert.Equal(t, core.TerminationFatal, result.Termination)
	assert.Equal(t, 0, result.Steps)
}

func TestHooks_RunEndErrorIsIgnored(t *testing.T) {
	hooks := NewHooks()
	hooks.Register(NewHookFunc(HookRunEnd, func(_ context.Context, _ *HookContext) error {
		return fmt.Errorf("exporter offline")
	}))

	g, err := NewBuilder().
		SetEntryPoint("a").
		AddNode("a", KindCustom, echoNode("a")).
		AddEdge("a", End, "").
		Compile()
	require.NoError(t, err)

	engine := New(g, func(o *Options) {
		o.Hooks = hooks
	})

	result, err := engine.Run(context.Background(), core.NewMessage("user", "a", "go"), 10)
	require.NoError(t, err)
	assert.Equal(t, core.TerminationTerminal, result.Termination)
}

func TestHooks_AfterNodeSeesLabel(t *testing.T) {
	labeler := core.ExecutorFunc(func(_ context.Context, msg core.Message, _ *core.RunState) (core.Message, string, error) {
		return msg, "done", nil
	})

	var seen string

	hooks := NewHooks()
	hooks.Register(NewHookFunc(HookAfterNode, func(_ context.Context, hc *HookContext) error {
		seen = hc.Label
		return nil
	}))

	g, err := NewBuilder().
		SetEntryPoint("a").
		AddNode("a", KindCustom, labeler).
		AddEdge("a", End, "done").
		Compile()
	require.NoError(t, err)

	engine := New(g, func(o *Options) {
		o.Hooks = hooks
	})

	_, err = engine.Run(context.Background(), core.NewMessage("user", "a", "go"), 10)
	require.NoError(t, err)
	assert.Equal(t, "done", seen)
}

func TestHooks_NilRegistryIsSafe(t *testing.T) {
	var hooks *Hooks

	err := hooks.fire(context.Background(), &HookContext{Type: HookRunStart})
	assert.NoError(t, err)
}
