// Package graphmesh provides a high-level façade over the graph execution
// engine and its service abstractions (transcript storage and logging)
// enabling rapid construction of multi-agent reasoning graphs. Most
// applications interact with this package by:
//  1. Building a graph via graph.NewBuilder (or loader.Build from YAML)
//  2. Creating a GraphMesh via New() (optionally overriding defaults)
//  3. Starting runs with Run()
//
// The façade delegates traversal to graph.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable transcript
// store and a structured logger.
package graphmesh

import (
	"context"
	"time"

	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/graph"
	"github.com/hupe1980/graphmesh/logging"
	"github.com/hupe1980/graphmesh/transcript"
)

// UserSender is the sender id used for initial messages created by Run.
const UserSender = "user"

// Options configures the GraphMesh instance.
type Options struct {
	// StepBudget caps node invocations per run. Defaults to
	// graph.DefaultStepBudget when non-positive.
	StepBudget int

	// NodeTimeout bounds each node invocation (backend and tool calls are
	// the only suspension points). Zero disables the per-node deadline.
	NodeTimeout time.Duration

	// TranscriptStore persists finished runs (defaults to in-memory).
	TranscriptStore core.TranscriptStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger

	// Hooks receives run and node lifecycle notifications. Nil disables
	// hooks.
	Hooks *graph.Hooks
}

// GraphMesh is the high-level façade aggregating the engine and services.
type GraphMesh struct {
	opts   Options
	engine *graph.Engine
}

// New creates a GraphMesh around a compiled graph with optional overrides.
// Any unset service is initialized with an in-memory implementation.
func New(g *graph.Graph, optFns ...func(o *Options)) *GraphMesh {
	opts := Options{
		StepBudget:      graph.DefaultStepBudget,
		TranscriptStore: transcript.NewInMemoryStore(),
		Logger:          logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	engine := graph.New(g, func(o *graph.Options) {
		o.NodeTimeout = opts.NodeTimeout
		o.TranscriptStore = opts.TranscriptStore
		o.Logger = opts.Logger
		o.Hooks = opts.Hooks
	})

	return &GraphMesh{opts: opts, engine: engine}
}

// Engine exposes the underlying graph engine.
func (m *GraphMesh) Engine() *graph.Engine { return m.engine }

// TranscriptStore exposes the configured transcript store.
func (m *GraphMesh) TranscriptStore() core.TranscriptStore { return m.opts.TranscriptStore }

// Run starts a traversal with a user message addressed to the entry node and
// the configured step budget.
func (m *GraphMesh) Run(ctx context.Context, content string) (*core.RunResult, error) {
	initial := core.NewMessage(UserSender, m.engine.Graph().EntryPoint(), content)
	return m.engine.Run(ctx, initial, m.opts.StepBudget)
}

// RunMessage starts a traversal from an explicit initial message, for callers
// that need custom sender ids or metadata.
func (m *GraphMesh) RunMessage(ctx context.Context, initial core.Message) (*core.RunResult, error) {
	return m.engine.Run(ctx, initial, m.opts.StepBudget)
}
