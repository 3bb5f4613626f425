package graphmesh

import (
	"context"
	"testing"

	"github.com/hupe1980/graphmesh/agent"
	"github.com/hupe1980/graphmesh/backend"
	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/graph"
	"github.com/hupe1980/graphmesh/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAssistantGraph(t *testing.T) *graph.Graph {
	t.Helper()

	mock := backend.NewMock("assistant-backend")
	mock.AddResponse("hello", "hi there")

	assistant := agent.New("assistant", func(o *agent.Options) {
		o.Backend = mock
	})

	g, err := graph.NewBuilder().
		SetEntryPoint("assistant").
		AddAgent("assistant", assistant).
		AddEdge("assistant", graph.End, "").
		Compile()
	require.NoError(t, err)

	return g
}

func TestGraphMesh_Run(t *testing.T) {
	mesh := New(buildAssistantGraph(t))

	result, err := mesh.Run(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, core.TerminationTerminal, result.Termination)
	require.Len(t, result.Transcript, 2)
	assert.Equal(t, UserSender, result.Transcript[0].Sender)
	assert.Equal(t, "hi there", result.Transcript[1].Content)
	assert.True(t, result.Transcript[1].IsResponseTo(result.Transcript[0]))
}

func TestGraphMesh_RunPersistsTranscript(t *testing.T) {
	mesh := New(buildAssistantGraph(t))

	result, err := mesh.Run(context.Background(), "hello")
	require.NoError(t, err)

	saved, err := mesh.TranscriptStore().Get(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, saved.RunID)

	ids, err := mesh.TranscriptStore().List()
	require.NoError(t, err)
	assert.Contains(t, ids, result.RunID)
}

func TestGraphMesh_CustomStore(t *testing.T) {
	store := transcript.NewInMemoryStore()

	mesh := New(buildAssistantGraph(t), func(o *Options) {
		o.TranscriptStore = store
	})

	result, err := mesh.Run(context.Background(), "hello")
	require.NoError(t, err)

	_, err = store.Get(result.RunID)
	assert.NoError(t, err)
}

func TestGraphMesh_RunMessage(t *testing.T) {
	mesh := New(buildAssistantGraph(t), func(o *Options) {
		o.StepBudget = 5
	})

	initial := core.NewMessage("scheduler", "assistant", "hello", func(o *core.MessageOptions) {
		o.Metadata = map[string]any{"origin": "cron"}
	})

	result, err := mesh.RunMessage(context.Background(), initial)
	require.NoError(t, err)

	assert.Equal(t, "scheduler", result.Transcript[0].Sender)
	assert.Equal(t, "cron", result.Transcript[0].Metadata["origin"])
}
