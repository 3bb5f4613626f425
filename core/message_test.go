package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_Defaults(t *testing.T) {
	msg := NewMessage("alice", "bob", "hello")

	assert.Equal(t, "alice", msg.Sender)
	assert.Equal(t, "bob", msg.Recipient)
	assert.Equal(t, "hello", msg.Content)
	assert.Len(t, msg.ID, 36) // UUID length
	assert.False(t, msg.Timestamp.IsZero())
	assert.Equal(t, time.UTC, msg.Timestamp.Location())
}

func TestNewMessage_Options(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := NewMessage("alice", "bob", "hi", func(o *MessageOptions) {
		o.ID = "fixed-id"
		o.Timestamp = ts
		o.Metadata = map[string]any{"k": "v"}
	})

	assert.Equal(t, "fixed-id", msg.ID)
	assert.Equal(t, ts, msg.Timestamp)
	assert.Equal(t, "v", msg.Metadata["k"])
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewMessage("a", "b", "c")
		assert.False(t, seen[msg.ID])
		seen[msg.ID] = true
	}
}

func TestNewMessage_CopiesMetadata(t *testing.T) {
	md := map[string]any{"k": "v"}
	msg := NewMessage("a", "b", "c", func(o *MessageOptions) { o.Metadata = md })

	md["k"] = "mutated"
	assert.Equal(t, "v", msg.Metadata["k"])
}

func TestMessage_RecordRoundTrip(t *testing.T) {
	original := NewMessage("alice", "bob", "payload", func(o *MessageOptions) {
		o.Metadata = map[string]any{"priority": "high"}
	})

	restored, err := FromRecord(original.ToRecord())
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestMessage_RecordRoundTrip_NoMetadata(t *testing.T) {
	original := NewMessage("alice", "bob", "payload")

	restored, err := FromRecord(original.ToRecord())
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestFromRecord_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
	}{
		{name: "missing id", rec: map[string]any{"timestamp": time.Now()}},
		{name: "missing timestamp", rec: map[string]any{"id": "x"}},
		{name: "bad timestamp", rec: map[string]any{"id": "x", "timestamp": "not-a-time"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRecord(tt.rec)
			assert.Error(t, err)
		})
	}
}

func TestMessage_CreateResponse(t *testing.T) {
	msg := NewMessage("alice", "bob", "question")
	resp := msg.CreateResponse("answer", map[string]any{"extra": 1})

	assert.Equal(t, "bob", resp.Sender)
	assert.Equal(t, "alice", resp.Recipient)
	assert.Equal(t, "answer", resp.Content)
	assert.Equal(t, msg.ID, resp.Metadata[MetaInResponseTo])
	assert.Equal(t, 1, resp.Metadata["extra"])
	assert.True(t, resp.IsResponseTo(msg))
}

func TestMessage_IsResponseTo(t *testing.T) {
	msg := NewMessage("alice", "bob", "question")

	// Swapped endpoints but no causal link.
	unrelated := NewMessage("bob", "alice", "something else")
	assert.False(t, unrelated.IsResponseTo(msg))

	// Causal link but wrong endpoints.
	wrongEndpoints := NewMessage("carol", "alice", "answer", func(o *MessageOptions) {
		o.Metadata = map[string]any{MetaInResponseTo: msg.ID}
	})
	assert.False(t, wrongEndpoints.IsResponseTo(msg))

	// A response is not a response to itself.
	resp := msg.CreateResponse("answer", nil)
	assert.False(t, resp.IsResponseTo(resp))
}
