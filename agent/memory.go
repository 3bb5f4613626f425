package agent

import (
	"sync"
	"time"

	"github.com/hupe1980/graphmesh/core"
)

// MemoryEntry is one record of the agent's private memory log: the message
// plus a derived human-readable timestamp captured at append time.
type MemoryEntry struct {
	Message  core.Message `json:"message"`
	LoggedAt string       `json:"logged_at"`
}

// Memory is an append-only log of messages an agent produced or consumed.
// It is private to its owning agent; no other component mutates it. Clearing
// resets the log, not the owning agent's identity.
type Memory struct {
	mu      sync.RWMutex
	entries []MemoryEntry
}

// NewMemory constructs an empty memory log.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records a message. Entries keep arrival order.
func (m *Memory) Append(msg core.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, MemoryEntry{
		Message:  msg,
		LoggedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// Entries returns the most recent limit entries (all entries when limit is
// non-positive) without mutating storage. The returned slice is a copy.
func (m *Memory) Entries(limit int) []MemoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.entries)
	if limit > 0 && limit < n {
		out := make([]MemoryEntry, limit)
		copy(out, m.entries[n-limit:])
		return out
	}
	out := make([]MemoryEntry, n)
	copy(out, m.entries)
	return out
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Clear discards all entries.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}
