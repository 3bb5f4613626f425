package transcript

import (
	"fmt"
	"sync"

	"github.com/hupe1980/graphmesh/core"
)

// InMemoryStore is a volatile TranscriptStore keeping run results in a
// process-local map. It is safe for concurrent access. Results are stored and
// returned as shallow copies so callers cannot mutate retained state through
// the shared transcript slice header.
type InMemoryStore struct {
	mu      sync.RWMutex
	results map[string]*core.RunResult
}

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{results: make(map[string]*core.RunResult)}
}

// Save stores the result keyed by its run id, overwriting any previous entry.
func (s *InMemoryStore) Save(result *core.RunResult) error {
	if result == nil || result.RunID == "" {
		return fmt.Errorf("transcript store: result without run id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.RunID] = clone(result)
	return nil
}

// Get returns the stored result for runID.
func (s *InMemoryStore) Get(runID string) (*core.RunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[runID]
	if !ok {
		return nil, fmt.Errorf("transcript store: run %s not found", runID)
	}
	return clone(res), nil
}

// List returns the stored run ids in unspecified order.
func (s *InMemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.results))
	for id := range s.results {
		ids = append(ids, id)
	}
	return ids, nil
}

func clone(r *core.RunResult) *core.RunResult {
	cp := *r
	cp.Transcript = make([]core.Message, len(r.Transcript))
	copy(cp.Transcript, r.Transcript)
	return &cp
}
