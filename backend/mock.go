package backend

import (
	"context"
	"fmt"
	"sync"
)

// Mock is a lightweight in-memory Backend useful for tests and examples.
// Responses are keyed by exact prompt; unmatched prompts fall back to a
// generated echo. FailWith switches the backend into a failure mode where
// every call returns the configured error.
type Mock struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	failErr   error
	calls     int
}

// NewMock constructs a Mock backend.
func NewMock(name string) *Mock {
	return &Mock{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *Mock) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// FailWith makes every subsequent Generate call return err. Passing nil
// restores normal operation.
func (m *Mock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// Calls returns the number of Generate invocations observed.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements Backend.
func (m *Mock) Generate(ctx context.Context, req Request) (string, error) {
	m.mu.Lock()
	m.calls++
	failErr := m.failErr
	resp, ok := m.responses[req.Prompt]
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if failErr != nil {
		return "", failErr
	}
	if !ok {
		resp = fmt.Sprintf("Mock response to: %s", req.Prompt)
	}
	return resp, nil
}

// Info implements Backend.
func (m *Mock) Info() Info { return m.info }
