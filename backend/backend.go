// Package backend defines the reasoning-backend abstraction agents delegate
// text generation to. A Backend is an opaque, possibly-failing remote call;
// agents treat every failure as recoverable and convert it into an
// error-content response. Concrete adapters for the Anthropic and OpenAI
// APIs live in subpackages; Mock provides a deterministic in-memory backend
// for tests and examples.
package backend

import (
	"context"
)

// Role values used in conversation history turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of prior conversation supplied to a backend.
type Turn struct {
	Role    string `json:"role"` // RoleUser or RoleAssistant
	Content string `json:"content"`
}

// Request captures the normalized generation input produced by an agent.
type Request struct {
	// Prompt is the current input to respond to.
	Prompt string `json:"prompt"`
	// SystemMessage carries the agent's instruction, if any.
	SystemMessage string `json:"system_message,omitempty"`
	// History holds prior conversation turns, oldest first.
	History []Turn `json:"history,omitempty"`
	// Temperature controls sampling randomness. Zero means provider default.
	Temperature float64 `json:"temperature,omitempty"`
}

// Info contains metadata about a backend implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Backend is the minimal interface agents require to drive generation.
// Implementations must honor context cancellation and deadlines; the engine
// imposes a per-node timeout through the context.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Info returns information about the backend implementation.
	Info() Info
}
