package tool

import "sync"

// Registry maps tool names to capabilities for a single agent. Lookup is by
// exact name only; there is no partial or fuzzy matching and dispatch never
// iterates the registry. Registering an existing name overwrites silently
// (last write wins).
//
// The registry is safe for concurrent use so agents may be shared across
// sequential runs while tools are registered from setup code.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry constructs an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its own name, replacing any previous entry with
// the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Get returns the tool registered under name. Absence is reported as a
// *ToolError with code NOT_FOUND so agents can convert it into an
// error-content response instead of failing the run.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return nil, NewToolError(name, "tool not found", CodeNotFound)
	}
	return t, nil
}

// Has reports whether a tool is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Names returns the registered tool names in unspecified order. Intended for
// building backend prompts, not for dispatch.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
