package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNamedTool(name, description string) Tool {
	return NewFunctionTool(name, description, map[string]any{"type": "object"},
		func(context.Context, map[string]any) (any, error) { return name, nil })
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(newNamedTool("lookup", "Look things up"))

	got, err := r.Get("lookup")
	require.NoError(t, err)
	assert.Equal(t, "lookup", got.Name())
	assert.True(t, r.Has("lookup"))
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_OverwriteOnDuplicate(t *testing.T) {
	r := NewRegistry()
	r.Register(newNamedTool("job", "first"))
	r.Register(newNamedTool("job", "second"))

	got, err := r.Get("job")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Description())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_NotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("missing")
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeNotFound, toolErr.Code)
	assert.Equal(t, "missing", toolErr.Tool)
}

func TestRegistry_ExactNameOnly(t *testing.T) {
	r := NewRegistry()
	r.Register(newNamedTool("calculate_sum", "sum"))

	_, err := r.Get("calculate")
	assert.Error(t, err)
	_, err = r.Get("calculate_sum_v2")
	assert.Error(t, err)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.Register(newNamedTool("a", ""))
	r.Register(newNamedTool("b", ""))

	assert.ElementsMatch(t, []string{"a", "b"}, r.Names())
}
