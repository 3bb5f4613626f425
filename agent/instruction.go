package agent

import (
	"github.com/hupe1980/graphmesh/core"
	"github.com/hupe1980/graphmesh/internal/util"
)

// Provider supplies dynamic instruction text at runtime. Implementations can
// derive instructions from shared run state, environment, etc.
type Provider interface {
	Instruction(run *core.RunState) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as Providers.
type Func func(run *core.RunState) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(run *core.RunState) (string, error) { return f(run) }

// Instruction represents either a static instruction string or a dynamic
// provider. Static text may contain {{ }} template markers rendered against
// the run's shared state.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a static string.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromProvider creates an Instruction from a dynamic provider.
func NewInstructionFromProvider(p Provider) Instruction { return Instruction{provider: p} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(run *core.RunState) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// IsStatic returns true if the instruction is backed by a static string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// IsZero reports whether no instruction was configured.
func (i Instruction) IsZero() bool { return i.provider == nil && i.text == "" }

// Resolve returns the instruction text, invoking the provider or rendering
// templates against the run's shared state as needed. Resolve tolerates a nil
// run for agents used outside an engine-driven traversal.
func (i Instruction) Resolve(run *core.RunState) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(run)
	}
	if run == nil {
		return i.text, nil
	}
	return util.RenderTemplate(i.text, run.StateSnapshot())
}
