package graph

import (
	"context"
	"strings"

	"github.com/hupe1980/graphmesh/core"
)

// Labels yielded by conditional nodes. Wire the outgoing edges of a
// conditional with exactly these two condition labels.
const (
	LabelTrue  = "true"
	LabelFalse = "false"
)

// Predicate evaluates a structural property of a message. Predicates should
// be pure: deterministic and free of side effects.
type Predicate func(msg core.Message) bool

// Conditional inspects one transcript message (by default the most recent)
// and yields LabelTrue or LabelFalse. It never produces new conversational
// content; the inbound message passes through unchanged.
type Conditional struct {
	predicate Predicate
	offset    int // 0 = most recent transcript entry, 1 = one before it, ...
}

// ConditionalOptions configures a Conditional node.
type ConditionalOptions struct {
	// Offset selects which transcript entry to inspect, counted backwards
	// from the most recent. Defaults to 0.
	Offset int
}

// NewConditional constructs a conditional node around a predicate.
func NewConditional(p Predicate, optFns ...func(o *ConditionalOptions)) *Conditional {
	opts := ConditionalOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Conditional{predicate: p, offset: opts.Offset}
}

// Invoke implements core.Executor. When the transcript is shorter than the
// configured offset the inbound message itself is inspected.
func (c *Conditional) Invoke(_ context.Context, msg core.Message, run *core.RunState) (core.Message, string, error) {
	target := msg
	if run != nil {
		transcript := run.Transcript()
		if idx := len(transcript) - 1 - c.offset; idx >= 0 {
			target = transcript[idx]
		}
	}

	if c.predicate(target) {
		return msg, LabelTrue, nil
	}
	return msg, LabelFalse, nil
}

// IsToolResult reports whether a message is tagged as a tool result.
func IsToolResult(msg core.Message) bool {
	v, ok := msg.Meta(core.MetaToolResult)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// IsError reports whether a message carries a failure description, i.e. it
// was synthesized by an agent converting an internal error.
func IsError(msg core.Message) bool {
	_, ok := msg.Meta(core.MetaError)
	return ok
}

// ContentContains returns a predicate matching messages whose content
// contains substr.
func ContentContains(substr string) Predicate {
	return func(msg core.Message) bool { return strings.Contains(msg.Content, substr) }
}

// HasMetadata returns a predicate matching messages carrying the given
// metadata key.
func HasMetadata(key string) Predicate {
	return func(msg core.Message) bool {
		_, ok := msg.Meta(key)
		return ok
	}
}
