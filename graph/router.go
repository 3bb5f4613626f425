package graph

import (
	"context"
	"regexp"
	"strings"

	"github.com/hupe1980/graphmesh/core"
)

// Rule maps a content pattern to an outgoing edge label. Match is interpreted
// as a plain substring unless Regex is set, in which case it is compiled as a
// regular expression at router construction time.
type Rule struct {
	Match string
	Regex bool
	Label string
}

// Router computes an outgoing edge label from the inbound message's content
// against an ordered rule list: the first matching rule wins and rule order
// is preserved from configuration. When nothing matches, the declared default
// label is returned (an empty default defers to the node's default edge).
//
// A router never produces conversational content; the inbound message passes
// through unchanged.
type Router struct {
	rules        []Rule
	compiled     []*regexp.Regexp // nil entry for substring rules
	defaultLabel string
}

// NewRouter constructs a router. Invalid regular expressions are rejected
// here as configuration errors so traversal never sees them.
func NewRouter(defaultLabel string, rules ...Rule) (*Router, error) {
	compiled := make([]*regexp.Regexp, len(rules))
	for i, r := range rules {
		if r.Label == "" {
			return nil, core.NewConfigurationError("router rule %d has no label", i)
		}
		if !r.Regex {
			continue
		}
		re, err := regexp.Compile(r.Match)
		if err != nil {
			return nil, core.NewConfigurationError("router rule %d: invalid pattern %q: %v", i, r.Match, err)
		}
		compiled[i] = re
	}

	return &Router{rules: rules, compiled: compiled, defaultLabel: defaultLabel}, nil
}

// Invoke implements core.Executor.
func (r *Router) Invoke(_ context.Context, msg core.Message, _ *core.RunState) (core.Message, string, error) {
	return msg, r.Route(msg.Content), nil
}

// Route returns the label for content per first-match-wins rule evaluation.
func (r *Router) Route(content string) string {
	for i, rule := range r.rules {
		if re := r.compiled[i]; re != nil {
			if re.MatchString(content) {
				return rule.Label
			}
			continue
		}
		if strings.Contains(content, rule.Match) {
			return rule.Label
		}
	}
	return r.defaultLabel
}
