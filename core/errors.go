package core

import "fmt"

// ConfigurationError reports a malformed graph: unresolved node references,
// ambiguous edge labels, a missing entry point. It is raised at build time,
// never during traversal.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("graph configuration error: %s", e.Reason)
}

// NewConfigurationError formats a build-time graph defect.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// RoutingError reports that traversal could not resolve an outgoing edge: the
// executor returned a label with no matching edge and the node declares no
// default. It aborts the run with TerminationFatal.
type RoutingError struct {
	Node  string
	Label string
}

func (e *RoutingError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("routing error at node %q: no unconditional or default edge", e.Node)
	}
	return fmt.Sprintf("routing error at node %q: no edge matches label %q and no default declared", e.Node, e.Label)
}
