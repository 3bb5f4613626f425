package agent

// Status is the agent's invocation state machine:
//
//	idle --Receive--> busy --success--> idle
//	                  busy --failure--> error
//
// Error is terminal for that invocation only; the next Receive call is still
// accepted and transitions the agent back through busy.
type Status int

const (
	// StatusIdle means the agent is ready to receive.
	StatusIdle Status = iota
	// StatusBusy means a Receive call is in flight.
	StatusBusy
	// StatusError means the last invocation failed. The agent is not disabled.
	StatusError
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusBusy:
		return "busy"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}
