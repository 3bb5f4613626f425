package core

// Termination classifies how a run ended. Callers always receive a
// termination kind together with the transcript accumulated so far; a run is
// never returned half-built.
type Termination string

const (
	// TerminationTerminal means traversal reached the graph's end marker.
	TerminationTerminal Termination = "terminal"

	// TerminationBudgetExceeded means the step budget ran out before a
	// terminal was reached. This is an expected outcome, not an error.
	TerminationBudgetExceeded Termination = "budget-exceeded"

	// TerminationFatal means traversal aborted on an unrecoverable defect
	// (unmatched routing label with no default, or an executor returning a
	// hard error). The partial transcript is still returned.
	TerminationFatal Termination = "fatal"
)

// RunState is the mutable per-run container the engine threads through every
// node invocation: the shared transcript, the id of the node currently being
// visited and a strictly increasing step counter.
//
// A RunState is owned by exactly one run. The traversal loop is single
// threaded, so no internal locking is performed; sharing one RunState across
// concurrent runs is a caller bug.
type RunState struct {
	runID       string
	transcript  []Message
	currentNode string
	steps       int
	state       map[string]any
}

// NewRunState creates run state positioned at the entry node.
func NewRunState(runID, entryNode string) *RunState {
	return &RunState{
		runID:       runID,
		currentNode: entryNode,
		state:       make(map[string]any),
	}
}

// RunID returns the unique identifier of this run.
func (r *RunState) RunID() string { return r.runID }

// CurrentNode returns the id of the node the run is positioned at.
func (r *RunState) CurrentNode() string { return r.currentNode }

// Steps returns the number of node invocations recorded so far.
func (r *RunState) Steps() int { return r.steps }

// Record appends the message produced by visiting node and advances the step
// counter. The counter increases by exactly one per node invocation, which is
// what the step budget is measured against.
func (r *RunState) Record(node string, msg Message) {
	r.currentNode = node
	r.transcript = append(r.transcript, msg)
	r.steps++
}

// Seed appends the initial message without consuming a step. Used once by the
// engine before the traversal loop starts.
func (r *RunState) Seed(msg Message) {
	r.transcript = append(r.transcript, msg)
}

// MoveTo repositions the run at the given node without recording a step.
func (r *RunState) MoveTo(node string) { r.currentNode = node }

// Transcript returns a defensive copy of the full ordered message sequence.
func (r *RunState) Transcript() []Message {
	out := make([]Message, len(r.transcript))
	copy(out, r.transcript)
	return out
}

// Last returns up to n most recent transcript messages (oldest first). A
// non-positive n returns the full transcript.
func (r *RunState) Last(n int) []Message {
	if n <= 0 || n >= len(r.transcript) {
		return r.Transcript()
	}
	out := make([]Message, n)
	copy(out, r.transcript[len(r.transcript)-n:])
	return out
}

// LastMessage returns the most recent transcript entry, if any.
func (r *RunState) LastMessage() (Message, bool) {
	if len(r.transcript) == 0 {
		return Message{}, false
	}
	return r.transcript[len(r.transcript)-1], true
}

// SetState stores a shared key/value pair visible to subsequent node
// invocations of the same run (instruction templating, tool scratch data).
func (r *RunState) SetState(key string, value any) { r.state[key] = value }

// State returns the shared value for key and whether it is present.
func (r *RunState) State(key string) (any, bool) {
	v, ok := r.state[key]
	return v, ok
}

// StateSnapshot returns a copy of the shared key/value state.
func (r *RunState) StateSnapshot() map[string]any {
	cp := make(map[string]any, len(r.state))
	for k, v := range r.state {
		cp[k] = v
	}
	return cp
}

// RunResult is what callers receive when a run ends, regardless of outcome.
type RunResult struct {
	// RunID identifies the run.
	RunID string `json:"run_id"`
	// Transcript is the ordered message sequence produced by the run.
	Transcript []Message `json:"transcript"`
	// Termination classifies how the run ended.
	Termination Termination `json:"termination"`
	// LastNode is the id of the last node that was visited.
	LastNode string `json:"last_node"`
	// Steps is the number of node invocations executed.
	Steps int `json:"steps"`
	// Err carries the defect that aborted the run when Termination is
	// TerminationFatal, nil otherwise.
	Err error `json:"-"`
}

// TranscriptStore persists finished run results. Implementations must be safe
// for concurrent use; the in-memory reference implementation lives in the
// transcript package.
type TranscriptStore interface {
	Save(result *RunResult) error
	Get(runID string) (*RunResult, error)
	List() ([]string, error)
}
