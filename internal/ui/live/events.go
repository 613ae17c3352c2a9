package live

import "jexam/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventVersion delivers an exam-version status update.
	EventVersion
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind     EventKind
	RunID    string
	Master   string
	Total    int
	Version  runner.VersionEvent
	Results  runner.Results
}
