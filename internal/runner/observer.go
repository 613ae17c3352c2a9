package runner

import "time"

// VersionEventType identifies an exam-version status update for observers.
type VersionEventType string

const (
	// VersionQueued marks a version planned but not yet materializing.
	VersionQueued VersionEventType = "queued"
	// VersionMaterializing marks variant resolution in progress.
	VersionMaterializing VersionEventType = "materializing"
	// VersionWriting marks artifact writes in progress.
	VersionWriting VersionEventType = "writing"
	// VersionWritten marks a fully written version directory.
	VersionWritten VersionEventType = "written"
	// VersionFailed marks a materialization or write failure.
	VersionFailed VersionEventType = "failed"
)

// VersionEvent carries a single status update for one exam version.
type VersionEvent struct {
	Version   string
	Ordinal   int
	Type      VersionEventType
	Questions int
	Points    float64
	Error     string
	EmittedAt time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, masterPath string, versions int)
	// OnVersionEvent delivers a version status update.
	OnVersionEvent(event VersionEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) OnRunStart(string, string, int) {}
func (NopObserver) OnVersionEvent(VersionEvent)    {}
func (NopObserver) OnRunEnd(Results)               {}
