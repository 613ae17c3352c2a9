package live

import (
	"time"

	"jexam/internal/runner"
)

// VersionRow holds UI state for a single exam version.
type VersionRow struct {
	Ordinal    int
	Version    string
	Status     runner.VersionEventType
	Questions  int
	Points     float64
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates row counts by status bucket.
type StatusCounts struct {
	Queued        int
	Materializing int
	Writing       int
	Written       int
	Failed        int
}

// State captures the live UI state for a generation run.
type State struct {
	RunID     string
	Master    string
	Total     int
	StartedAt time.Time
	LastEvent string
	Rows      []VersionRow
	Counts    StatusCounts
	Finished  bool
}
