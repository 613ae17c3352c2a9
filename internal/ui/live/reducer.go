package live

import (
	"fmt"

	"jexam/internal/runner"
)

// Reduce applies a version event to the UI state.
func Reduce(state State, event runner.VersionEvent) State {
	state = ensureRow(state, event)
	state = applyVersionEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target ordinal.
func ensureRow(state State, event runner.VersionEvent) State {
	if event.Ordinal < 0 {
		return state
	}
	if event.Ordinal < len(state.Rows) {
		return state
	}
	rows := make([]VersionRow, event.Ordinal+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = VersionRow{Ordinal: i, Status: runner.VersionQueued}
	}
	state.Rows = rows
	return state
}

// applyVersionEvent updates a row with the given event.
func applyVersionEvent(state State, event runner.VersionEvent) State {
	if event.Ordinal < 0 || event.Ordinal >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Ordinal]
	if row.Version == "" {
		row.Version = event.Version
	}
	row.Status = event.Type
	switch event.Type {
	case runner.VersionMaterializing:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.VersionWriting:
		row.Questions = event.Questions
	case runner.VersionWritten:
		row.Questions = event.Questions
		row.Points = event.Points
		row.FinishedAt = event.EmittedAt
	case runner.VersionFailed:
		row.Error = event.Error
		row.FinishedAt = event.EmittedAt
	}
	state.Rows[event.Ordinal] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []VersionRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.VersionQueued:
			counts.Queued++
		case runner.VersionMaterializing:
			counts.Materializing++
		case runner.VersionWriting:
			counts.Writing++
		case runner.VersionWritten:
			counts.Written++
		case runner.VersionFailed:
			counts.Failed++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.VersionEvent) string {
	switch event.Type {
	case runner.VersionWritten:
		return fmt.Sprintf("%s written (%d questions, %.4g points)", event.Version, event.Questions, event.Points)
	case runner.VersionFailed:
		return fmt.Sprintf("%s failed: %s", event.Version, event.Error)
	}
	return ""
}
