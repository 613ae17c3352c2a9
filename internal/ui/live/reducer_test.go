package live

import (
	"strings"
	"testing"
	"time"

	"jexam/internal/runner"
)

func event(ordinal int, version string, kind runner.VersionEventType) runner.VersionEvent {
	return runner.VersionEvent{
		Version:   version,
		Ordinal:   ordinal,
		Type:      kind,
		EmittedAt: time.Date(2026, 8, 25, 10, 0, ordinal, 0, time.UTC),
	}
}

func TestReduceVersionLifecycle(t *testing.T) {
	state := State{Total: 2}

	state = Reduce(state, event(0, "exam_1", runner.VersionQueued))
	state = Reduce(state, event(1, "exam_2", runner.VersionQueued))
	if len(state.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(state.Rows))
	}
	if state.Counts.Queued != 2 {
		t.Fatalf("expected 2 queued, got %+v", state.Counts)
	}

	state = Reduce(state, event(0, "exam_1", runner.VersionMaterializing))
	if state.Rows[0].Status != runner.VersionMaterializing {
		t.Fatalf("row status not updated: %+v", state.Rows[0])
	}
	if state.Rows[0].StartedAt.IsZero() {
		t.Fatalf("materializing must record a start time")
	}

	written := event(0, "exam_1", runner.VersionWritten)
	written.Questions = 3
	written.Points = 7.5
	state = Reduce(state, written)
	row := state.Rows[0]
	if row.Status != runner.VersionWritten || row.Questions != 3 || row.Points != 7.5 {
		t.Fatalf("written row not updated: %+v", row)
	}
	if row.FinishedAt.IsZero() {
		t.Fatalf("written must record a finish time")
	}
	if state.Counts.Written != 1 || state.Counts.Queued != 1 {
		t.Fatalf("unexpected counts: %+v", state.Counts)
	}
	if !strings.Contains(state.LastEvent, "exam_1 written") {
		t.Fatalf("unexpected last event %q", state.LastEvent)
	}
}

func TestReduceFailure(t *testing.T) {
	state := Reduce(State{}, event(0, "exam_1", runner.VersionQueued))
	failed := event(0, "exam_1", runner.VersionFailed)
	failed.Error = "disk full"
	state = Reduce(state, failed)

	row := state.Rows[0]
	if row.Status != runner.VersionFailed || row.Error != "disk full" {
		t.Fatalf("failure not recorded: %+v", row)
	}
	if state.Counts.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", state.Counts)
	}
	if !strings.Contains(state.LastEvent, "disk full") {
		t.Fatalf("unexpected last event %q", state.LastEvent)
	}
}

func TestReduceOutOfOrderOrdinal(t *testing.T) {
	// An event for ordinal 3 grows the table and backfills queued rows.
	state := Reduce(State{}, event(3, "exam_4", runner.VersionMaterializing))
	if len(state.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(state.Rows))
	}
	for i := 0; i < 3; i++ {
		if state.Rows[i].Status != runner.VersionQueued {
			t.Fatalf("row %d should be queued: %+v", i, state.Rows[i])
		}
	}
	if state.Rows[3].Version != "exam_4" {
		t.Fatalf("row 3 version not set: %+v", state.Rows[3])
	}
}

func TestReduceNegativeOrdinalIgnored(t *testing.T) {
	state := Reduce(State{}, event(-1, "bogus", runner.VersionWritten))
	if len(state.Rows) != 0 {
		t.Fatalf("negative ordinals must not create rows: %+v", state.Rows)
	}
}

func TestReduceIntermediateEventsKeepLastMessage(t *testing.T) {
	state := State{LastEvent: "exam_1 written (3 questions, 7.5 points)"}
	state = Reduce(state, event(1, "exam_2", runner.VersionMaterializing))
	if state.LastEvent != "exam_1 written (3 questions, 7.5 points)" {
		t.Fatalf("intermediate events must not clear the footer: %q", state.LastEvent)
	}
}
