package runner

import (
	"time"
)

// VersionSummary is the per-version line item in a run's results file.
type VersionSummary struct {
	Version     string         `json:"version"`
	Ordinal     int            `json:"ordinal"`
	Questions   int            `json:"questions"`
	TotalPoints float64        `json:"total_points"`
	Choices     map[string]int `json:"variant_choices"`
	Dir         string         `json:"dir"`
}

// Results is the run summary written to results.json and handed to
// observers on completion.
type Results struct {
	RunID           string           `json:"run_id"`
	MasterPath      string           `json:"master"`
	OutputDir       string           `json:"output_dir"`
	Seed            int64            `json:"seed"`
	Format          string           `json:"format"`
	VersionCount    int              `json:"version_count"`
	QuestionCount   int              `json:"question_count"`
	VariantGroups   int              `json:"variant_groups"`
	Advisories      []string         `json:"advisories,omitempty"`
	Versions        []VersionSummary `json:"versions"`
	StartedAt       time.Time        `json:"started_at"`
	FinishedAt      time.Time        `json:"finished_at"`
	DurationSeconds float64          `json:"duration_seconds"`
}
