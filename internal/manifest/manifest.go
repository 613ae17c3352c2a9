// Package manifest aggregates per-version grading metadata into the single
// exam-wide record consumed by autograder-config emitters.
package manifest

import (
	"errors"
	"fmt"

	"jexam/internal/master"
	"jexam/internal/materialize"
)

// ErrInternalConsistency marks a contract violation between the planner,
// materializer, and catalog. It is not reachable from any valid master.
var ErrInternalConsistency = errors.New("internal consistency violation")

// InternalConsistencyError reports an answer-key entry referencing a
// question the catalog does not know about.
type InternalConsistencyError struct {
	Version    string
	QuestionID string
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("version %s references unknown question %q", e.Version, e.QuestionID)
}

func (e *InternalConsistencyError) Unwrap() error { return ErrInternalConsistency }

// Entry is one question's grading metadata within a version.
type Entry struct {
	QuestionID   string             `json:"question_id"`
	Mode         master.GradingMode `json:"grading_mode"`
	Points       float64            `json:"points"`
	VariantIndex int                `json:"variant_index"`
	CheckName    string             `json:"check_name,omitempty"`
}

// Version summarizes one exam version.
type Version struct {
	Version     string  `json:"version"`
	TotalPoints float64 `json:"total_points"`
	Entries     []Entry `json:"questions"`
}

// Manifest is the exam-wide grading summary for one generation run.
type Manifest struct {
	Seed        int64     `json:"seed"`
	Format      string    `json:"format"`
	Versions    []Version `json:"versions"`
	MaxPoints   float64   `json:"max_points"`
	ManualCount int       `json:"manual_questions"`
	AutoCount   int       `json:"auto_questions"`
}

// Aggregate folds every version's answer keys into a manifest. Question ids
// are checked against the parsed master; an unknown id is a programming
// fault, not a user error.
func Aggregate(m *master.Master, seed int64, format string, documents []materialize.Document) (Manifest, error) {
	known := map[string]*master.Question{}
	for _, question := range m.Questions {
		known[question.ID] = question
	}

	out := Manifest{Seed: seed, Format: format}
	for _, doc := range documents {
		version := Version{Version: doc.Version}
		for _, key := range doc.Keys {
			if _, ok := known[key.QuestionID]; !ok {
				return Manifest{}, &InternalConsistencyError{Version: doc.Version, QuestionID: key.QuestionID}
			}
			version.TotalPoints += key.Points
			version.Entries = append(version.Entries, Entry{
				QuestionID:   key.QuestionID,
				Mode:         key.Mode,
				Points:       key.Points,
				VariantIndex: key.VariantIndex,
				CheckName:    key.CheckName,
			})
		}
		if version.TotalPoints > out.MaxPoints {
			out.MaxPoints = version.TotalPoints
		}
		out.Versions = append(out.Versions, version)
	}

	for _, question := range m.Questions {
		if question.Mode() == master.Manual {
			out.ManualCount++
		} else {
			out.AutoCount++
		}
	}
	return out, nil
}
