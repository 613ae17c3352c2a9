// Package master parses a master exam notebook into an ordered sequence of
// classified blocks and a catalog of multi-version questions. Parsing is a
// pure transformation: the returned structures are never mutated afterwards.
package master

import (
	"crypto/sha256"
	"encoding/hex"

	"jexam/internal/notebook"
	"jexam/internal/spec"
)

// BlockKind classifies a block of the master document.
type BlockKind int

const (
	// Static is content reproduced verbatim in every exam version.
	Static BlockKind = iota
	// SingleQuestion is a question with exactly one variant.
	SingleQuestion
	// VariantGroup is a question with two or more interchangeable variants.
	VariantGroup
)

// String returns the block kind name.
func (k BlockKind) String() string {
	switch k {
	case Static:
		return "static"
	case SingleQuestion:
		return "single_question"
	case VariantGroup:
		return "variant_group"
	default:
		return "unknown"
	}
}

// GradingMode distinguishes autograded from manually graded questions.
type GradingMode string

const (
	Auto   GradingMode = "auto"
	Manual GradingMode = "manual"
)

// Block is one unit of the master document in original order.
type Block struct {
	Kind     BlockKind
	Position int             // cell index where the block starts
	Cells    []notebook.Cell // static content; nil for question kinds
	Question *Question       // set for SingleQuestion and VariantGroup
}

// Question holds every variant of one question plus its grading config.
type Question struct {
	ID       string
	Config   spec.QuestionConfig
	Position int
	Variants []Variant
}

// Points returns the question's point value. An omitted value defaults to 1;
// an explicit 0 marks an ungraded question and is kept.
func (q *Question) Points() float64 {
	if q.Config.Points == nil {
		return 1
	}
	return *q.Config.Points
}

// Mode returns the question's grading mode.
func (q *Question) Mode() GradingMode {
	if q.Config.Manual {
		return Manual
	}
	return Auto
}

// Variant is one interchangeable rendering of a question.
type Variant struct {
	Index     int
	Cells     []notebook.Cell // original cells with tests removed, solutions kept
	Sanitized []notebook.Cell // solutions replaced by prompts
	Tests     []Test
	Hash      string // SHA-256 over the raw source, stable across runs
}

// Test is an extracted autograder test: doctest input, expected output, and
// whether the test is withheld from students.
type Test struct {
	Input  string
	Output string
	Hidden bool
}

// AnyPublic reports whether any of the tests is visible to students.
func AnyPublic(tests []Test) bool {
	for _, t := range tests {
		if !t.Hidden {
			return true
		}
	}
	return false
}

// hashCells fingerprints the raw source of a cell run.
func hashCells(cells []notebook.Cell) string {
	h := sha256.New()
	for _, cell := range cells {
		h.Write([]byte(cell.Source.Text()))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
