package master

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedQuestion is the sentinel for structural parse failures.
	ErrMalformedQuestion = errors.New("malformed question")
	// ErrDuplicateQuestionID is the sentinel for repeated question ids.
	ErrDuplicateQuestionID = errors.New("duplicate question id")
)

// MalformedQuestionError reports an unparseable block with the offending
// cell's position in the master notebook.
type MalformedQuestionError struct {
	Position int
	Reason   string
}

func (e *MalformedQuestionError) Error() string {
	return fmt.Sprintf("cell %d: %s", e.Position, e.Reason)
}

func (e *MalformedQuestionError) Unwrap() error { return ErrMalformedQuestion }

// DuplicateQuestionIDError reports two blocks declaring the same question id.
type DuplicateQuestionIDError struct {
	QuestionID string
	Position   int
}

func (e *DuplicateQuestionIDError) Error() string {
	return fmt.Sprintf("cell %d: question id %q is already declared", e.Position, e.QuestionID)
}

func (e *DuplicateQuestionIDError) Unwrap() error { return ErrDuplicateQuestionID }

func malformedf(position int, format string, args ...any) error {
	return &MalformedQuestionError{Position: position, Reason: fmt.Sprintf(format, args...)}
}
