package config

import (
	"fmt"
	"regexp"
	"strings"

	"jexam/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

var questionIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Validate checks a normalized exam config for correctness.
func Validate(cfg *spec.ExamConfig) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.NumExams < 1 {
		add("num_exams", "must be >= 1 (or declare students)")
	}
	if len(cfg.Students) > 0 && cfg.NumExams != len(cfg.Students) {
		add("num_exams", fmt.Sprintf("conflicts with %d declared students", len(cfg.Students)))
	}
	seen := map[string]struct{}{}
	for i, student := range cfg.Students {
		id := strings.TrimSpace(student)
		if id == "" {
			add(fmt.Sprintf("students[%d]", i), "is required")
			continue
		}
		if _, exists := seen[id]; exists {
			add("students", fmt.Sprintf("duplicate identifier %q", id))
			continue
		}
		seen[id] = struct{}{}
	}

	switch cfg.Format {
	case "otter":
	case "ok":
		if strings.TrimSpace(cfg.Endpoint) == "" {
			add("endpoint", "is required for the ok format")
		}
	default:
		add("format", fmt.Sprintf("unsupported format %q (expected otter|ok)", cfg.Format))
	}

	if cfg.Workers < 1 {
		add("workers", "must be >= 1")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// ValidateQuestion checks a per-question config. The position is the cell
// index of the BEGIN QUESTION delimiter, used for error reporting.
func ValidateQuestion(cfg spec.QuestionConfig, position int) error {
	var issues []Issue
	field := fmt.Sprintf("question at cell %d", position)
	if cfg.ID != "" && !questionIDPattern.MatchString(cfg.ID) {
		issues = append(issues, Issue{Field: field + ".id", Message: fmt.Sprintf("invalid identifier %q", cfg.ID)})
	}
	if cfg.Points != nil && *cfg.Points < 0 {
		issues = append(issues, Issue{Field: field + ".points", Message: "must be >= 0"})
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
