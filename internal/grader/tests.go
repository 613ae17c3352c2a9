// Package grader emits the autograder-facing artifacts for a generated
// exam: OK-format test files and the .otter/.ok configuration files that
// bind a notebook to its grading client.
package grader

import (
	"fmt"
	"os"
	"path/filepath"

	"jexam/internal/master"
	"jexam/internal/materialize"
)

// WriteTests writes one OK-format test file per autograded entry into
// testsDir. Hidden tests are filtered out unless includeHidden is set
// (student directories get public tests only).
func WriteTests(testsDir string, keys []materialize.AnswerKeyEntry, includeHidden bool) error {
	if err := os.MkdirAll(testsDir, 0o755); err != nil {
		return fmt.Errorf("create tests dir: %w", err)
	}
	for _, key := range keys {
		if key.Mode != master.Auto {
			continue
		}
		tests := key.Tests
		if !includeHidden {
			tests = publicOnly(tests)
		}
		if len(tests) == 0 && !includeHidden {
			continue
		}
		path := filepath.Join(testsDir, key.CheckName+".py")
		if err := writeTestFile(path, key.CheckName, key.Points, tests); err != nil {
			return err
		}
	}
	return nil
}

// writeTestFile renders one OK test suite as a Python module.
func writeTestFile(path, name string, points float64, tests []master.Test) error {
	cases := make([]any, 0, len(tests))
	for _, t := range tests {
		cases = append(cases, map[string]any{
			"code":   doctestCase(t.Input, t.Output),
			"hidden": t.Hidden,
			"locked": false,
		})
	}
	payload := map[string]any{
		"name":   name,
		"points": points,
		"suites": []any{
			map[string]any{
				"cases":    cases,
				"scored":   true,
				"setup":    "",
				"teardown": "",
				"type":     "doctest",
			},
		},
	}
	content := "test = " + pyLiteral(payload, 0) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write test %s: %w", filepath.Base(path), err)
	}
	return nil
}

func publicOnly(tests []master.Test) []master.Test {
	out := make([]master.Test, 0, len(tests))
	for _, t := range tests {
		if !t.Hidden {
			out = append(out, t)
		}
	}
	return out
}
