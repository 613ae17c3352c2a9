package grader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jexam/internal/master"
	"jexam/internal/materialize"
)

func fixtureKeys() []materialize.AnswerKeyEntry {
	return []materialize.AnswerKeyEntry{
		{
			QuestionID: "auto_q",
			Points:     2,
			Mode:       master.Auto,
			CheckName:  "abc123",
			Tests: []master.Test{
				{Input: "f(2)", Output: "4", Hidden: false},
				{Input: "f(10)", Output: "20", Hidden: true},
			},
		},
		{
			QuestionID: "manual_q",
			Points:     5,
			Mode:       master.Manual,
			CheckName:  "def456",
		},
	}
}

func TestWriteTestsStudentDirFiltersHidden(t *testing.T) {
	dir := t.TempDir()
	if err := WriteTests(dir, fixtureKeys(), false); err != nil {
		t.Fatalf("write tests: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "abc123.py"))
	if err != nil {
		t.Fatalf("read test file: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "test = {") {
		t.Fatalf("not an OK test module:\n%s", content)
	}
	if !strings.Contains(content, ">>> f(2)") {
		t.Fatalf("public test missing:\n%s", content)
	}
	if strings.Contains(content, "f(10)") {
		t.Fatalf("hidden test leaked into student file:\n%s", content)
	}
	if !strings.Contains(content, "'points': 2") {
		t.Fatalf("points missing:\n%s", content)
	}
	if !strings.Contains(content, "'type': 'doctest'") {
		t.Fatalf("suite type missing:\n%s", content)
	}
}

func TestWriteTestsAutograderKeepsHidden(t *testing.T) {
	dir := t.TempDir()
	if err := WriteTests(dir, fixtureKeys(), true); err != nil {
		t.Fatalf("write tests: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "abc123.py"))
	if err != nil {
		t.Fatalf("read test file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "f(10)") {
		t.Fatalf("hidden test missing from autograder file:\n%s", content)
	}
	if !strings.Contains(content, "'hidden': True") {
		t.Fatalf("hidden flag missing:\n%s", content)
	}
}

func TestWriteTestsSkipsManualQuestions(t *testing.T) {
	dir := t.TempDir()
	if err := WriteTests(dir, fixtureKeys(), true); err != nil {
		t.Fatalf("write tests: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "def456.py")); !os.IsNotExist(err) {
		t.Fatalf("manual question must not produce a test file")
	}
}

func TestWriteTestsSkipsAllHiddenStudentFile(t *testing.T) {
	dir := t.TempDir()
	keys := []materialize.AnswerKeyEntry{{
		QuestionID: "q",
		Mode:       master.Auto,
		CheckName:  "onlyhidden",
		Tests:      []master.Test{{Input: "f(1)", Output: "1", Hidden: true}},
	}}
	if err := WriteTests(dir, keys, false); err != nil {
		t.Fatalf("write tests: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "onlyhidden.py")); !os.IsNotExist(err) {
		t.Fatalf("student file with zero public tests must be skipped")
	}
}
