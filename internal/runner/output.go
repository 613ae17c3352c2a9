package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jexam/internal/grader"
	"jexam/internal/manifest"
	"jexam/internal/master"
	"jexam/internal/materialize"
	"jexam/internal/notebook"
	"jexam/internal/spec"
)

// outputWriter lays out a run's artifacts under the output directory:
//
//	<out>/<version>/<name>.ipynb     student notebook
//	<out>/<version>/<name>.otter|.ok autograder client config
//	<out>/<version>/answer_key.json
//	<out>/<version>/tests/           public OK test files (public_tests only)
//	<out>/autograder/                solutions notebook + full test set
//	<out>/manifest.json
//	<out>/results.json
type outputWriter struct {
	baseDir      string
	notebookName string // file stem, e.g. "midterm"
	cfg          spec.ExamConfig
}

func newOutputWriter(baseDir string, cfg spec.ExamConfig) *outputWriter {
	name := cfg.Name
	if name == "" {
		name = "exam"
	}
	return &outputWriter{baseDir: baseDir, notebookName: name, cfg: cfg}
}

// writeVersion writes one exam version's directory and returns its path.
func (w *outputWriter) writeVersion(doc materialize.Document) (string, error) {
	dir := filepath.Join(w.baseDir, doc.Version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create version dir: %w", err)
	}
	nbPath := filepath.Join(dir, w.notebookName+".ipynb")
	if err := notebook.Write(nbPath, doc.Notebook); err != nil {
		return "", fmt.Errorf("version %s: %w", doc.Version, err)
	}
	if err := w.writeGraderConfig(nbPath); err != nil {
		return "", fmt.Errorf("version %s: %w", doc.Version, err)
	}
	if err := writeAnswerKey(filepath.Join(dir, "answer_key.json"), doc); err != nil {
		return "", fmt.Errorf("version %s: %w", doc.Version, err)
	}
	// Test files carry expected outputs, so students only get them when the
	// exam opts in. The autograder directory always has the full set.
	if w.cfg.PublicTests {
		if err := grader.WriteTests(filepath.Join(dir, "tests"), doc.Keys, false); err != nil {
			return "", fmt.Errorf("version %s: %w", doc.Version, err)
		}
	}
	return dir, nil
}

// writeAutograder writes the solutions notebook and the complete test set,
// hidden tests included.
func (w *outputWriter) writeAutograder(m *master.Master, opts materialize.Options) error {
	dir := filepath.Join(w.baseDir, "autograder")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create autograder dir: %w", err)
	}
	nb := materialize.Solutions(m, opts)
	nbPath := filepath.Join(dir, w.notebookName+".ipynb")
	if err := notebook.Write(nbPath, nb); err != nil {
		return fmt.Errorf("autograder: %w", err)
	}
	if err := w.writeGraderConfig(nbPath); err != nil {
		return fmt.Errorf("autograder: %w", err)
	}
	if err := grader.WriteTests(filepath.Join(dir, "tests"), materialize.SolutionKeys(m), true); err != nil {
		return fmt.Errorf("autograder: %w", err)
	}
	return nil
}

// writeGraderConfig emits the .otter or .ok file next to a notebook.
func (w *outputWriter) writeGraderConfig(nbPath string) error {
	if w.cfg.Format == "ok" {
		_, err := grader.WriteDotOK(nbPath, w.cfg.Endpoint)
		return err
	}
	return grader.WriteOtterConfig(nbPath, w.cfg)
}

func (w *outputWriter) writeManifest(m manifest.Manifest) error {
	return writeJSON(filepath.Join(w.baseDir, "manifest.json"), m)
}

func (w *outputWriter) writeResults(r Results) error {
	return writeJSON(filepath.Join(w.baseDir, "results.json"), r)
}

// answerKeyFile is the on-disk schema of a version's answer_key.json.
type answerKeyFile struct {
	Version   string           `json:"version"`
	Questions []answerKeyEntry `json:"questions"`
}

type answerKeyEntry struct {
	QuestionID   string             `json:"question_id"`
	VariantIndex int                `json:"variant_index"`
	Points       float64            `json:"points"`
	Mode         master.GradingMode `json:"grading_mode"`
	CheckName    string             `json:"check_name"`
	Solution     []string           `json:"solution_cells"`
	Tests        []answerKeyTest    `json:"tests"`
}

type answerKeyTest struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Hidden bool   `json:"hidden"`
}

func writeAnswerKey(path string, doc materialize.Document) error {
	out := answerKeyFile{Version: doc.Version}
	for _, key := range doc.Keys {
		entry := answerKeyEntry{
			QuestionID:   key.QuestionID,
			VariantIndex: key.VariantIndex,
			Points:       key.Points,
			Mode:         key.Mode,
			CheckName:    key.CheckName,
			Solution:     make([]string, 0, len(key.Solution)),
			Tests:        make([]answerKeyTest, 0, len(key.Tests)),
		}
		for _, cell := range key.Solution {
			entry.Solution = append(entry.Solution, cell.Source.Text())
		}
		for _, t := range key.Tests {
			entry.Tests = append(entry.Tests, answerKeyTest{Input: t.Input, Output: t.Output, Hidden: t.Hidden})
		}
		out.Questions = append(out.Questions, entry)
	}
	return writeJSON(path, out)
}

func writeJSON(path string, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
