package grader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jexam/internal/spec"
)

// otterConfig is the .otter file schema read by the Otter client.
type otterConfig struct {
	Endpoint        string            `json:"endpoint,omitempty"`
	Auth            string            `json:"auth,omitempty"`
	AssignmentID    string            `json:"assignment_id,omitempty"`
	ClassID         string            `json:"class_id,omitempty"`
	Notebook        string            `json:"notebook"`
	SaveEnvironment bool              `json:"save_environment"`
	IgnoreModules   []string          `json:"ignore_modules"`
	Variables       map[string]string `json:"variables,omitempty"`
}

// WriteOtterConfig writes the .otter file next to a notebook.
func WriteOtterConfig(notebookPath string, cfg spec.ExamConfig) error {
	out := otterConfig{
		Notebook:        filepath.Base(notebookPath),
		SaveEnvironment: cfg.SaveEnvironment,
		IgnoreModules:   cfg.IgnoreModules,
		Variables:       cfg.Variables,
	}
	if out.IgnoreModules == nil {
		out.IgnoreModules = []string{}
	}
	if cfg.Service.Endpoint != "" {
		out.Endpoint = cfg.Service.Endpoint
		out.Auth = cfg.Service.Auth
		out.AssignmentID = cfg.Service.AssignmentID
		out.ClassID = cfg.Service.ClassID
		if cfg.Service.Notebook != "" {
			out.Notebook = cfg.Service.Notebook
		}
	}
	payload, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal otter config: %w", err)
	}
	path := replaceExt(notebookPath, ".otter")
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write otter config: %w", err)
	}
	return nil
}

// okConfig is the .ok file schema read by the OkPy client.
type okConfig struct {
	Name      string            `json:"name"`
	Endpoint  string            `json:"endpoint"`
	Src       []string          `json:"src"`
	Tests     map[string]string `json:"tests"`
	Protocols []string          `json:"protocols"`
}

// WriteDotOK writes the .ok file next to a notebook and returns its file
// name, which the notebook's init cell references.
func WriteDotOK(notebookPath, endpoint string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(notebookPath), filepath.Ext(notebookPath))
	out := okConfig{
		Name:      name,
		Endpoint:  endpoint,
		Src:       []string{filepath.Base(notebookPath)},
		Tests:     map[string]string{"tests/q*.py": "ok_test"},
		Protocols: []string{"file_contents", "grading", "backup"},
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal ok config: %w", err)
	}
	path := replaceExt(notebookPath, ".ok")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write ok config: %w", err)
	}
	return filepath.Base(path), nil
}

// OKName returns the .ok file name a notebook's init cell will reference,
// without writing anything.
func OKName(notebookName string) string {
	return strings.TrimSuffix(notebookName, filepath.Ext(notebookName)) + ".ok"
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
