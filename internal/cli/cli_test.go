package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jexam/internal/notebook"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// writeMaster writes a small valid master notebook and returns its path.
func writeMaster(t *testing.T, dir string) string {
	t.Helper()
	nb := notebook.New()
	nb.Cells = append(nb.Cells,
		notebook.NewRawCell("BEGIN EXAM\nname: quiz\nnum_exams: 2\npublic_tests: true"),
		notebook.NewRawCell("BEGIN QUESTION\nid: q1\npoints: 2"),
		notebook.NewRawCell("BEGIN VERSION"),
		notebook.NewCodeCell("a = 1 # SOLUTION"),
		notebook.NewRawCell("END VERSION"),
		notebook.NewRawCell("BEGIN VERSION"),
		notebook.NewCodeCell("a = 2 # SOLUTION"),
		notebook.NewRawCell("END VERSION"),
		notebook.NewRawCell("END QUESTION"),
	)
	path := filepath.Join(dir, "master.ipynb")
	if err := notebook.Write(path, nb); err != nil {
		t.Fatalf("write master: %v", err)
	}
	return path
}

func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	code, stdout, _ := runCLI(t)
	if code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	for _, command := range []string{"generate", "validate", "audit"} {
		if !strings.Contains(stdout, command) {
			t.Fatalf("usage missing %q:\n%s", command, stdout)
		}
	}
}

func TestRunHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, "--help")
	if code != ExitOK {
		t.Fatalf("expected ok exit code, got %d", code)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Fatalf("expected usage output:\n%s", stdout)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "frobnicate")
	if code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr, "Unknown command") {
		t.Fatalf("expected unknown command message:\n%s", stderr)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	masterPath := writeMaster(t, dir)
	code, stdout, stderr := runCLI(t, "validate", "--master", masterPath)
	if code != ExitOK {
		t.Fatalf("expected ok, got %d (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stdout, "Master OK") {
		t.Fatalf("expected success message:\n%s", stdout)
	}
}

func TestValidateCommandRequiresMaster(t *testing.T) {
	code, _, stderr := runCLI(t, "validate")
	if code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr, "--master is required") {
		t.Fatalf("expected flag error:\n%s", stderr)
	}
}

func TestValidateCommandReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	nb := notebook.New()
	nb.Cells = append(nb.Cells,
		notebook.NewRawCell("BEGIN EXAM\nnum_exams: 2"),
		notebook.NewRawCell("END QUESTION"),
	)
	path := filepath.Join(dir, "bad.ipynb")
	if err := notebook.Write(path, nb); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, _, stderr := runCLI(t, "validate", "--master", path)
	if code != ExitError {
		t.Fatalf("expected error exit code, got %d", code)
	}
	if !strings.Contains(stderr, "Validation failed") {
		t.Fatalf("expected failure message:\n%s", stderr)
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	masterPath := writeMaster(t, dir)
	outDir := filepath.Join(dir, "dist")

	code, stdout, stderr := runCLI(t, "generate", "--master", masterPath, "--out", outDir, "--ui", "plain")
	if code != ExitOK {
		t.Fatalf("expected ok, got %d (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stdout, "2 versions written") {
		t.Fatalf("expected summary line:\n%s", stdout)
	}
	for _, name := range []string{"exam_1", "exam_2", "manifest.json", "results.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestGenerateAdvisoriesGoToStderr(t *testing.T) {
	dir := t.TempDir()
	masterPath := writeMaster(t, dir)
	outDir := filepath.Join(dir, "dist")

	// 5 versions over a 2-variant group forces repeats.
	code, _, stderr := runCLI(t, "generate", "--master", masterPath, "--out", outDir, "--count", "5", "--ui", "plain")
	if code != ExitOK {
		t.Fatalf("advisories must not fail the run, got %d (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stderr, "warning:") || !strings.Contains(stderr, "repeats are unavoidable") {
		t.Fatalf("expected advisory on stderr:\n%s", stderr)
	}
}

func TestGenerateStrictFails(t *testing.T) {
	dir := t.TempDir()
	masterPath := writeMaster(t, dir)
	outDir := filepath.Join(dir, "dist")

	code, _, stderr := runCLI(t, "generate", "--master", masterPath, "--out", outDir, "--count", "5", "--strict", "--ui", "plain")
	if code != ExitError {
		t.Fatalf("expected error exit code, got %d", code)
	}
	if !strings.Contains(stderr, "insufficient variants") {
		t.Fatalf("expected strict failure message:\n%s", stderr)
	}
}

func TestGenerateQuiet(t *testing.T) {
	dir := t.TempDir()
	masterPath := writeMaster(t, dir)
	code, stdout, _ := runCLI(t, "generate", "--master", masterPath, "--out", filepath.Join(dir, "dist"), "--quiet")
	if code != ExitOK {
		t.Fatalf("expected ok, got %d", code)
	}
	if stdout != "" {
		t.Fatalf("quiet mode must not write to stdout:\n%s", stdout)
	}
}

func TestGenerateRejectsBadUIMode(t *testing.T) {
	dir := t.TempDir()
	masterPath := writeMaster(t, dir)
	code, _, stderr := runCLI(t, "generate", "--master", masterPath, "--ui", "fancy")
	if code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr, "invalid ui mode") {
		t.Fatalf("expected ui mode error:\n%s", stderr)
	}
}

func TestAuditCommandRequiresFlags(t *testing.T) {
	code, _, stderr := runCLI(t, "audit")
	if code != ExitUsage {
		t.Fatalf("expected usage exit code, got %d", code)
	}
	if !strings.Contains(stderr, "--results and --db are required") {
		t.Fatalf("expected flag error:\n%s", stderr)
	}
}
