package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"jexam/internal/cli"
	"jexam/internal/notebook"
)

type featureState struct {
	workDir    string
	masterPath string
	outDir     string
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	exitCode   int
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a master notebook with (\d+) variants and (\d+) exam versions$`, state.aMasterNotebook)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the exit code is (\d+)$`, state.theExitCodeIs)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the error output contains "([^"]+)"$`, state.theErrorOutputContains)
	ctx.Step(`^the output directory contains "([^"]+)"$`, state.theOutputDirectoryContains)
	ctx.Step(`^every version notebook is free of solutions$`, state.versionNotebooksHaveNoSolutions)
}

func (s *featureState) reset() error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	dir, err := os.MkdirTemp("", "jexam-feature-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	s.workDir = dir
	s.masterPath = filepath.Join(dir, "master.ipynb")
	s.outDir = filepath.Join(dir, "dist")
	return nil
}

func (s *featureState) cleanup() {
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

func (s *featureState) aMasterNotebook(variants, versions int) error {
	nb := notebook.New()
	nb.Cells = append(nb.Cells,
		notebook.NewRawCell(fmt.Sprintf("BEGIN EXAM\nname: quiz\nnum_exams: %d\npublic_tests: true", versions)),
		notebook.NewRawCell("BEGIN QUESTION\nid: doubling\npoints: 2"),
	)
	for i := 0; i < variants; i++ {
		nb.Cells = append(nb.Cells,
			notebook.NewRawCell("BEGIN VERSION"),
			notebook.NewCodeCell(fmt.Sprintf("def f(x):\n    return x * %d # SOLUTION", i+2)),
			notebook.NewCodeCell("# TEST\nf(1)"),
			notebook.NewRawCell("END VERSION"),
		)
	}
	nb.Cells = append(nb.Cells, notebook.NewRawCell("END QUESTION"))
	if err := notebook.Write(s.masterPath, nb); err != nil {
		return fmt.Errorf("write master: %w", err)
	}
	return nil
}

// iRunCommand executes a jexam command line. The placeholders {master} and
// {out} expand to the scenario's temp paths.
func (s *featureState) iRunCommand(command string) error {
	command = strings.ReplaceAll(command, "{master}", s.masterPath)
	command = strings.ReplaceAll(command, "{out}", s.outDir)
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "jexam" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIs(expected int) error {
	if s.exitCode != expected {
		return fmt.Errorf("expected exit code %d, got %d (stderr: %s)", expected, s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(expected string) error {
	if !strings.Contains(s.stdout.String(), expected) {
		return fmt.Errorf("expected %q in output, got %q", expected, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(expected string) error {
	if !strings.Contains(s.stderr.String(), expected) {
		return fmt.Errorf("expected %q in error output, got %q", expected, s.stderr.String())
	}
	return nil
}

func (s *featureState) theOutputDirectoryContains(relPath string) error {
	path := filepath.Join(s.outDir, filepath.FromSlash(relPath))
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected %s to exist: %w", relPath, err)
	}
	return nil
}

func (s *featureState) versionNotebooksHaveNoSolutions() error {
	entries, err := os.ReadDir(s.outDir)
	if err != nil {
		return fmt.Errorf("read output dir: %w", err)
	}
	checked := 0
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "exam_") {
			continue
		}
		path := filepath.Join(s.outDir, entry.Name(), "quiz.ipynb")
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read version notebook: %w", err)
		}
		if strings.Contains(string(data), "SOLUTION") {
			return fmt.Errorf("solution marker leaked into %s", path)
		}
		checked++
	}
	if checked == 0 {
		return fmt.Errorf("no version notebooks found under %s", s.outDir)
	}
	return nil
}
