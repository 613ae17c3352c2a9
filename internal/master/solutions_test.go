package master

import (
	"strings"
	"testing"

	"jexam/internal/notebook"
)

func TestStripSolutionsInlineAssignment(t *testing.T) {
	lines := notebook.SourceOf("total = sum(values) # SOLUTION")
	out, err := stripSolutions(lines, 0)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if got := out.Text(); got != "total = ..." {
		t.Fatalf("unexpected prompt %q", got)
	}
}

func TestStripSolutionsInlineStatement(t *testing.T) {
	lines := notebook.SourceOf("    plot(data) # SOLUTION")
	out, err := stripSolutions(lines, 0)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if got := out.Text(); got != "    ..." {
		t.Fatalf("unexpected prompt %q", got)
	}
}

func TestStripSolutionsRegion(t *testing.T) {
	lines := notebook.SourceOf(strings.Join([]string{
		"def solve(x):",
		"    # BEGIN SOLUTION",
		"    y = x * 2",
		"    return y",
		"    # END SOLUTION",
	}, "\n"))
	out, err := stripSolutions(lines, 0)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	want := "def solve(x):\n    ..."
	if got := out.Text(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestStripSolutionsRegionNoPrompt(t *testing.T) {
	lines := notebook.SourceOf(strings.Join([]string{
		"# BEGIN SOLUTION NO PROMPT",
		"secret = 42",
		"# END SOLUTION",
	}, "\n"))
	out, err := stripSolutions(lines, 0)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if got := out.Text(); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestStripSolutionsSkipSuffixLines(t *testing.T) {
	lines := notebook.SourceOf(strings.Join([]string{
		"setup() # SOLUTION NO PROMPT",
		"x = 1 # BEGIN PROMPT",
		"y = 2 # END PROMPT",
		"keep = True",
	}, "\n"))
	out, err := stripSolutions(lines, 0)
	if err != nil {
		t.Fatalf("strip: %v", err)
	}
	if got := out.Text(); got != "keep = True" {
		t.Fatalf("expected only the kept line, got %q", got)
	}
}

func TestStripSolutionsUnbalanced(t *testing.T) {
	if _, err := stripSolutions(notebook.SourceOf("# END SOLUTION"), 0); err == nil {
		t.Fatalf("expected error for END without BEGIN")
	}
	if _, err := stripSolutions(notebook.SourceOf("# BEGIN SOLUTION\nx = 1"), 0); err == nil {
		t.Fatalf("expected error for BEGIN without END")
	}
}

func TestIsMarkdownSolutionCell(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"**SOLUTION:** because", true},
		{"**Solution** text", true},
		{"<strong>SOLUTION</strong> text", true},
		{"The solution is below", false},
	}
	for _, tc := range cases {
		cell := notebook.NewMarkdownCell(tc.text)
		if got := isMarkdownSolutionCell(cell); got != tc.want {
			t.Fatalf("%q: expected %v", tc.text, got)
		}
	}
	if isMarkdownSolutionCell(notebook.NewCodeCell("**SOLUTION**")) {
		t.Fatalf("code cells are never markdown solutions")
	}
}

func TestIsTestCellHeaders(t *testing.T) {
	cases := []struct {
		header string
		want   bool
	}{
		{"# TEST", true},
		{"## TEST ##", true},
		{"# HIDDEN TEST", true},
		{"## HIDDEN TEST ##", true},
		{"# test", true},
		{"# Hidden Test", true},
		{"# TESTING", false},
		{"x = 1", false},
	}
	for _, tc := range cases {
		cell := notebook.NewCodeCell(tc.header + "\nf(1)")
		if got := isTestCell(cell); got != tc.want {
			t.Fatalf("%q: expected %v", tc.header, tc.want)
		}
	}
}

func TestReadTestHiddenFlagIgnoresCase(t *testing.T) {
	cell := notebook.NewCodeCell("# hidden test\nf(1)")
	if !isTestCell(cell) {
		t.Fatalf("lower-case header not recognized")
	}
	if test := readTest(cell); !test.Hidden {
		t.Fatalf("lower-case hidden marker not honored: %+v", test)
	}
}
