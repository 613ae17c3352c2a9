package master

import (
	"regexp"
	"strings"

	"jexam/internal/notebook"
)

// markdownAnswerText replaces markdown solution cells in student notebooks.
const markdownAnswerText = "_Type your answer here, replacing this text._"

var (
	mdSolutionPattern   = regexp.MustCompile(`(?i)^(<strong>|\*{2})solution:?(</strong>|\*{2})`)
	solutionAssignment  = regexp.MustCompile(`^(\s*[a-zA-Z0-9_ ]*=)(.*) #[ ]?SOLUTION$`)
	solutionLine        = regexp.MustCompile(`^(\s*)([^#]+) #[ ]?SOLUTION$`)
	beginSolutionMarker = regexp.MustCompile(`^(\s*)# BEGIN SOLUTION( NO PROMPT)?$`)
)

var skipSuffixes = []string{"# SOLUTION NO PROMPT", "# BEGIN PROMPT", "# END PROMPT"}

// isMarkdownSolutionCell reports whether a markdown cell carries a prose
// solution (a line starting with a bold SOLUTION marker).
func isMarkdownSolutionCell(cell notebook.Cell) bool {
	if cell.Type != notebook.Markdown {
		return false
	}
	for _, line := range cell.Source {
		if mdSolutionPattern.MatchString(line) {
			return true
		}
	}
	return false
}

// stripSolutions removes solution regions and inline solution lines from
// code, substituting prompts. Position is used for error reporting.
func stripSolutions(lines notebook.Source, position int) (notebook.Source, error) {
	stripped := make(notebook.Source, 0, len(lines))
	inSolution := false
	for _, line := range lines {
		if hasSkipSuffix(line) {
			continue
		}
		if strings.HasSuffix(line, "# END SOLUTION") {
			if !inSolution {
				return nil, malformedf(position, "END SOLUTION without BEGIN SOLUTION")
			}
			inSolution = false
			continue
		}
		if inSolution {
			continue
		}
		if m := beginSolutionMarker.FindStringSubmatch(line); m != nil {
			inSolution = true
			if m[2] == "" {
				stripped = append(stripped, m[1]+"...")
			}
			continue
		}
		if m := solutionAssignment.FindStringSubmatch(line); m != nil {
			line = m[1] + " ..."
		} else if m := solutionLine.FindStringSubmatch(line); m != nil {
			line = m[1] + "..."
		}
		stripped = append(stripped, line)
	}
	if inSolution {
		return nil, malformedf(position, "BEGIN SOLUTION without END SOLUTION")
	}
	return stripped, nil
}

// sanitizeCell returns the student-facing rendering of a cell: markdown
// solution cells become answer prompts, code cells lose their solutions,
// anything else passes through cloned.
func sanitizeCell(cell notebook.Cell, position int) (notebook.Cell, error) {
	if isMarkdownSolutionCell(cell) {
		return notebook.NewMarkdownCell(markdownAnswerText), nil
	}
	if cell.Type == notebook.Code {
		stripped, err := stripSolutions(cell.Source, position)
		if err != nil {
			return notebook.Cell{}, err
		}
		out := cell.Clone()
		out.Source = stripped
		return out, nil
	}
	return cell.Clone(), nil
}

func hasSkipSuffix(line string) bool {
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(line, suffix) {
			return true
		}
	}
	return false
}
