package master

import (
	"regexp"
	"strings"

	"jexam/internal/notebook"
)

var testHeaderPattern = regexp.MustCompile(`(?i)^#{1,2}\s*(HIDDEN\s+)?TEST\s*(#{2})?\s*$`)

// isTestCell reports whether a code cell is an autograder test: its first
// line is a "# TEST", "# HIDDEN TEST", or "## TEST ##" style comment, in
// any letter case.
func isTestCell(cell notebook.Cell) bool {
	if cell.Type != notebook.Code {
		return false
	}
	return testHeaderPattern.MatchString(cell.Source.FirstLine())
}

// readTest extracts a Test from a test cell: the source below the header is
// the doctest input and the recorded outputs are the expected output.
func readTest(cell notebook.Cell) Test {
	header := cell.Source.FirstLine()
	hidden := strings.Contains(strings.ToUpper(header), "HIDDEN")
	input := ""
	if len(cell.Source) > 1 {
		input = strings.Join(cell.Source[1:], "\n")
	}
	var output strings.Builder
	for _, o := range cell.Outputs {
		output.WriteString(o.PlainText())
	}
	return Test{Input: input, Output: output.String(), Hidden: hidden}
}
