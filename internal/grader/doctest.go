package grader

import "strings"

// toDoctest converts raw test code lines into doctest-formatted lines:
// continuation lines get a "... " prefix, everything else ">>> ".
func toDoctest(codeLines []string) []string {
	lines := make([]string, 0, len(codeLines))
	for _, line := range codeLines {
		if isContinuation(line, lines) {
			lines = append(lines, "... "+line)
		} else {
			lines = append(lines, ">>> "+line)
		}
	}
	return lines
}

func isContinuation(line string, previous []string) bool {
	if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return true
	}
	for _, keyword := range []string{"except:", "elif ", "else:", "finally:"} {
		if strings.HasPrefix(line, keyword) {
			return true
		}
	}
	if len(previous) > 0 && strings.HasSuffix(strings.TrimSpace(previous[len(previous)-1]), "\\") {
		return true
	}
	return false
}

// doctestCase renders one test's code block: doctest lines with statement
// separators, then the expected output.
func doctestCase(input, output string) string {
	lines := toDoctest(strings.Split(input, "\n"))
	for i := 0; i+1 < len(lines); i++ {
		next := lines[i+1]
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(next, ">>>") && len(trimmed) > 3 && !strings.HasSuffix(trimmed, "\\") {
			lines[i] += ";"
		}
	}
	lines = append(lines, output)
	return strings.Join(lines, "\n")
}
