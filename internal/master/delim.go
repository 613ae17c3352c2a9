package master

import (
	"regexp"
	"strings"

	"jexam/internal/notebook"
)

// delim identifies a delimiter block type in the master notebook.
type delim string

const (
	delimExam         delim = "EXAM"
	delimIntroduction delim = "INTRODUCTION"
	delimQuestion     delim = "QUESTION"
	delimVersion      delim = "VERSION"
	delimConclusion   delim = "CONCLUSION"
)

var (
	beginPattern = regexp.MustCompile(`^\s*BEGIN (EXAM|INTRODUCTION|QUESTION|VERSION|CONCLUSION)\s*$`)
	endPattern   = regexp.MustCompile(`^\s*END (INTRODUCTION|QUESTION|VERSION|CONCLUSION)\s*$`)
	// caseFoldPattern spots markers written in the wrong case so the parse
	// error can point at them instead of reporting an unrelated stray cell.
	caseFoldPattern = regexp.MustCompile(`(?i)^\s*(BEGIN|END) (EXAM|INTRODUCTION|QUESTION|VERSION|CONCLUSION)\s*$`)
)

// matchBegin reports the delimiter opened by a raw cell, if any. Markers are
// case-sensitive.
func matchBegin(cell notebook.Cell) (delim, bool) {
	if cell.Type != notebook.Raw {
		return "", false
	}
	m := beginPattern.FindStringSubmatch(cell.Source.FirstLine())
	if m == nil {
		return "", false
	}
	return delim(m[1]), true
}

// matchEnd reports the delimiter closed by a raw cell, if any.
func matchEnd(cell notebook.Cell) (delim, bool) {
	if cell.Type != notebook.Raw {
		return "", false
	}
	m := endPattern.FindStringSubmatch(cell.Source.FirstLine())
	if m == nil {
		return "", false
	}
	return delim(m[1]), true
}

// looksLikeMarker reports whether a raw cell's first line is a delimiter in
// the wrong case.
func looksLikeMarker(cell notebook.Cell) bool {
	if cell.Type != notebook.Raw {
		return false
	}
	line := cell.Source.FirstLine()
	return caseFoldPattern.MatchString(line) &&
		!beginPattern.MatchString(line) && !endPattern.MatchString(line)
}

// delimBody returns the YAML config body of a delimiter cell: everything
// after the marker line.
func delimBody(cell notebook.Cell) []byte {
	lines := []string(cell.Source)
	if len(lines) < 2 {
		return nil
	}
	return []byte(strings.Join(lines[1:], "\n"))
}
