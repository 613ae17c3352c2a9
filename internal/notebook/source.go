package notebook

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Source holds cell source as lines without trailing newlines. The
// interchange format stores source either as a single string or as a list of
// newline-terminated strings; both are accepted on read.
type Source []string

// SourceOf splits text into source lines.
func SourceOf(text string) Source {
	if text == "" {
		return Source{}
	}
	return Source(strings.Split(text, "\n"))
}

// Text joins the lines back into a single string.
func (s Source) Text() string {
	return strings.Join(s, "\n")
}

// FirstLine returns the first line, or "" for empty source.
func (s Source) FirstLine() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// UnmarshalJSON accepts both string and list-of-strings source encodings.
func (s *Source) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = SourceOf(text)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("source must be a string or a list of strings")
	}
	*s = SourceOf(strings.Join(lines, ""))
	return nil
}

// MarshalJSON writes source as a single string, which every nbformat v4
// consumer accepts and which keeps written notebooks byte-stable.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text())
}
