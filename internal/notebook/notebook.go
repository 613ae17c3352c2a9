// Package notebook implements a minimal model of the Jupyter notebook
// interchange format (nbformat v4) sufficient for exam generation: ordered
// cells with a type, metadata, source, and recorded outputs.
package notebook

import "encoding/json"

// Format is the nbformat major version this package reads and writes.
const Format = 4

// FormatMinor is the nbformat minor version stamped on written notebooks.
const FormatMinor = 5

// CellType identifies the kind of a notebook cell.
type CellType string

const (
	Code     CellType = "code"
	Markdown CellType = "markdown"
	Raw      CellType = "raw"
)

// Notebook is an ordered list of cells plus notebook-level metadata.
type Notebook struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// Cell is a single notebook cell. Outputs and ExecutionCount are only
// present on code cells.
type Cell struct {
	Type           CellType       `json:"cell_type"`
	Metadata       map[string]any `json:"metadata"`
	Source         Source         `json:"source"`
	Outputs        []Output       `json:"outputs,omitempty"`
	ExecutionCount *int           `json:"execution_count,omitempty"`
}

// Output is a recorded cell output. Only the fields needed to recover
// expected test output are modeled; unknown fields are dropped.
type Output struct {
	OutputType string                     `json:"output_type"`
	Name       string                     `json:"name,omitempty"`
	Text       Source                     `json:"text,omitempty"`
	Data       map[string]json.RawMessage `json:"data,omitempty"`
}

// New returns an empty v4 notebook.
func New() Notebook {
	return Notebook{
		Cells:         []Cell{},
		Metadata:      map[string]any{},
		NBFormat:      Format,
		NBFormatMinor: FormatMinor,
	}
}

// PlainText recovers the textual payload of an output: stream text plus any
// text/plain representation.
func (o Output) PlainText() string {
	text := o.Text.Text()
	if raw, ok := o.Data["text/plain"]; ok {
		var lines Source
		if err := json.Unmarshal(raw, &lines); err == nil {
			text += lines.Text()
		}
	}
	return text
}

// Clone returns a deep copy of the cell. Materialization clones cells before
// attaching them to an output document so the parsed master stays immutable.
func (c Cell) Clone() Cell {
	out := c
	out.Source = append(Source(nil), c.Source...)
	out.Metadata = cloneMap(c.Metadata)
	if c.Outputs != nil {
		out.Outputs = append([]Output(nil), c.Outputs...)
	}
	if c.ExecutionCount != nil {
		count := *c.ExecutionCount
		out.ExecutionCount = &count
	}
	return out
}

// CloneCells deep-copies a cell slice.
func CloneCells(cells []Cell) []Cell {
	out := make([]Cell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, cell.Clone())
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
