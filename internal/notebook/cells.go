package notebook

// NewMarkdownCell builds a markdown cell from text.
func NewMarkdownCell(text string) Cell {
	return Cell{Type: Markdown, Metadata: map[string]any{}, Source: SourceOf(text)}
}

// NewCodeCell builds a code cell from text with no recorded outputs.
func NewCodeCell(text string) Cell {
	return Cell{Type: Code, Metadata: map[string]any{}, Source: SourceOf(text), Outputs: []Output{}}
}

// NewRawCell builds a raw cell from text.
func NewRawCell(text string) Cell {
	return Cell{Type: Raw, Metadata: map[string]any{}, Source: SourceOf(text)}
}

// Lock marks a cell non-editable and non-deletable in the notebook UI.
func Lock(cell *Cell) {
	if cell.Metadata == nil {
		cell.Metadata = map[string]any{}
	}
	cell.Metadata["editable"] = false
	cell.Metadata["deletable"] = false
}

// StripOutputs removes recorded outputs and execution counts from every code
// cell. Student notebooks are written clean.
func StripOutputs(nb *Notebook) {
	for i := range nb.Cells {
		if nb.Cells[i].Type != Code {
			continue
		}
		nb.Cells[i].Outputs = []Output{}
		nb.Cells[i].ExecutionCount = nil
	}
}
