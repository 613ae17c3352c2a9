package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Marshal encodes a notebook as indented JSON with a trailing newline.
func Marshal(nb Notebook) ([]byte, error) {
	if nb.Cells == nil {
		nb.Cells = []Cell{}
	}
	if nb.Metadata == nil {
		nb.Metadata = map[string]any{}
	}
	if nb.NBFormat == 0 {
		nb.NBFormat = Format
		nb.NBFormatMinor = FormatMinor
	}
	payload, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal notebook: %w", err)
	}
	return append(payload, '\n'), nil
}

// Write marshals a notebook to a file.
func Write(path string, nb Notebook) error {
	payload, err := Marshal(nb)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
