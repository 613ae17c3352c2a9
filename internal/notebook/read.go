package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Parse decodes a notebook from JSON and checks the format version.
func Parse(data []byte) (Notebook, error) {
	var nb Notebook
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&nb); err != nil {
		return Notebook{}, fmt.Errorf("parse notebook: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Notebook{}, fmt.Errorf("parse notebook: trailing data after document")
		}
		return Notebook{}, fmt.Errorf("parse notebook: %w", err)
	}
	if nb.NBFormat != 0 && nb.NBFormat != Format {
		return Notebook{}, fmt.Errorf("parse notebook: unsupported nbformat %d", nb.NBFormat)
	}
	return nb, nil
}

// Read loads and parses a notebook file.
func Read(path string) (Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Notebook{}, fmt.Errorf("read notebook: %w", err)
	}
	return Parse(data)
}
