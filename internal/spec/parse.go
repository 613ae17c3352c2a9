package spec

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseExamConfig parses the YAML body of a BEGIN EXAM cell. Unknown fields
// are rejected so typos in the master surface immediately.
func ParseExamConfig(data []byte) (ExamConfig, error) {
	var cfg ExamConfig
	if err := decodeStrict(data, &cfg, "exam config"); err != nil {
		return ExamConfig{}, err
	}
	return cfg, nil
}

// ParseQuestionConfig parses the YAML body of a BEGIN QUESTION cell.
func ParseQuestionConfig(data []byte) (QuestionConfig, error) {
	var cfg QuestionConfig
	if err := decodeStrict(data, &cfg, "question config"); err != nil {
		return QuestionConfig{}, err
	}
	return cfg, nil
}

func decodeStrict(data []byte, out any, what string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("parse %s: %w", what, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse %s: multiple YAML documents are not supported", what)
		}
		return fmt.Errorf("parse %s: %w", what, err)
	}
	return nil
}

// UnmarshalYAML accepts either a bare boolean or a mapping for export_cell.
func (e *ExportCellConfig) UnmarshalYAML(value *yaml.Node) error {
	var enabled bool
	if err := value.Decode(&enabled); err == nil {
		e.Enabled = &enabled
		return nil
	}
	var body struct {
		Instructions string `yaml:"instructions"`
		PDF          *bool  `yaml:"pdf"`
		Filtering    *bool  `yaml:"filtering"`
	}
	if err := value.Decode(&body); err != nil {
		return fmt.Errorf("export_cell must be a boolean or a mapping: %w", err)
	}
	on := true
	e.Enabled = &on
	e.Instructions = body.Instructions
	e.PDF = body.PDF
	e.Filtering = body.Filtering
	return nil
}
