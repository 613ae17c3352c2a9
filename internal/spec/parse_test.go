package spec

import (
	"strings"
	"testing"
)

func TestParseExamConfig(t *testing.T) {
	body := `
name: midterm
num_exams: 4
seed: 99
format: otter
public_tests: true
strict: true
workers: 3
students:
  - alice
  - bob
`
	cfg, err := ParseExamConfig([]byte(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Name != "midterm" || cfg.NumExams != 4 || cfg.Seed != 99 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.Strict || !cfg.PublicTests || cfg.Workers != 3 {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
	if len(cfg.Students) != 2 || cfg.Students[0] != "alice" {
		t.Fatalf("unexpected students: %v", cfg.Students)
	}
}

func TestParseExamConfigRejectsUnknownField(t *testing.T) {
	_, err := ParseExamConfig([]byte("name: exam\nnum_exms: 4\n"))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "num_exms") {
		t.Fatalf("expected error to name the field, got %v", err)
	}
}

func TestParseExamConfigEmptyBody(t *testing.T) {
	cfg, err := ParseExamConfig([]byte("  \n"))
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if cfg.Name != "" || cfg.NumExams != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestParseExamConfigRejectsMultipleDocuments(t *testing.T) {
	_, err := ParseExamConfig([]byte("name: a\n---\nname: b\n"))
	if err == nil {
		t.Fatalf("expected multi-document error")
	}
}

func TestExportCellAcceptsBool(t *testing.T) {
	cfg, err := ParseExamConfig([]byte("export_cell: false\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.ExportCell.On() {
		t.Fatalf("expected export cell off")
	}
}

func TestExportCellAcceptsMapping(t *testing.T) {
	body := `
export_cell:
  instructions: "Save and submit."
  pdf: true
  filtering: false
`
	cfg, err := ParseExamConfig([]byte(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.ExportCell.On() {
		t.Fatalf("expected export cell on")
	}
	if cfg.ExportCell.Instructions != "Save and submit." {
		t.Fatalf("unexpected instructions %q", cfg.ExportCell.Instructions)
	}
	if cfg.ExportCell.PDF == nil || !*cfg.ExportCell.PDF {
		t.Fatalf("expected pdf true")
	}
	if cfg.ExportCell.Filtering == nil || *cfg.ExportCell.Filtering {
		t.Fatalf("expected filtering false")
	}
}

func TestParseQuestionConfig(t *testing.T) {
	cfg, err := ParseQuestionConfig([]byte("id: q1\npoints: 2.5\nmanual: true\ntags: [hard]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.ID != "q1" || !cfg.Manual {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Points == nil || *cfg.Points != 2.5 {
		t.Fatalf("unexpected points: %+v", cfg.Points)
	}
	if len(cfg.Tags) != 1 || cfg.Tags[0] != "hard" {
		t.Fatalf("unexpected tags: %v", cfg.Tags)
	}
}

func TestExportCellDefaultOn(t *testing.T) {
	var cfg ExportCellConfig
	if !cfg.On() {
		t.Fatalf("zero export cell config should be on")
	}
}
