// Package materialize rewrites the parsed master into concrete exam
// notebooks, one per planned assignment, together with the answer-key
// entries graders consume. It never mutates the shared master.
package materialize

import (
	"fmt"

	"jexam/internal/master"
	"jexam/internal/notebook"
	"jexam/internal/plan"
	"jexam/internal/spec"
)

// Options controls notebook assembly. They are derived from the exam config
// once per run and shared read-only across workers.
type Options struct {
	Format       string // "otter" or "ok"
	OKName       string // .ok file name referenced by the init cell
	InitCell     bool
	PublicTests  bool
	CheckAllCell bool
	ExportCell   spec.ExportCellConfig
}

// OptionsFrom derives materialization options from a normalized exam config.
func OptionsFrom(cfg spec.ExamConfig, okName string) Options {
	return Options{
		Format:       cfg.Format,
		OKName:       okName,
		InitCell:     cfg.InitCell == nil || *cfg.InitCell,
		PublicTests:  cfg.PublicTests,
		CheckAllCell: cfg.CheckAllCell == nil || *cfg.CheckAllCell,
		ExportCell:   cfg.ExportCell,
	}
}

// AnswerKeyEntry is the grading payload for one question in one version.
type AnswerKeyEntry struct {
	QuestionID   string
	VariantIndex int
	Points       float64
	Mode         master.GradingMode
	CheckName    string // variant hash, the test name graders check against
	Solution     []notebook.Cell
	Tests        []master.Test
}

// Document is one exam version fully resolved: the student notebook plus its
// answer key.
type Document struct {
	Version  string
	Notebook notebook.Notebook
	Keys     []AnswerKeyEntry
}

// Materialize resolves one assignment against the master's block sequence.
// Blocks are walked in original order; variant groups are replaced by the
// assigned variant's sanitized cells.
func Materialize(m *master.Master, assignment plan.Assignment, opts Options) (Document, error) {
	doc := Document{Version: assignment.Version}
	nb := notebook.New()
	nb.Metadata["jexam"] = map[string]any{"exam_version": assignment.Version}

	if opts.InitCell {
		nb.Cells = append(nb.Cells, initCell(opts.Format, opts.OKName))
	}

	questionNumber := 0
	for _, block := range m.Blocks {
		switch block.Kind {
		case master.Static:
			nb.Cells = append(nb.Cells, notebook.CloneCells(block.Cells)...)
		case master.SingleQuestion, master.VariantGroup:
			questionNumber++
			variant, err := chooseVariant(block, assignment)
			if err != nil {
				return Document{}, err
			}
			nb.Cells = append(nb.Cells, questionHeader(questionNumber))
			nb.Cells = append(nb.Cells, notebook.CloneCells(variant.Sanitized)...)
			question := block.Question
			if question.Mode() == master.Auto && opts.PublicTests && master.AnyPublic(variant.Tests) {
				nb.Cells = append(nb.Cells, checkCell(opts.Format, variant.Hash))
			}
			doc.Keys = append(doc.Keys, AnswerKeyEntry{
				QuestionID:   question.ID,
				VariantIndex: variant.Index,
				Points:       question.Points(),
				Mode:         question.Mode(),
				CheckName:    variant.Hash,
				Solution:     notebook.CloneCells(variant.Cells),
				Tests:        append([]master.Test(nil), variant.Tests...),
			})
		}
	}

	if opts.CheckAllCell && opts.PublicTests {
		nb.Cells = append(nb.Cells, checkAllCells(opts.Format)...)
	}
	if opts.ExportCell.On() {
		nb.Cells = append(nb.Cells, exportCells(opts.Format, opts.ExportCell)...)
	}

	notebook.StripOutputs(&nb)
	doc.Notebook = nb
	return doc, nil
}

// chooseVariant resolves the variant a block contributes to this version.
func chooseVariant(block master.Block, assignment plan.Assignment) (master.Variant, error) {
	question := block.Question
	if block.Kind == master.SingleQuestion {
		return question.Variants[0], nil
	}
	index, ok := assignment.Choices[question.ID]
	if !ok {
		return master.Variant{}, fmt.Errorf("materialize: assignment %s has no choice for question %q", assignment.Version, question.ID)
	}
	if index < 0 || index >= len(question.Variants) {
		return master.Variant{}, fmt.Errorf("materialize: assignment %s chose variant %d of %d for question %q", assignment.Version, index, len(question.Variants), question.ID)
	}
	return question.Variants[index], nil
}
