package materialize

import (
	"jexam/internal/master"
	"jexam/internal/notebook"
)

// Solutions builds the grader-facing notebook containing every question and
// every variant with solutions retained, mirroring the student layout.
func Solutions(m *master.Master, opts Options) notebook.Notebook {
	nb := notebook.New()
	nb.Metadata["jexam"] = map[string]any{"exam_version": "autograder"}

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
			nb.Cells = append(nb.Cells, questionHeader(questionNumber))
			question := block.Question
			for _, variant := range question.Variants {
				if block.Kind == master.VariantGroup {
					nb.Cells = append(nb.Cells, versionHeader(variant.Index+1))
				}
				nb.Cells = append(nb.Cells, notebook.CloneCells(variant.Cells)...)
				if question.Mode() == master.Auto && len(variant.Tests) > 0 {
					nb.Cells = append(nb.Cells, checkCell(opts.Format, variant.Hash))
				}
			}
		}
	}

	if opts.CheckAllCell {
		nb.Cells = append(nb.Cells, checkAllCells(opts.Format)...)
	}
	if opts.ExportCell.On() {
		nb.Cells = append(nb.Cells, exportCells(opts.Format, opts.ExportCell)...)
	}
	return nb
}

// SolutionKeys returns answer-key entries for every variant of every
// question, the grading payload backing the solutions notebook.
func SolutionKeys(m *master.Master) []AnswerKeyEntry {
	var keys []AnswerKeyEntry
	for _, question := range m.Questions {
		for _, variant := range question.Variants {
			keys = append(keys, AnswerKeyEntry{
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
	return keys
}
