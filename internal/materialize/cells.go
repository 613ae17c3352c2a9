package materialize

import (
	"fmt"
	"strings"

	"jexam/internal/notebook"
	"jexam/internal/spec"
)

// initCell builds the locked bootstrap cell for the grading client. okName
// is the .ok file name and is only used by the ok format.
func initCell(format, okName string) notebook.Cell {
	var cell notebook.Cell
	if format == "ok" {
		cell = notebook.NewCodeCell("# Initialize OK\nfrom client.api.notebook import Notebook\n" +
			fmt.Sprintf("ok = Notebook(%q)", okName))
	} else {
		cell = notebook.NewCodeCell("# Initialize Otter\nimport otter\ngrader = otter.Notebook()")
	}
	notebook.Lock(&cell)
	return cell
}

// checkCell builds the locked cell that runs one question's tests.
func checkCell(format, name string) notebook.Cell {
	var cell notebook.Cell
	if format == "ok" {
		cell = notebook.NewCodeCell(fmt.Sprintf("ok.grade(%q);", name))
	} else {
		cell = notebook.NewCodeCell(fmt.Sprintf("grader.check(%q)", name))
	}
	notebook.Lock(&cell)
	return cell
}

// checkAllCells builds the instructions plus run-everything cells.
func checkAllCells(format string) []notebook.Cell {
	instructions := notebook.NewMarkdownCell("To double-check your work, the cell below will rerun all of the autograder tests.")
	var check notebook.Cell
	if format == "ok" {
		check = notebook.NewCodeCell(strings.Join([]string{
			"# For your convenience, you can run this cell to run all the tests at once!",
			"import os",
			`print("Running all tests...")`,
			`_ = [ok.grade(q[:-3]) for q in os.listdir("tests") if q.startswith('q') and len(q) <= 10]`,
			`print("Finished running all tests.")`,
		}, "\n"))
	} else {
		check = notebook.NewCodeCell("grader.check_all()")
	}
	notebook.Lock(&instructions)
	notebook.Lock(&check)
	return []notebook.Cell{instructions, check}
}

// exportCells builds the submission instructions and export cells.
func exportCells(format string, cfg spec.ExportCellConfig) []notebook.Cell {
	var instructions, export notebook.Cell
	if format == "ok" {
		instructions = notebook.NewMarkdownCell("## Submission\n\nOnce you're finished, select \"Save and Checkpoint\" " +
			"in the File menu and then execute the submit cell below. The result will contain a " +
			"link that you can use to check that your assignment has been submitted successfully.")
		export = notebook.NewCodeCell("# Save your notebook first, then run this cell to submit.\n_ = ok.submit()")
	} else {
		instructions = notebook.NewMarkdownCell("## Submission\n\nMake sure you have run all cells in your notebook in order before " +
			"running the cell below, so that all images/graphs appear in the output. The cell below will generate " +
			"a zipfile for you to submit. **Please save before exporting!**")
		line := "grader.export()"
		if cfg.Filtering != nil && !*cfg.Filtering {
			line = "grader.export(filtering=False)"
		} else if cfg.PDF != nil && !*cfg.PDF {
			line = "grader.export(pdf=False)"
		}
		export = notebook.NewCodeCell("# Save your notebook first, then run this cell to export your submission.\n" + line)
	}
	if cfg.Instructions != "" {
		instructions.Source = notebook.SourceOf(instructions.Source.Text() + "\n\n" + cfg.Instructions)
	}
	notebook.Lock(&instructions)
	notebook.Lock(&export)
	// Trailing markdown cell is a buffer so the export cell is not last.
	return []notebook.Cell{instructions, export, notebook.NewMarkdownCell(" ")}
}

// questionHeader builds the markdown cell that numbers a question.
func questionHeader(number int) notebook.Cell {
	return notebook.NewMarkdownCell(fmt.Sprintf("### Question %d", number))
}

// versionHeader builds the markdown cell that numbers a variant in the
// solutions notebook.
func versionHeader(number int) notebook.Cell {
	return notebook.NewMarkdownCell(fmt.Sprintf("#### Version %d", number))
}
