package master

import (
	"fmt"
	"strings"

	"jexam/internal/config"
	"jexam/internal/notebook"
	"jexam/internal/spec"
)

// Master is the parsed form of a master exam notebook: the exam config, the
// classified block sequence in document order, and the variant catalog.
type Master struct {
	Config    spec.ExamConfig
	Blocks    []Block
	Questions []*Question
	Catalog   *Catalog
}

// section tracks which delimiter block the parser is inside.
type section int

const (
	outside section = iota
	inIntroduction
	inQuestion
	inVersion
	inConclusion
)

// indexed pairs a cell with its position in the master notebook so parse
// errors can point at the offending cell.
type indexed struct {
	pos  int
	cell notebook.Cell
}

// Parse classifies the master notebook's cells. It fails fast: on any
// structural error no partial result is returned.
func Parse(nb notebook.Notebook) (*Master, error) {
	p := parser{}
	for i, cell := range nb.Cells {
		if err := p.consume(i, cell); err != nil {
			return nil, err
		}
	}
	if err := p.finish(len(nb.Cells)); err != nil {
		return nil, err
	}
	return &Master{
		Config:    p.examConfig,
		Blocks:    p.blocks,
		Questions: p.questions,
		Catalog:   newCatalog(p.questions),
	}, nil
}

type parser struct {
	state       section
	sectionPos  int
	examSeen    bool
	examConfig  spec.ExamConfig
	questionCfg spec.QuestionConfig
	questionPos int
	cells       []indexed
	versions    [][]indexed
	blocks      []Block
	questions   []*Question
	seenIDs     map[string]int
}

func (p *parser) consume(pos int, cell notebook.Cell) error {
	if d, ok := matchBegin(cell); ok {
		return p.begin(d, pos, cell)
	}
	if d, ok := matchEnd(cell); ok {
		return p.end(d, pos)
	}
	if looksLikeMarker(cell) {
		return malformedf(pos, "unrecognized marker %q (markers are upper-case; the exam config cell has no END marker)", strings.TrimSpace(cell.Source.FirstLine()))
	}
	if p.state == outside {
		return malformedf(pos, "cell found outside a delimited block")
	}
	if p.state == inQuestion && len(p.versions) > 0 {
		return malformedf(pos, "cell found between version blocks")
	}
	p.cells = append(p.cells, indexed{pos: pos, cell: cell})
	return nil
}

func (p *parser) begin(d delim, pos int, cell notebook.Cell) error {
	switch d {
	case delimExam:
		if p.state != outside {
			return malformedf(pos, "BEGIN EXAM detected inside another block")
		}
		if p.examSeen {
			return malformedf(pos, "duplicate BEGIN EXAM")
		}
		cfg, err := spec.ParseExamConfig(delimBody(cell))
		if err != nil {
			return malformedf(pos, "%v", err)
		}
		p.examSeen = true
		p.examConfig = cfg
		return nil
	case delimIntroduction:
		if p.state != outside {
			return malformedf(pos, "BEGIN INTRODUCTION detected inside another block")
		}
		p.state = inIntroduction
		p.sectionPos = pos
		return nil
	case delimQuestion:
		if p.state != outside {
			return malformedf(pos, "BEGIN QUESTION detected inside another block")
		}
		cfg, err := spec.ParseQuestionConfig(delimBody(cell))
		if err != nil {
			return malformedf(pos, "%v", err)
		}
		if err := config.ValidateQuestion(cfg, pos); err != nil {
			return malformedf(pos, "%v", err)
		}
		p.state = inQuestion
		p.questionCfg = cfg
		p.questionPos = pos
		p.versions = nil
		return nil
	case delimVersion:
		if p.state != inQuestion {
			return malformedf(pos, "BEGIN VERSION outside a question block")
		}
		if len(p.cells) > 0 {
			return malformedf(pos, "cell found between question config and version blocks")
		}
		p.state = inVersion
		return nil
	case delimConclusion:
		if p.state != outside {
			return malformedf(pos, "BEGIN CONCLUSION detected inside another block")
		}
		p.state = inConclusion
		p.sectionPos = pos
		return nil
	}
	return malformedf(pos, "unrecognized delimiter")
}

func (p *parser) end(d delim, pos int) error {
	switch {
	case d == delimIntroduction && p.state == inIntroduction:
		p.flushStatic()
		p.state = outside
		return nil
	case d == delimVersion && p.state == inVersion:
		if len(p.cells) == 0 {
			return malformedf(pos, "version block has no cells")
		}
		p.versions = append(p.versions, p.cells)
		p.cells = nil
		p.state = inQuestion
		return nil
	case d == delimQuestion && p.state == inQuestion:
		if err := p.flushQuestion(); err != nil {
			return err
		}
		p.state = outside
		return nil
	case d == delimConclusion && p.state == inConclusion:
		p.flushStatic()
		p.state = outside
		return nil
	default:
		return malformedf(pos, "END %s found outside its block", d)
	}
}

// finish rejects a master whose final block is never closed.
func (p *parser) finish(total int) error {
	switch p.state {
	case outside:
		return nil
	case inIntroduction:
		return malformedf(p.sectionPos, "BEGIN INTRODUCTION without END INTRODUCTION before document end")
	case inQuestion:
		return malformedf(p.questionPos, "BEGIN QUESTION without END QUESTION before document end")
	case inVersion:
		return malformedf(p.questionPos, "BEGIN VERSION without END VERSION before document end")
	case inConclusion:
		return malformedf(p.sectionPos, "BEGIN CONCLUSION without END CONCLUSION before document end")
	default:
		return malformedf(total, "parser in unknown state")
	}
}

func (p *parser) flushStatic() {
	if len(p.cells) == 0 {
		return
	}
	cells := make([]notebook.Cell, 0, len(p.cells))
	for _, item := range p.cells {
		cells = append(cells, item.cell)
	}
	p.blocks = append(p.blocks, Block{Kind: Static, Position: p.sectionPos, Cells: cells})
	p.cells = nil
}

func (p *parser) flushQuestion() error {
	versions := p.versions
	if len(versions) == 0 && len(p.cells) > 0 {
		// A question with no BEGIN VERSION blocks is its own single variant.
		versions = [][]indexed{p.cells}
	}
	p.cells = nil
	p.versions = nil
	if len(versions) == 0 {
		return malformedf(p.questionPos, "question declares no variants")
	}

	question := &Question{Config: p.questionCfg, Position: p.questionPos}
	for index, raw := range versions {
		variant, err := buildVariant(index, raw)
		if err != nil {
			return err
		}
		question.Variants = append(question.Variants, variant)
	}
	question.ID = p.questionCfg.ID
	if question.ID == "" {
		question.ID = defaultQuestionID(question.Variants)
	}
	if p.seenIDs == nil {
		p.seenIDs = map[string]int{}
	}
	if _, exists := p.seenIDs[question.ID]; exists {
		return &DuplicateQuestionIDError{QuestionID: question.ID, Position: p.questionPos}
	}
	p.seenIDs[question.ID] = p.questionPos

	kind := SingleQuestion
	if len(question.Variants) > 1 {
		kind = VariantGroup
	}
	p.questions = append(p.questions, question)
	p.blocks = append(p.blocks, Block{Kind: kind, Position: p.questionPos, Question: question})
	return nil
}

// buildVariant splits a version's cells into content and tests and computes
// both the solution and sanitized renderings.
func buildVariant(index int, raw []indexed) (Variant, error) {
	variant := Variant{Index: index}
	original := make([]notebook.Cell, 0, len(raw))
	for _, item := range raw {
		original = append(original, item.cell)
		if isTestCell(item.cell) {
			variant.Tests = append(variant.Tests, readTest(item.cell))
			continue
		}
		sanitized, err := sanitizeCell(item.cell, item.pos)
		if err != nil {
			return Variant{}, err
		}
		variant.Cells = append(variant.Cells, item.cell.Clone())
		variant.Sanitized = append(variant.Sanitized, sanitized)
	}
	variant.Hash = hashCells(original)
	return variant, nil
}

// defaultQuestionID derives a stable id from the variant hashes when the
// master omits one.
func defaultQuestionID(variants []Variant) string {
	combined := ""
	for _, variant := range variants {
		combined += variant.Hash
	}
	sum := hashCells([]notebook.Cell{notebook.NewRawCell(combined)})
	return fmt.Sprintf("q%s", sum[:8])
}
