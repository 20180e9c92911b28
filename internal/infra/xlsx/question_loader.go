// Package xlsx reads question spreadsheets. Each row is
//
//	question | option 1 | option 2 | option 3 | option 4 | correct answer | difficulty | category | hint
//
// An optional header row whose first cell is "question" is skipped.
package xlsx

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"quizmaster/internal/bank"
	"quizmaster/internal/domain"
)

const minColumns = 6

// QuestionLoader reads questions from one sheet of a workbook.
type QuestionLoader struct {
	path  string
	sheet string
}

// NewQuestionLoader reads sheet from the workbook at path. An empty sheet means the first one.
func NewQuestionLoader(path, sheet string) *QuestionLoader {
	return &QuestionLoader{path: path, sheet: sheet}
}

func (l *QuestionLoader) Source() string { return l.path }

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	records, err := Records(rows)
	if err != nil {
		return nil, err
	}
	return bank.Questions(records)
}

// Records converts spreadsheet rows into question records. Blank rows are ignored.
func Records(rows [][]string) ([]bank.Record, error) {
	var records []bank.Record
	for i, row := range rows {
		if blank(row) {
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "question") {
			continue
		}
		if len(row) < minColumns {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", i+1, minColumns, len(row))
		}
		records = append(records, bank.Record{
			Question:      row[0],
			Options:       []string{row[1], row[2], row[3], row[4]},
			CorrectAnswer: row[5],
			Difficulty:    cell(row, 6),
			Category:      cell(row, 7),
			Hint:          cell(row, 8),
		})
	}
	return records, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
