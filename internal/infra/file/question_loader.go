// Package file keeps questions, high scores and player profiles in local files.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quizmaster/internal/bank"
	"quizmaster/internal/domain"
)

// QuestionLoader reads a JSON or YAML question document from disk.
type QuestionLoader struct {
	path string
}

func NewQuestionLoader(path string) *QuestionLoader {
	return &QuestionLoader{path: path}
}

func (l *QuestionLoader) Source() string { return l.path }

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}
	return bank.ParseDocument(data, FormatFor(l.path))
}

// FormatFor picks the document format from a file extension. Anything but .yaml/.yml is JSON.
func FormatFor(path string) bank.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return bank.FormatYAML
	}
	return bank.FormatJSON
}

// WriteQuestions encodes questions into path, choosing the format from its extension.
func WriteQuestions(path string, questions []domain.Question) error {
	data, err := bank.EncodeDocument(questions, FormatFor(path))
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	return writeAtomic(path, data)
}

// writeAtomic replaces path through a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
