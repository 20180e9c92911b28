package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"quizmaster/internal/domain"
)

// Format is the encoding of a question document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultCategory is assigned to records without a category.
const DefaultCategory = "Uncategorized"

// questionNamespace seeds deterministic ids for records that do not carry one.
var questionNamespace = uuid.MustParse("6f1c5d2e-8a4b-4c1e-9d3f-2b7a5e0c9f14")

var optionIDs = []string{"a", "b", "c", "d"}

var validate = validator.New()

// Record is one question as written in a document.
type Record struct {
	ID            string   `json:"id,omitempty" yaml:"id,omitempty"`
	Question      string   `json:"question" yaml:"question" validate:"required"`
	Options       []string `json:"options" yaml:"options" validate:"len=4,unique,dive,required"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer" validate:"required"`
	Difficulty    string   `json:"difficulty" yaml:"difficulty" validate:"oneof=easy medium hard"`
	Category      string   `json:"category" yaml:"category" validate:"required"`
	Hint          string   `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// Document is the top-level shape of a question file.
type Document struct {
	Questions []Record `json:"questions" yaml:"questions"`
}

// Normalize fills defaults and trims whitespace.
func (r *Record) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Question = strings.TrimSpace(r.Question)
	r.CorrectAnswer = strings.TrimSpace(r.CorrectAnswer)
	r.Category = strings.TrimSpace(r.Category)
	r.Hint = strings.TrimSpace(r.Hint)
	r.Difficulty = strings.ToLower(strings.TrimSpace(r.Difficulty))
	for i := range r.Options {
		r.Options[i] = strings.TrimSpace(r.Options[i])
	}
	if r.Difficulty == "" {
		r.Difficulty = string(domain.DifficultyEasy)
	}
	if r.Category == "" {
		r.Category = DefaultCategory
	}
}

// ToQuestion converts a record into a domain question, validating it first.
func (r Record) ToQuestion() (domain.Question, error) {
	r.Normalize()
	if err := validate.Struct(r); err != nil {
		return domain.Question{}, err
	}

	q := domain.Question{
		ID:         r.ID,
		Text:       r.Question,
		Category:   r.Category,
		Difficulty: domain.Difficulty(r.Difficulty),
		Hint:       r.Hint,
		Options:    make([]domain.Option, len(r.Options)),
	}
	for i, text := range r.Options {
		q.Options[i] = domain.Option{ID: optionIDs[i], Text: text}
		if text == r.CorrectAnswer {
			q.CorrectID = optionIDs[i]
		}
	}
	if q.CorrectID == "" {
		return domain.Question{}, fmt.Errorf("correct answer %q is not one of the options", r.CorrectAnswer)
	}
	if q.ID == "" {
		q.ID = uuid.NewSHA1(questionNamespace, []byte(q.Text)).String()
	}
	return q, nil
}

// RecordFor converts a domain question back into its document form.
func RecordFor(q domain.Question) Record {
	rec := Record{
		ID:            q.ID,
		Question:      q.Text,
		CorrectAnswer: q.Correct().Text,
		Difficulty:    string(q.Difficulty),
		Category:      q.Category,
		Hint:          q.Hint,
	}
	for _, opt := range q.Options {
		rec.Options = append(rec.Options, opt.Text)
	}
	return rec
}

// ParseDocument decodes a question document. JSON accepts either {"questions": [...]} or a bare array.
// Any invalid record fails the whole document.
func ParseDocument(data []byte, format Format) ([]domain.Question, error) {
	records, err := decodeRecords(data, format)
	if err != nil {
		return nil, err
	}
	return Questions(records)
}

// Questions converts records, reporting the first invalid one.
func Questions(records []Record) ([]domain.Question, error) {
	if len(records) == 0 {
		return nil, errors.New("document contains no questions")
	}
	questions := make([]domain.Question, 0, len(records))
	seen := make(map[string]int, len(records))
	for i, rec := range records {
		q, err := rec.ToQuestion()
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if prev, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("question %d: duplicate id %q (first seen at question %d)", i+1, q.ID, prev)
		}
		seen[q.ID] = i + 1
		questions = append(questions, q)
	}
	return questions, nil
}

// EncodeDocument writes questions in the given format.
func EncodeDocument(questions []domain.Question, format Format) ([]byte, error) {
	doc := Document{Questions: make([]Record, 0, len(questions))}
	for _, q := range questions {
		doc.Questions = append(doc.Questions, RecordFor(q))
	}
	if format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func decodeRecords(data []byte, format Format) ([]Record, error) {
	if format == FormatYAML {
		var doc Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return doc.Questions, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return records, nil
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return doc.Questions, nil
}
