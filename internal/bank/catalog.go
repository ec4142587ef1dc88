// Package bank moves the question bank in and out of the store as a
// catalog document, in YAML or JSON.
package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/remaimber-it/quizbank/internal/domain/category"
	"github.com/remaimber-it/quizbank/internal/domain/question"
)

const Version = "1.0"

var (
	ErrUnknownFormat  = errors.New("unknown catalog format")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

type Options struct {
	A string `yaml:"a" json:"a"`
	B string `yaml:"b" json:"b"`
	C string `yaml:"c" json:"c"`
	D string `yaml:"d" json:"d"`
	E string `yaml:"e" json:"e"`
}

type QuestionEntry struct {
	Type             question.Type       `yaml:"type" json:"type"`
	Text             string              `yaml:"text" json:"text"`
	Options          Options             `yaml:"options" json:"options"`
	Correct          question.Label      `yaml:"correct" json:"correct"`
	Explanation      string              `yaml:"explanation,omitempty" json:"explanation,omitempty"`
	DatasetReference *string             `yaml:"dataset_reference,omitempty" json:"dataset_reference,omitempty"`
	Difficulty       question.Difficulty `yaml:"difficulty" json:"difficulty"`
}

type CategoryEntry struct {
	Name          string          `yaml:"name" json:"name"`
	Description   string          `yaml:"description,omitempty" json:"description,omitempty"`
	SessionNumber int             `yaml:"session_number" json:"session_number"`
	Questions     []QuestionEntry `yaml:"questions" json:"questions"`
}

// Catalog is the portable form of the whole bank.
type Catalog struct {
	Version    string          `yaml:"version" json:"version"`
	ExportedAt string          `yaml:"exported_at,omitempty" json:"exported_at,omitempty"`
	Categories []CategoryEntry `yaml:"categories" json:"categories"`
}

func Decode(r io.Reader, f Format) (*Catalog, error) {
	var c Catalog
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml catalog: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&c); err != nil {
			return nil, fmt.Errorf("decode json catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return &c, nil
}

func Encode(w io.Writer, f Format, c *Catalog) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("encode yaml catalog: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Validate checks every entry and reports all problems at once, each
// prefixed with its position in the document.
func (c *Catalog) Validate() error {
	var errs []error
	names := make(map[string]bool, len(c.Categories))
	for i, ce := range c.Categories {
		cat := ce.category()
		if err := cat.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("categories[%d]: %w", i, err))
			continue
		}
		if names[cat.Name] {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate name %q", i, cat.Name))
		}
		names[cat.Name] = true
		for j, qe := range ce.Questions {
			q := qe.question(0)
			if err := q.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("categories[%d].questions[%d]: %w", i, j, err))
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidCatalog}, errs...)...)
	}
	return nil
}

// QuestionCount is the number of questions across all categories.
func (c *Catalog) QuestionCount() int {
	n := 0
	for _, ce := range c.Categories {
		n += len(ce.Questions)
	}
	return n
}

func (ce CategoryEntry) category() *category.Category {
	return category.New(ce.Name, ce.Description, ce.SessionNumber)
}

func (qe QuestionEntry) question(categoryID int64) question.Question {
	correct, err := question.ParseLabel(string(qe.Correct))
	if err != nil {
		// keep the raw value so Validate reports it
		correct = qe.Correct
	}
	return question.Question{
		CategoryID:       categoryID,
		Type:             question.Type(strings.ToLower(strings.TrimSpace(string(qe.Type)))),
		Text:             strings.TrimSpace(qe.Text),
		Options:          [5]string{qe.Options.A, qe.Options.B, qe.Options.C, qe.Options.D, qe.Options.E},
		Correct:          correct,
		Explanation:      qe.Explanation,
		DatasetReference: qe.DatasetReference,
		Difficulty:       question.Difficulty(strings.ToLower(strings.TrimSpace(string(qe.Difficulty)))),
	}
}

func entryFromQuestion(q question.Question) QuestionEntry {
	return QuestionEntry{
		Type: q.Type,
		Text: q.Text,
		Options: Options{
			A: q.Options[0],
			B: q.Options[1],
			C: q.Options[2],
			D: q.Options[3],
			E: q.Options[4],
		},
		Correct:          q.Correct,
		Explanation:      q.Explanation,
		DatasetReference: q.DatasetReference,
		Difficulty:       q.Difficulty,
	}
}
