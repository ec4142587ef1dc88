package question

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLabel    = errors.New("invalid answer label")
	ErrInvalidQuestion = errors.New("invalid question")
)

type Type string

const (
	TypeConceptual Type = "conceptual"
	TypeSyntax     Type = "syntax"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func (t Type) Valid() bool {
	return t == TypeConceptual || t == TypeSyntax
}

// Label is an option letter, a through e. The zero value means "no answer".
type Label string

const (
	LabelNone Label = ""
	LabelA    Label = "a"
	LabelB    Label = "b"
	LabelC    Label = "c"
	LabelD    Label = "d"
	LabelE    Label = "e"
)

// Labels lists the option labels in display order.
var Labels = [5]Label{LabelA, LabelB, LabelC, LabelD, LabelE}

func (l Label) Valid() bool {
	return l.index() >= 0
}

func (l Label) index() int {
	for i, candidate := range Labels {
		if l == candidate {
			return i
		}
	}
	return -1
}

// ParseLabel normalizes a submitted answer. Blank input yields LabelNone,
// which is a valid "unanswered" submission and scores as incorrect.
func ParseLabel(s string) (Label, error) {
	l := Label(strings.ToLower(strings.TrimSpace(s)))
	if l == LabelNone || l.Valid() {
		return l, nil
	}
	return LabelNone, fmt.Errorf("%w: %q", ErrInvalidLabel, s)
}

// Question is a multiple-choice item of the bank. It is immutable once
// loaded; the exam flow only reads it.
type Question struct {
	ID               int64
	CategoryID       int64
	Type             Type
	Text             string
	Options          [5]string // indexed like Labels
	Correct          Label
	Explanation      string
	DatasetReference *string
	Difficulty       Difficulty
}

// Option returns the text of the option with the given label.
func (q *Question) Option(l Label) (string, bool) {
	i := l.index()
	if i < 0 {
		return "", false
	}
	return q.Options[i], true
}

// IsCorrect reports whether the submitted label is the correct one.
// An empty submission is never correct.
func (q *Question) IsCorrect(submitted Label) bool {
	return submitted != LabelNone && submitted == q.Correct
}

func (q *Question) Validate() error {
	var errs []error
	if strings.TrimSpace(q.Text) == "" {
		errs = append(errs, errors.New("question text cannot be empty"))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			errs = append(errs, fmt.Errorf("option %s cannot be empty", Labels[i]))
		}
	}
	if !q.Correct.Valid() {
		errs = append(errs, fmt.Errorf("correct answer %q is not one of a-e", q.Correct))
	}
	if !q.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown question type %q", q.Type))
	}
	if !q.Difficulty.Valid() {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", q.Difficulty))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidQuestion}, errs...)...)
	}
	return nil
}
