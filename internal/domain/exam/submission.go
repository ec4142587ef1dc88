package exam

import (
	"errors"
	"fmt"

	"github.com/remaimber-it/quizbank/internal/domain/progress"
	"github.com/remaimber-it/quizbank/internal/domain/question"
)

var ErrInvalidSubmission = errors.New("invalid exam submission")

// Submission is what a learner hands in: the generated question ids in
// presentation order, the answers keyed by question id and the time taken.
type Submission struct {
	QuestionIDs    []int64
	CategoryFilter []int64
	Answers        map[int64]string
	ElapsedSeconds int
}

// Parse validates the submission and normalizes its answer labels.
// Missing or blank answers become question.LabelNone; answers to questions
// that are not part of the exam are dropped.
func (s Submission) Parse() (map[int64]question.Label, error) {
	if s.ElapsedSeconds < 0 {
		return nil, fmt.Errorf("%w: elapsed time %d is negative", ErrInvalidSubmission, s.ElapsedSeconds)
	}

	inExam := make(map[int64]struct{}, len(s.QuestionIDs))
	for _, id := range s.QuestionIDs {
		if _, dup := inExam[id]; dup {
			return nil, fmt.Errorf("%w: question %d appears twice", ErrInvalidSubmission, id)
		}
		inExam[id] = struct{}{}
	}

	labels := make(map[int64]question.Label, len(s.QuestionIDs))
	for id, raw := range s.Answers {
		if _, ok := inExam[id]; !ok {
			continue
		}
		l, err := question.ParseLabel(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %w", ErrInvalidSubmission, id, err)
		}
		labels[id] = l
	}
	return labels, nil
}

// Result is the evaluation of a single question.
type Result struct {
	Question  question.Question `json:"-"`
	Submitted question.Label    `json:"user_answer"`
	IsCorrect bool              `json:"is_correct"`
}

// Outcome is the evaluated exam, before and after persistence.
type Outcome struct {
	ExamID          int64
	Total           int
	Correct         int
	Score           float64
	ElapsedSeconds  int
	TimePerQuestion int
	Results         []Result
	Categories      []progress.Delta
}

// Evaluate grades the questions, in exam order, against the answers.
func Evaluate(questions []question.Question, answers map[int64]question.Label, elapsedSeconds int) Outcome {
	tally := progress.NewTally()
	results := make([]Result, len(questions))
	correct := 0
	for i, q := range questions {
		submitted := answers[q.ID]
		ok := q.IsCorrect(submitted)
		if ok {
			correct++
		}
		results[i] = Result{Question: q, Submitted: submitted, IsCorrect: ok}
		tally.Add(q.CategoryID, ok)
	}

	total := len(questions)
	return Outcome{
		Total:           total,
		Correct:         correct,
		Score:           Score(correct, total),
		ElapsedSeconds:  elapsedSeconds,
		TimePerQuestion: TimeShare(elapsedSeconds, total),
		Results:         results,
		Categories:      tally.Deltas(),
	}
}

// Answers converts the outcome into the answer rows to persist.
func (o *Outcome) Answers(examID int64) []Answer {
	rows := make([]Answer, len(o.Results))
	for i, r := range o.Results {
		rows[i] = Answer{
			ExamID:           examID,
			QuestionID:       r.Question.ID,
			Submitted:        r.Submitted,
			IsCorrect:        r.IsCorrect,
			TimeSpentSeconds: o.TimePerQuestion,
		}
	}
	return rows
}
