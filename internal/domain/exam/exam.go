package exam

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/remaimber-it/quizbank/internal/domain/question"
)

var ErrMalformedFilter = errors.New("malformed category filter")

// Exam is one scored attempt. It is created when the submission is
// recorded and finished exactly once; CorrectAnswers, Score and
// ElapsedSeconds stay nil until then.
type Exam struct {
	ID             int64
	CreatedAt      time.Time
	TotalQuestions int
	CorrectAnswers *int
	Score          *float64
	CategoryFilter []int64 // empty = all categories
	ElapsedSeconds *int
}

func (e *Exam) Finished() bool {
	return e.CorrectAnswers != nil
}

// Answer is the learner's response to one question of an exam.
type Answer struct {
	ID               int64
	ExamID           int64
	QuestionID       int64
	Submitted        question.Label
	IsCorrect        bool
	TimeSpentSeconds int
}

// Stats summarizes all finished exams.
type Stats struct {
	Finished     int
	AverageScore float64
	BestScore    float64
}

// Score is 100*correct/total, 0 for an empty exam.
func Score(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}

// TimeShare apportions the elapsed time evenly with integer division.
// The remainder is not attributed to any question.
func TimeShare(elapsedSeconds, total int) int {
	if total == 0 {
		return 0
	}
	return elapsedSeconds / total
}

// NormalizeFilter drops duplicate category ids, keeping the first
// occurrence order.
func NormalizeFilter(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// EncodeFilter serializes a category filter as a JSON array of integers.
func EncodeFilter(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeFilter parses a stored category filter. An empty string is an
// empty filter; anything that is not a JSON integer array is malformed.
func DecodeFilter(s string) ([]int64, error) {
	if s == "" {
		return []int64{}, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformedFilter, s, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
