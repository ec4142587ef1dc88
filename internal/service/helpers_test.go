package service_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap/zaptest"

	"github.com/remaimber-it/quizbank/internal/domain/category"
	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/question"
	"github.com/remaimber-it/quizbank/internal/infrastructure/metrics"
	"github.com/remaimber-it/quizbank/internal/service"
	"github.com/remaimber-it/quizbank/internal/store"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

func addCategory(t *testing.T, s store.Store, name string, session int) int64 {
	t.Helper()
	c := &category.Category{Name: name, SessionNumber: session}
	if err := s.SaveCategory(context.Background(), c); err != nil {
		t.Fatalf("save category: %v", err)
	}
	return c.ID
}

// addQuestions stores n questions of difficulty d in the category. The
// correct answer is always c.
func addQuestions(t *testing.T, s store.Store, categoryID int64, d question.Difficulty, n int) []question.Question {
	t.Helper()
	out := make([]question.Question, 0, n)
	for i := 0; i < n; i++ {
		q := question.Question{
			CategoryID: categoryID,
			Type:       question.TypeConceptual,
			Text:       "Pick the third option",
			Options:    [5]string{"1", "2", "3", "4", "5"},
			Correct:    question.LabelC,
			Difficulty: d,
		}
		if err := s.SaveQuestion(context.Background(), &q); err != nil {
			t.Fatalf("save question: %v", err)
		}
		out = append(out, q)
	}
	return out
}

func newGenerator(t *testing.T, s store.Reader, m *metrics.Metrics) *service.ExamGenerator {
	return service.NewExamGenerator(s, exam.DefaultConfig(), rand.New(rand.NewPCG(7, 11)), zaptest.NewLogger(t), m)
}

func newRecorder(t *testing.T, s store.Store, m *metrics.Metrics) *service.ExamRecorder {
	return service.NewExamRecorder(s, 4, zaptest.NewLogger(t), m).WithClock(clock)
}

func newProgress(t *testing.T, s store.Store) *service.ProgressService {
	return service.NewProgressService(s, zaptest.NewLogger(t), newMetrics()).WithClock(clock)
}

func ids(qs []question.Question) []int64 {
	out := make([]int64, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

// answerFirst answers the first n questions correctly and the rest wrongly.
func answerFirst(qs []question.Question, n int) map[int64]string {
	answers := make(map[int64]string, len(qs))
	for i, q := range qs {
		if i < n {
			answers[q.ID] = string(q.Correct)
		} else {
			answers[q.ID] = "a"
		}
	}
	return answers
}

var errInjected = errors.New("injected failure")

// failingStore fails the progress upsert of every transaction.
type failingStore struct {
	*store.SQLiteStore
}

func (f *failingStore) WithinTx(ctx context.Context, fn func(store.Writer) error) error {
	return f.SQLiteStore.WithinTx(ctx, func(w store.Writer) error {
		return fn(failingWriter{Writer: w})
	})
}

type failingWriter struct {
	store.Writer
}

func (failingWriter) UpsertProgress(context.Context, int64, int, int, time.Time) error {
	return errInjected
}
