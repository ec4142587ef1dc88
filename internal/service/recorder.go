package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/question"
	"github.com/remaimber-it/quizbank/internal/infrastructure/metrics"
	"github.com/remaimber-it/quizbank/internal/infrastructure/tracing"
	"github.com/remaimber-it/quizbank/internal/store"
	"github.com/remaimber-it/quizbank/internal/worker"
)

// ErrQuestionMissing means a submission references a question that is no
// longer in the bank.
var ErrQuestionMissing = errors.New("question missing from bank")

// ExamRecorder scores submissions and persists them together with the
// progress they earn.
type ExamRecorder struct {
	store   store.Store
	logger  *zap.Logger
	metrics *metrics.Metrics
	workers int
	now     func() time.Time
}

// NewExamRecorder creates an ExamRecorder. Question lookups run on up to
// workers goroutines.
func NewExamRecorder(s store.Store, workers int, logger *zap.Logger, m *metrics.Metrics) *ExamRecorder {
	if workers < 1 {
		workers = 1
	}
	return &ExamRecorder{
		store:   s,
		logger:  logger,
		metrics: m,
		workers: workers,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for exam and progress timestamps.
func (r *ExamRecorder) WithClock(now func() time.Time) *ExamRecorder {
	r.now = now
	return r
}

type lookup struct {
	q   *question.Question
	err error
}

// Score grades sub and records it. Either the exam, all its answers and
// every category increment are stored, or nothing is.
func (r *ExamRecorder) Score(ctx context.Context, sub exam.Submission) (*exam.Outcome, error) {
	ctx, span := tracing.Tracer().Start(ctx, "ExamRecorder.Score")
	defer span.End()
	span.SetAttributes(attribute.Int("exam.questions", len(sub.QuestionIDs)))

	answers, err := sub.Parse()
	if err != nil {
		return nil, err
	}

	questions, err := r.lookupQuestions(ctx, sub.QuestionIDs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := exam.Evaluate(questions, answers, sub.ElapsedSeconds)
	at := r.now()

	err = r.store.WithinTx(ctx, func(w store.Writer) error {
		id, err := w.CreateExam(ctx, out.Total, exam.NormalizeFilter(sub.CategoryFilter), at)
		if err != nil {
			return fmt.Errorf("create exam: %w", err)
		}
		for _, a := range out.Answers(id) {
			if _, err := w.CreateExamAnswer(ctx, a); err != nil {
				return fmt.Errorf("record answer to question %d: %w", a.QuestionID, err)
			}
		}
		if err := w.FinishExam(ctx, id, out.Correct, out.ElapsedSeconds); err != nil {
			return fmt.Errorf("finish exam %d: %w", id, err)
		}
		for _, d := range out.Categories {
			if err := applyDelta(ctx, w, d, at); err != nil {
				return err
			}
		}
		out.ExamID = id
		return nil
	})
	if err != nil {
		span.RecordError(err)
		r.logger.Error("exam not recorded", zap.Int("questions", out.Total), zap.Error(err))
		return nil, err
	}

	r.metrics.ObserveScored(out.Score)
	r.metrics.ObserveProgress(len(out.Categories))
	r.logger.Info("exam recorded",
		zap.Int64("exam_id", out.ExamID),
		zap.Int("correct", out.Correct),
		zap.Int("total", out.Total),
		zap.Float64("score", out.Score),
	)
	return &out, nil
}

// lookupQuestions resolves ids in order. Every missing id is reported.
func (r *ExamRecorder) lookupQuestions(ctx context.Context, ids []int64) ([]question.Question, error) {
	found := worker.Map(r.workers, ids, func(id int64) lookup {
		q, err := r.store.QuestionByID(ctx, id)
		return lookup{q: q, err: err}
	})

	questions := make([]question.Question, 0, len(ids))
	var errs []error
	for i, l := range found {
		switch {
		case errors.Is(l.err, store.ErrNotFound):
			errs = append(errs, fmt.Errorf("%w: %d", ErrQuestionMissing, ids[i]))
		case l.err != nil:
			return nil, fmt.Errorf("look up question %d: %w", ids[i], l.err)
		default:
			questions = append(questions, *l.q)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return questions, nil
}
