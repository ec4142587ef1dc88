package store

import (
	"context"
	"errors"
	"time"

	"github.com/remaimber-it/quizbank/internal/domain/category"
	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/progress"
	"github.com/remaimber-it/quizbank/internal/domain/question"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrExamNotFound    = errors.New("exam not found")
	ErrExamFinished    = errors.New("exam already finished")
	ErrMalformedRecord = errors.New("malformed stored record")
)

// AnsweredQuestion is an exam answer joined with the question it answers.
type AnsweredQuestion struct {
	exam.Answer
	Question question.Question
}

// Reader is the read side of the question bank, exam history and progress.
type Reader interface {
	// RandomQuestions returns up to limit questions in random order,
	// restricted to categoryIDs when it is not empty.
	RandomQuestions(ctx context.Context, limit int, categoryIDs []int64) ([]question.Question, error)
	QuestionByID(ctx context.Context, id int64) (*question.Question, error)
	QuestionsByCategory(ctx context.Context, categoryID int64) ([]question.Question, error)
	CountQuestions(ctx context.Context, categoryIDs ...int64) (int, error)

	// ListCategories returns every category ordered by session number.
	ListCategories(ctx context.Context) ([]*category.Category, error)
	GetCategory(ctx context.Context, id int64) (*category.Category, error)

	GetProgress(ctx context.Context, categoryID int64) (*progress.StudyProgress, error)
	ListProgress(ctx context.Context) ([]progress.CategoryProgress, error)

	GetExam(ctx context.Context, id int64) (*exam.Exam, error)
	// ListExams returns the newest exams first. A limit <= 0 returns all.
	ListExams(ctx context.Context, limit int) ([]*exam.Exam, error)
	ExamAnswers(ctx context.Context, examID int64) ([]AnsweredQuestion, error)
	ExamStats(ctx context.Context) (exam.Stats, error)
}

// Writer holds the mutations performed when an exam is recorded.
type Writer interface {
	CreateExam(ctx context.Context, total int, filter []int64, at time.Time) (int64, error)
	// FinishExam stores the result of an exam. It succeeds once per exam
	// and returns ErrExamFinished afterwards.
	FinishExam(ctx context.Context, id int64, correct, elapsedSeconds int) error
	CreateExamAnswer(ctx context.Context, a exam.Answer) (int64, error)
	// UpsertProgress adds the deltas to the category row, creating it when
	// absent, in a single statement.
	UpsertProgress(ctx context.Context, categoryID int64, answered, correct int, at time.Time) error
}

// Admin holds bank loading and maintenance operations.
type Admin interface {
	// SaveCategory inserts c or updates the category with the same name,
	// and sets c.ID.
	SaveCategory(ctx context.Context, c *category.Category) error
	SaveQuestion(ctx context.Context, q *question.Question) error
	// SeedProgress creates a zero progress row for every category that
	// has none.
	SeedProgress(ctx context.Context) error
	// PurgeHistory deletes every exam with its answers and resets all
	// progress rows to zero.
	PurgeHistory(ctx context.Context) error
}

type Store interface {
	Reader
	Writer
	Admin

	// WithinTx runs fn in one transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise.
	WithinTx(ctx context.Context, fn func(Writer) error) error
	Close() error
}
