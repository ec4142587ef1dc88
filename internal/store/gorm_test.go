package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
)

// newGormTestStore runs the gorm store on SQLite through the modernc
// driver registered by sqlite.go.
func newGormTestStore(t *testing.T) *GormStore {
	t.Helper()
	dialector := sqlite.Dialector{DriverName: "sqlite", DSN: sqliteDSN(filepath.Join(t.TempDir(), "gorm.db"))}
	s, err := NewGorm(dialector, gormlogger.Discard)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGorm(t *testing.T) {
	runContract(t, func(t *testing.T) Store { return newGormTestStore(t) })
}

func TestGorm_RandomFunc(t *testing.T) {
	s := newGormTestStore(t)
	if got := s.randomFunc(); got != "RANDOM()" {
		t.Errorf("expected RANDOM() on sqlite, got %q", got)
	}
}

func TestGorm_MalformedFilter(t *testing.T) {
	s := newGormTestStore(t)
	ctx := context.Background()

	err := s.db.Exec(
		"INSERT INTO exams (created_at, total_questions, categories_filter) VALUES (?, ?, ?)",
		time.Now().UTC(), 1, "not-json",
	).Error
	if err != nil {
		t.Fatalf("insert exam: %v", err)
	}
	if _, err := s.GetExam(ctx, 1); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
	if _, err := s.ListExams(ctx, 0); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord from the listing, got %v", err)
	}
}

func TestGorm_ExamAnswersMissingQuestion(t *testing.T) {
	s := newGormTestStore(t)
	ctx := context.Background()

	id, err := s.CreateExam(ctx, 1, nil, time.Now())
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	if _, err := s.CreateExamAnswer(ctx, exam.Answer{ExamID: id, QuestionID: 42}); err != nil {
		t.Fatalf("create answer: %v", err)
	}
	if _, err := s.ExamAnswers(ctx, id); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}
