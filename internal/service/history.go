package service

import (
	"context"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/store"
)

// ExamDetail is a recorded exam with its answers in exam order.
type ExamDetail struct {
	Exam    *exam.Exam
	Answers []store.AnsweredQuestion
}

// HistoryService reads back recorded exams.
type HistoryService struct {
	store        store.Reader
	defaultLimit int
}

func NewHistoryService(s store.Reader, defaultLimit int) *HistoryService {
	return &HistoryService{store: s, defaultLimit: defaultLimit}
}

// Recent returns the newest exams. A limit <= 0 uses the default.
func (h *HistoryService) Recent(ctx context.Context, limit int) ([]*exam.Exam, error) {
	if limit <= 0 {
		limit = h.defaultLimit
	}
	return h.store.ListExams(ctx, limit)
}

func (h *HistoryService) Detail(ctx context.Context, examID int64) (*ExamDetail, error) {
	e, err := h.store.GetExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	answers, err := h.store.ExamAnswers(ctx, examID)
	if err != nil {
		return nil, err
	}
	return &ExamDetail{Exam: e, Answers: answers}, nil
}
