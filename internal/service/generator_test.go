package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/question"
)

func intPtr(n int) *int { return &n }

func TestGenerate_BalancedScenario(t *testing.T) {
	s := newStore(t)
	cat := addCategory(t, s, "SQL", 1)
	addQuestions(t, s, cat, question.DifficultyEasy, 6)
	addQuestions(t, s, cat, question.DifficultyMedium, 10)
	addQuestions(t, s, cat, question.DifficultyHard, 4)
	m := newMetrics()

	qs, err := newGenerator(t, s, m).Generate(context.Background(), exam.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(qs) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(qs))
	}
	seen := make(map[int64]bool)
	for _, q := range qs {
		if seen[q.ID] {
			t.Fatalf("question %d appears twice", q.ID)
		}
		seen[q.ID] = true
	}
	summary := question.DifficultySummary(qs)
	if summary[question.DifficultyEasy] != 6 || summary[question.DifficultyMedium] != 10 || summary[question.DifficultyHard] != 4 {
		t.Errorf("unexpected difficulty mix %v", summary)
	}
	if got := testutil.ToFloat64(m.ExamsGenerated.WithLabelValues("balanced")); got != 1 {
		t.Errorf("expected 1 generated exam, got %v", got)
	}
}

func TestGenerate_CategoryFilter(t *testing.T) {
	s := newStore(t)
	a := addCategory(t, s, "A", 1)
	b := addCategory(t, s, "B", 2)
	addQuestions(t, s, a, question.DifficultyEasy, 10)
	addQuestions(t, s, b, question.DifficultyMedium, 10)

	qs, err := newGenerator(t, s, newMetrics()).Generate(context.Background(), exam.Request{
		Count:      intPtr(5),
		Categories: []int64{b, b},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(qs))
	}
	for _, q := range qs {
		if q.CategoryID != b {
			t.Errorf("question %d is outside the filter", q.ID)
		}
	}
}

func TestGenerate_Shortfall(t *testing.T) {
	s := newStore(t)
	cat := addCategory(t, s, "A", 1)
	addQuestions(t, s, cat, question.DifficultyEasy, 1)
	addQuestions(t, s, cat, question.DifficultyMedium, 15)
	m := newMetrics()

	qs, err := newGenerator(t, s, m).Generate(context.Background(), exam.Request{Count: intPtr(10)})
	if err != nil {
		t.Fatalf("shortfall must not be an error: %v", err)
	}
	if len(qs) != 10 {
		t.Errorf("expected the gap to be filled, got %d questions", len(qs))
	}
	// quotas 3/5/2: 2 easy and 2 hard are taken from medium
	if got := testutil.ToFloat64(m.SelectionGap.WithLabelValues("fallback")); got != 4 {
		t.Errorf("expected 4 fallback questions, got %v", got)
	}
}

func TestGenerate_CountAbovePoolSize(t *testing.T) {
	s := newStore(t)
	cat := addCategory(t, s, "A", 1)
	addQuestions(t, s, cat, question.DifficultyMedium, 12)
	m := newMetrics()
	gen := newGenerator(t, s, m)

	cfg := exam.DefaultConfig()
	cfg.PoolSize = 5
	if err := gen.SetConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	qs, err := gen.Generate(context.Background(), exam.Request{Count: intPtr(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 10 {
		t.Errorf("expected 10 questions from a bank of 12, got %d", len(qs))
	}
	if got := testutil.ToFloat64(m.SelectionGap.WithLabelValues("missing")); got != 0 {
		t.Errorf("expected no missing questions, got %v", got)
	}

	random, err := gen.GenerateRandom(context.Background(), exam.Request{Count: intPtr(10)})
	if err != nil || len(random) != len(qs) {
		t.Errorf("random mode returned %d questions (%v), balanced returned %d", len(random), err, len(qs))
	}
}

func TestGenerate_Boundaries(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	gen := newGenerator(t, s, newMetrics())

	qs, err := gen.Generate(ctx, exam.Request{})
	if err != nil || qs == nil || len(qs) != 0 {
		t.Errorf("empty bank: expected empty list without error, got %v %v", qs, err)
	}

	cat := addCategory(t, s, "A", 1)
	addQuestions(t, s, cat, question.DifficultyHard, 3)

	qs, err = gen.Generate(ctx, exam.Request{Count: intPtr(0)})
	if err != nil || len(qs) != 0 {
		t.Errorf("count 0: expected empty list, got %v %v", qs, err)
	}

	if _, err := gen.Generate(ctx, exam.Request{Count: intPtr(-1)}); !errors.Is(err, exam.ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount, got %v", err)
	}

	bad := exam.Distribution{Easy: -0.2, Medium: 0.5}
	if _, err := gen.Generate(ctx, exam.Request{Distribution: &bad}); !errors.Is(err, exam.ErrInvalidDistribution) {
		t.Errorf("expected ErrInvalidDistribution, got %v", err)
	}

	qs, err = gen.Generate(ctx, exam.Request{Count: intPtr(20)})
	if err != nil || len(qs) != 3 {
		t.Errorf("small bank: expected all 3 questions, got %d %v", len(qs), err)
	}
}

func TestGenerateRandom(t *testing.T) {
	s := newStore(t)
	cat := addCategory(t, s, "A", 1)
	addQuestions(t, s, cat, question.DifficultyEasy, 20)
	m := newMetrics()

	qs, err := newGenerator(t, s, m).GenerateRandom(context.Background(), exam.Request{Count: intPtr(7)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 7 {
		t.Errorf("expected 7 questions, got %d", len(qs))
	}
	if got := testutil.ToFloat64(m.ExamsGenerated.WithLabelValues("random")); got != 1 {
		t.Errorf("expected 1 random exam, got %v", got)
	}
}

func TestSetConfig(t *testing.T) {
	s := newStore(t)
	cat := addCategory(t, s, "A", 1)
	addQuestions(t, s, cat, question.DifficultyMedium, 10)
	gen := newGenerator(t, s, newMetrics())

	bad := exam.DefaultConfig()
	bad.Distribution = exam.Distribution{Easy: 0.9, Medium: 0.9}
	if err := gen.SetConfig(bad); !errors.Is(err, exam.ErrInvalidDistribution) {
		t.Errorf("expected ErrInvalidDistribution, got %v", err)
	}

	cfg := exam.DefaultConfig()
	cfg.DefaultCount = 4
	if err := gen.SetConfig(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qs, err := gen.Generate(context.Background(), exam.Request{})
	if err != nil || len(qs) != 4 {
		t.Errorf("expected new default count 4, got %d %v", len(qs), err)
	}
}
