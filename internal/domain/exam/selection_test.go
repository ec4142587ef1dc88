package exam_test

import (
	"math/rand/v2"
	"testing"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/question"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// buildPool creates a pool with the given number of questions per
// difficulty. IDs are unique and grouped by difficulty.
func buildPool(easy, medium, hard int) []question.Question {
	var pool []question.Question
	next := int64(1)
	add := func(n int, d question.Difficulty) {
		for i := 0; i < n; i++ {
			pool = append(pool, question.Question{
				ID:         next,
				CategoryID: 1 + next%3,
				Type:       question.TypeConceptual,
				Text:       "Question",
				Options:    [5]string{"a", "b", "c", "d", "e"},
				Correct:    question.LabelA,
				Difficulty: d,
			})
			next++
		}
	}
	add(easy, question.DifficultyEasy)
	add(medium, question.DifficultyMedium)
	add(hard, question.DifficultyHard)
	return pool
}

func assertUnique(t *testing.T, qs []question.Question) {
	t.Helper()
	seen := make(map[int64]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			t.Fatalf("question %d selected twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSelectBalanced_BucketsExactlyMeetQuotas(t *testing.T) {
	pool := buildPool(6, 10, 4)

	sel := exam.SelectBalanced(pool, 20, exam.DefaultDistribution(), newRand(1))

	if len(sel.Questions) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(sel.Questions))
	}
	assertUnique(t, sel.Questions)

	if sel.Quotas != (exam.Quotas{Easy: 6, Medium: 10, Hard: 4}) {
		t.Errorf("unexpected quotas %+v", sel.Quotas)
	}
	if sel.Fallback != 0 || sel.Missing != 0 {
		t.Errorf("expected no fallback or shortfall, got fallback=%d missing=%d", sel.Fallback, sel.Missing)
	}

	summary := question.DifficultySummary(sel.Questions)
	if summary[question.DifficultyEasy] != 6 || summary[question.DifficultyMedium] != 10 || summary[question.DifficultyHard] != 4 {
		t.Errorf("unexpected difficulty summary %v", summary)
	}
}

func TestSelectBalanced_ExactQuotasFromLargePool(t *testing.T) {
	pool := buildPool(40, 40, 40)
	dists := []exam.Distribution{
		exam.DefaultDistribution(),
		{Easy: 0.25, Medium: 0.25, Hard: 0.5},
		{Easy: 0.33, Medium: 0.33, Hard: 0.34},
		{Easy: 1, Medium: 0, Hard: 0},
		{Easy: 0, Medium: 0, Hard: 0},
	}

	for _, dist := range dists {
		for _, count := range []int{1, 7, 13, 20, 33} {
			sel := exam.SelectBalanced(pool, count, dist, newRand(uint64(count)))
			want := dist.Quotas(count)
			got := question.DifficultySummary(sel.Questions)

			if got[question.DifficultyEasy] != want.Easy ||
				got[question.DifficultyMedium] != want.Medium ||
				got[question.DifficultyHard] != want.Hard {
				t.Errorf("dist %+v count %d: expected %+v, got %v", dist, count, want, got)
			}
			if len(sel.Questions) != count {
				t.Errorf("dist %+v: expected %d questions, got %d", dist, count, len(sel.Questions))
			}
		}
	}
}

func TestSelectBalanced_FallsBackToOtherDifficulties(t *testing.T) {
	pool := buildPool(2, 20, 20)

	sel := exam.SelectBalanced(pool, 20, exam.DefaultDistribution(), newRand(2))

	if len(sel.Questions) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(sel.Questions))
	}
	assertUnique(t, sel.Questions)

	if sel.Fallback != 4 {
		t.Errorf("expected 4 fallback questions, got %d", sel.Fallback)
	}
	if got := question.DifficultySummary(sel.Questions)[question.DifficultyEasy]; got != 2 {
		t.Errorf("expected the whole easy bucket (2), got %d", got)
	}
}

func TestSelectBalanced_PoolSmallerThanCount(t *testing.T) {
	pool := buildPool(1, 1, 1)

	sel := exam.SelectBalanced(pool, 20, exam.DefaultDistribution(), newRand(3))

	if len(sel.Questions) != 3 {
		t.Errorf("expected all 3 questions, got %d", len(sel.Questions))
	}
	if sel.Missing != 17 {
		t.Errorf("expected 17 missing, got %d", sel.Missing)
	}
}

func TestSelectBalanced_EmptyPool(t *testing.T) {
	sel := exam.SelectBalanced(nil, 20, exam.DefaultDistribution(), newRand(4))

	if sel.Questions == nil || len(sel.Questions) != 0 {
		t.Errorf("expected an empty non-nil list, got %v", sel.Questions)
	}
}

func TestSelectBalanced_ZeroCount(t *testing.T) {
	sel := exam.SelectBalanced(buildPool(5, 5, 5), 0, exam.DefaultDistribution(), newRand(5))

	if len(sel.Questions) != 0 {
		t.Errorf("expected no questions, got %d", len(sel.Questions))
	}
}

func TestSelectBalanced_IgnoresDuplicatePoolEntries(t *testing.T) {
	pool := buildPool(3, 3, 3)
	pool = append(pool, pool...)

	sel := exam.SelectBalanced(pool, 9, exam.DefaultDistribution(), newRand(6))

	if len(sel.Questions) != 9 {
		t.Fatalf("expected 9 questions, got %d", len(sel.Questions))
	}
	assertUnique(t, sel.Questions)
}

func TestSelectBalanced_LengthAndUniquenessProperties(t *testing.T) {
	rng := newRand(7)
	for i := 0; i < 200; i++ {
		pool := buildPool(rng.IntN(15), rng.IntN(15), rng.IntN(15))
		count := rng.IntN(30)

		sel := exam.SelectBalanced(pool, count, exam.DefaultDistribution(), rng)

		assertUnique(t, sel.Questions)
		if len(sel.Questions) > count {
			t.Fatalf("selected %d questions for count %d", len(sel.Questions), count)
		}
		if len(pool) >= count && len(sel.Questions) != count {
			t.Fatalf("pool of %d should fill %d questions, got %d", len(pool), count, len(sel.Questions))
		}
	}
}

func TestSelectBalanced_RandomizesOrder(t *testing.T) {
	pool := buildPool(6, 10, 4)
	rng := newRand(8)

	first := exam.SelectBalanced(pool, 20, exam.DefaultDistribution(), rng)

	// Statistically almost certain with 20 questions.
	for i := 0; i < 10; i++ {
		next := exam.SelectBalanced(pool, 20, exam.DefaultDistribution(), rng)
		if !sameOrder(first.Questions, next.Questions) {
			return
		}
	}
	t.Error("expected question order to vary across exams")
}

func TestSelectBalanced_DoesNotGroupByDifficulty(t *testing.T) {
	pool := buildPool(6, 10, 4)
	rng := newRand(9)

	for i := 0; i < 10; i++ {
		sel := exam.SelectBalanced(pool, 20, exam.DefaultDistribution(), rng)
		if !groupedByDifficulty(sel.Questions) {
			return
		}
	}
	t.Error("expected presentation order not to follow difficulty groups")
}

func TestSelectRandom(t *testing.T) {
	pool := buildPool(10, 10, 10)

	sel := exam.SelectRandom(pool, 12, newRand(10))
	if len(sel.Questions) != 12 {
		t.Errorf("expected 12 questions, got %d", len(sel.Questions))
	}
	assertUnique(t, sel.Questions)

	small := exam.SelectRandom(pool[:4], 12, newRand(11))
	if len(small.Questions) != 4 || small.Missing != 8 {
		t.Errorf("expected 4 questions and 8 missing, got %d and %d", len(small.Questions), small.Missing)
	}

	if empty := exam.SelectRandom(pool, 0, newRand(12)); len(empty.Questions) != 0 {
		t.Errorf("expected no questions for count 0, got %d", len(empty.Questions))
	}
}

func sameOrder(a, b []question.Question) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

func groupedByDifficulty(qs []question.Question) bool {
	rank := map[question.Difficulty]int{
		question.DifficultyEasy:   0,
		question.DifficultyMedium: 1,
		question.DifficultyHard:   2,
	}
	for i := 1; i < len(qs); i++ {
		if rank[qs[i].Difficulty] < rank[qs[i-1].Difficulty] {
			return false
		}
	}
	return true
}
