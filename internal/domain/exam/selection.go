package exam

import (
	"math/rand/v2"

	"github.com/remaimber-it/quizbank/internal/domain/question"
)

// Selection is the result of sampling an exam out of a candidate pool.
type Selection struct {
	Questions []question.Question
	Quotas    Quotas
	Fallback  int // questions taken from other difficulties to cover a short bucket
	Missing   int // questions short of the requested count after fallback
}

// SelectBalanced picks count questions from pool following the difficulty
// quotas of dist. Short buckets are taken whole and the gap is filled from
// the unused part of the pool regardless of difficulty. The result is in
// random order and never contains the same question twice.
func SelectBalanced(pool []question.Question, count int, dist Distribution, rng *rand.Rand) Selection {
	quotas := dist.Quotas(count)
	if count <= 0 {
		return Selection{Questions: []question.Question{}, Quotas: quotas}
	}

	pool = dedupe(pool)
	buckets := make(map[question.Difficulty][]question.Question, len(question.Difficulties))
	for _, q := range pool {
		buckets[q.Difficulty] = append(buckets[q.Difficulty], q)
	}

	selected := make([]question.Question, 0, count)
	used := make(map[int64]struct{}, count)
	for _, d := range question.Difficulties {
		for _, q := range sample(buckets[d], quotas.For(d), rng) {
			selected = append(selected, q)
			used[q.ID] = struct{}{}
		}
	}

	fallback := 0
	if len(selected) < count {
		available := make([]question.Question, 0, len(pool)-len(selected))
		for _, q := range pool {
			if _, ok := used[q.ID]; !ok {
				available = append(available, q)
			}
		}
		extra := sample(available, count-len(selected), rng)
		fallback = len(extra)
		selected = append(selected, extra...)
	}

	rng.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	if len(selected) > count {
		selected = selected[:count]
	}

	return Selection{
		Questions: selected,
		Quotas:    quotas,
		Fallback:  fallback,
		Missing:   count - len(selected),
	}
}

// SelectRandom picks count questions uniformly from pool with no
// difficulty constraint.
func SelectRandom(pool []question.Question, count int, rng *rand.Rand) Selection {
	if count <= 0 {
		return Selection{Questions: []question.Question{}}
	}
	picked := sample(dedupe(pool), count, rng)
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return Selection{
		Questions: picked,
		Missing:   count - len(picked),
	}
}

// sample draws k items without replacement. When k covers the whole input
// a copy of all items is returned.
func sample(items []question.Question, k int, rng *rand.Rand) []question.Question {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	out := make([]question.Question, len(items))
	copy(out, items)
	if k >= len(out) {
		return out
	}
	// partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:k]
}

func dedupe(pool []question.Question) []question.Question {
	seen := make(map[int64]struct{}, len(pool))
	out := make([]question.Question, 0, len(pool))
	for _, q := range pool {
		if _, ok := seen[q.ID]; ok {
			continue
		}
		seen[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out
}
