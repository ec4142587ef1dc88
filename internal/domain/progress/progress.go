package progress

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrInvalidDelta = errors.New("invalid progress delta")
	ErrMalformed    = errors.New("malformed progress record")
)

// StudyProgress is the running tally of one category. Rows only ever grow:
// every exam adds its answered/correct counts on top of the stored ones.
type StudyProgress struct {
	CategoryID   int64
	Answered     int
	Correct      int
	LastActivity *time.Time // nil until the first answer
}

func (p *StudyProgress) Validate() error {
	if p.Answered < 0 || p.Correct < 0 || p.Correct > p.Answered {
		return fmt.Errorf("%w: category %d has %d correct of %d answered",
			ErrMalformed, p.CategoryID, p.Correct, p.Answered)
	}
	return nil
}

// Accuracy is 100*correct/answered, 0 when nothing was answered yet.
func Accuracy(correct, answered int) float64 {
	if answered == 0 {
		return 0
	}
	return 100 * float64(correct) / float64(answered)
}

// Round2 rounds to two decimals for reporting.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Delta is the contribution of one exam to one category.
type Delta struct {
	CategoryID int64
	Answered   int
	Correct    int
}

func (d Delta) Validate() error {
	if d.Answered < 0 || d.Correct < 0 || d.Correct > d.Answered {
		return fmt.Errorf("%w: category %d answered=%d correct=%d",
			ErrInvalidDelta, d.CategoryID, d.Answered, d.Correct)
	}
	return nil
}

// Tally accumulates deltas per category, keeping categories in the order
// they were first seen.
type Tally struct {
	index map[int64]int
	items []Delta
}

func NewTally() *Tally {
	return &Tally{index: make(map[int64]int)}
}

func (t *Tally) Add(categoryID int64, correct bool) {
	i, ok := t.index[categoryID]
	if !ok {
		i = len(t.items)
		t.index[categoryID] = i
		t.items = append(t.items, Delta{CategoryID: categoryID})
	}
	t.items[i].Answered++
	if correct {
		t.items[i].Correct++
	}
}

// Deltas returns one delta per distinct category in first-seen order.
func (t *Tally) Deltas() []Delta {
	out := make([]Delta, len(t.items))
	copy(out, t.items)
	return out
}
