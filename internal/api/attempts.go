package api

import (
	"sync"
	"time"

	"github.com/remaimber-it/quizbank/internal/id"
)

// Attempt is a generated exam waiting for its submission.
type Attempt struct {
	QuestionIDs    []int64
	CategoryFilter []int64
	ExpiresAt      time.Time
}

// Attempts keeps generated exams in memory until they are submitted or
// expire. A token can be redeemed once.
type Attempts struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	pending map[string]Attempt
}

func NewAttempts(ttl time.Duration) *Attempts {
	return &Attempts{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]Attempt),
	}
}

func (a *Attempts) WithClock(now func() time.Time) *Attempts {
	a.now = now
	return a
}

// Put stores the attempt under a fresh token. Expired attempts are swept
// on the way.
func (a *Attempts) Put(questionIDs, filter []int64) (string, Attempt) {
	now := a.now()
	at := Attempt{
		QuestionIDs:    questionIDs,
		CategoryFilter: filter,
		ExpiresAt:      now.Add(a.ttl),
	}
	token := id.GenerateToken()

	a.mu.Lock()
	defer a.mu.Unlock()
	for t, p := range a.pending {
		if !now.Before(p.ExpiresAt) {
			delete(a.pending, t)
		}
	}
	a.pending[token] = at
	return token, at
}

// Take removes and returns the attempt. It reports false for unknown,
// already redeemed and expired tokens.
func (a *Attempts) Take(token string) (Attempt, bool) {
	if !id.ValidToken(token) {
		return Attempt{}, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	at, ok := a.pending[token]
	if !ok {
		return Attempt{}, false
	}
	delete(a.pending, token)
	if !a.now().Before(at.ExpiresAt) {
		return Attempt{}, false
	}
	return at, true
}

// Restore puts back an attempt whose submission failed before anything
// was recorded, so the learner can retry.
func (a *Attempts) Restore(token string, at Attempt) {
	a.mu.Lock()
	a.pending[token] = at
	a.mu.Unlock()
}

func (a *Attempts) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}
