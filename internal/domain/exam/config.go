package exam

import (
	"errors"
	"fmt"
	"math"

	"github.com/remaimber-it/quizbank/internal/domain/question"
)

var (
	ErrInvalidCount        = errors.New("exam question count must not be negative")
	ErrInvalidDistribution = errors.New("invalid difficulty distribution")
)

const (
	DefaultQuestionCount = 20
	DefaultPoolSize      = 1000
)

// Distribution is the target share of each difficulty in a balanced exam.
// Hard is informational: the hard quota is always the remainder after the
// easy and medium quotas are truncated.
type Distribution struct {
	Easy   float64 `json:"easy" yaml:"easy" mapstructure:"easy"`
	Medium float64 `json:"medium" yaml:"medium" mapstructure:"medium"`
	Hard   float64 `json:"hard" yaml:"hard" mapstructure:"hard"`
}

func DefaultDistribution() Distribution {
	return Distribution{Easy: 0.3, Medium: 0.5, Hard: 0.2}
}

func (d Distribution) Validate() error {
	for _, f := range []float64{d.Easy, d.Medium, d.Hard} {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: fractions must be finite and non-negative", ErrInvalidDistribution)
		}
	}
	if d.Easy+d.Medium > 1+1e-9 {
		return fmt.Errorf("%w: easy (%.2f) + medium (%.2f) exceeds 1", ErrInvalidDistribution, d.Easy, d.Medium)
	}
	return nil
}

// Quotas is the number of questions requested per difficulty.
type Quotas struct {
	Easy   int
	Medium int
	Hard   int
}

// Quotas truncates count*fraction for easy and medium and assigns the rest
// to hard, so the three quotas always sum to count.
func (d Distribution) Quotas(count int) Quotas {
	easy := int(float64(count) * d.Easy)
	medium := int(float64(count) * d.Medium)
	return Quotas{
		Easy:   easy,
		Medium: medium,
		Hard:   count - easy - medium,
	}
}

func (q Quotas) For(d question.Difficulty) int {
	switch d {
	case question.DifficultyEasy:
		return q.Easy
	case question.DifficultyMedium:
		return q.Medium
	case question.DifficultyHard:
		return q.Hard
	}
	return 0
}

func (q Quotas) Total() int {
	return q.Easy + q.Medium + q.Hard
}

// Config is the generation policy of an exam generator.
type Config struct {
	DefaultCount int          // used when a request does not specify a count
	PoolSize     int          // oversample size fetched from the bank
	Distribution Distribution // used when a request does not specify one
}

func DefaultConfig() Config {
	return Config{
		DefaultCount: DefaultQuestionCount,
		PoolSize:     DefaultPoolSize,
		Distribution: DefaultDistribution(),
	}
}

func (c Config) Validate() error {
	if c.DefaultCount < 0 {
		return ErrInvalidCount
	}
	if c.PoolSize <= 0 {
		return fmt.Errorf("exam pool size must be positive, got %d", c.PoolSize)
	}
	return c.Distribution.Validate()
}

// Request describes one exam to generate. Nil fields fall back to Config.
type Request struct {
	Count        *int
	Categories   []int64 // empty = all categories
	Distribution *Distribution
}

// Resolve applies the config defaults to a request and validates it.
func (c Config) Resolve(req Request) (int, Distribution, []int64, error) {
	count := c.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}
	if count < 0 {
		return 0, Distribution{}, nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	dist := c.Distribution
	if req.Distribution != nil {
		dist = *req.Distribution
	}
	if err := dist.Validate(); err != nil {
		return 0, Distribution{}, nil, err
	}

	return count, dist, NormalizeFilter(req.Categories), nil
}
