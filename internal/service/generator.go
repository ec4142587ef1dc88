package service

import (
	"context"
	"math/rand/v2"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/question"
	"github.com/remaimber-it/quizbank/internal/infrastructure/metrics"
	"github.com/remaimber-it/quizbank/internal/infrastructure/tracing"
	"github.com/remaimber-it/quizbank/internal/store"
)

const (
	modeBalanced = "balanced"
	modeRandom   = "random"
)

// ExamGenerator draws exams from the question bank.
type ExamGenerator struct {
	store   store.Reader
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu  sync.Mutex // guards cfg and rng
	cfg exam.Config
	rng *rand.Rand
}

// NewExamGenerator creates an ExamGenerator. A nil rng is replaced by a
// randomly seeded one.
func NewExamGenerator(s store.Reader, cfg exam.Config, rng *rand.Rand, logger *zap.Logger, m *metrics.Metrics) *ExamGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ExamGenerator{
		store:   s,
		logger:  logger,
		metrics: m,
		cfg:     cfg,
		rng:     rng,
	}
}

// SetConfig swaps the generation policy for subsequent exams.
func (g *ExamGenerator) SetConfig(cfg exam.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	g.cfg = cfg
	g.mu.Unlock()
	g.logger.Info("exam policy updated",
		zap.Int("default_count", cfg.DefaultCount),
		zap.Int("pool_size", cfg.PoolSize),
		zap.Float64("easy", cfg.Distribution.Easy),
		zap.Float64("medium", cfg.Distribution.Medium),
	)
	return nil
}

func (g *ExamGenerator) Config() exam.Config {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

// Generate builds a balanced exam: difficulty quotas are honored where the
// bank allows and any shortfall is filled from other difficulties.
func (g *ExamGenerator) Generate(ctx context.Context, req exam.Request) ([]question.Question, error) {
	ctx, span := tracing.Tracer().Start(ctx, "ExamGenerator.Generate")
	defer span.End()

	cfg := g.Config()
	count, dist, categories, err := cfg.Resolve(req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("exam.count", count), attribute.Int("exam.categories", len(categories)))
	if count == 0 {
		return []question.Question{}, nil
	}

	// the pool never holds fewer candidates than the exam needs
	pool, err := g.store.RandomQuestions(ctx, max(cfg.PoolSize, count), categories)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	g.mu.Lock()
	sel := exam.SelectBalanced(pool, count, dist, g.rng)
	g.mu.Unlock()

	g.report(modeBalanced, count, len(pool), sel)
	return sel.Questions, nil
}

// GenerateRandom builds an exam by uniform sampling, ignoring difficulty.
func (g *ExamGenerator) GenerateRandom(ctx context.Context, req exam.Request) ([]question.Question, error) {
	ctx, span := tracing.Tracer().Start(ctx, "ExamGenerator.GenerateRandom")
	defer span.End()

	count, _, categories, err := g.Config().Resolve(req)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []question.Question{}, nil
	}

	pool, err := g.store.RandomQuestions(ctx, count, categories)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	g.mu.Lock()
	sel := exam.SelectRandom(pool, count, g.rng)
	g.mu.Unlock()

	g.report(modeRandom, count, len(pool), sel)
	return sel.Questions, nil
}

func (g *ExamGenerator) report(mode string, count, pool int, sel exam.Selection) {
	g.metrics.ObserveGenerated(mode, sel.Fallback, sel.Missing)
	if sel.Fallback > 0 || sel.Missing > 0 {
		g.logger.Warn("exam selection short of target",
			zap.String("mode", mode),
			zap.Int("requested", count),
			zap.Int("pool", pool),
			zap.Int("selected", len(sel.Questions)),
			zap.Int("fallback", sel.Fallback),
			zap.Int("missing", sel.Missing),
		)
		return
	}
	g.logger.Debug("exam generated",
		zap.String("mode", mode),
		zap.Int("questions", len(sel.Questions)),
	)
}
