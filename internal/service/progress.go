package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/domain/category"
	"github.com/remaimber-it/quizbank/internal/domain/progress"
	"github.com/remaimber-it/quizbank/internal/infrastructure/metrics"
	"github.com/remaimber-it/quizbank/internal/store"
)

// ProgressService maintains and reports the per-category study counters.
type ProgressService struct {
	store   store.Store
	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewProgressService creates a ProgressService.
func NewProgressService(s store.Store, logger *zap.Logger, m *metrics.Metrics) *ProgressService {
	return &ProgressService{
		store:   s,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for last-activity timestamps.
func (ps *ProgressService) WithClock(now func() time.Time) *ProgressService {
	ps.now = now
	return ps
}

// applyDelta validates d and adds it to the category row through w.
func applyDelta(ctx context.Context, w store.Writer, d progress.Delta, at time.Time) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := w.UpsertProgress(ctx, d.CategoryID, d.Answered, d.Correct, at); err != nil {
		return fmt.Errorf("update progress of category %d: %w", d.CategoryID, err)
	}
	return nil
}

// RecordCategoryOutcome adds one outcome to a category's counters,
// creating the row on first use.
func (ps *ProgressService) RecordCategoryOutcome(ctx context.Context, categoryID int64, answered, correct int) error {
	d := progress.Delta{CategoryID: categoryID, Answered: answered, Correct: correct}
	if err := d.Validate(); err != nil {
		return err
	}
	if _, err := ps.store.GetCategory(ctx, categoryID); err != nil {
		return err
	}
	if err := applyDelta(ctx, ps.store, d, ps.now()); err != nil {
		return err
	}
	ps.metrics.ObserveProgress(1)
	return nil
}

// Snapshot reports one category. A category nobody studied yet has a
// zero-filled snapshot.
func (ps *ProgressService) Snapshot(ctx context.Context, categoryID int64) (progress.Snapshot, error) {
	cat, err := ps.store.GetCategory(ctx, categoryID)
	if err != nil {
		return progress.Snapshot{}, err
	}

	p, err := ps.store.GetProgress(ctx, categoryID)
	if errors.Is(err, store.ErrNotFound) {
		p = nil
	} else if err != nil {
		return progress.Snapshot{}, err
	}
	return ps.snapshot(ctx, cat, p)
}

// SnapshotAll reports every category ordered by session number.
func (ps *ProgressService) SnapshotAll(ctx context.Context) ([]progress.Snapshot, error) {
	cats, err := ps.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := ps.store.ListProgress(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[int64]*progress.StudyProgress, len(rows))
	for i := range rows {
		byCategory[rows[i].CategoryID] = &rows[i].StudyProgress
	}

	snapshots := make([]progress.Snapshot, 0, len(cats))
	for _, c := range cats {
		s, err := ps.snapshot(ctx, c, byCategory[c.ID])
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}

func (ps *ProgressService) snapshot(ctx context.Context, c *category.Category, p *progress.StudyProgress) (progress.Snapshot, error) {
	s, err := progress.NewSnapshot(c.ID, c.Name, c.SessionNumber, p)
	if err != nil {
		ps.logger.Error("malformed progress row", zap.Int64("category_id", c.ID), zap.Error(err))
		return progress.Snapshot{}, err
	}
	s.Accuracy = progress.Round2(s.Accuracy)
	if s.TotalQuestions, err = ps.store.CountQuestions(ctx, c.ID); err != nil {
		return progress.Snapshot{}, err
	}
	return s, nil
}

// Overview aggregates the exam history and every category counter.
func (ps *ProgressService) Overview(ctx context.Context) (progress.Overview, error) {
	stats, err := ps.store.ExamStats(ctx)
	if err != nil {
		return progress.Overview{}, err
	}
	snapshots, err := ps.SnapshotAll(ctx)
	if err != nil {
		return progress.Overview{}, err
	}
	return progress.NewOverview(stats.Finished, stats.AverageScore, stats.BestScore, snapshots), nil
}

// SeedAll creates a zero row for every category that has none.
func (ps *ProgressService) SeedAll(ctx context.Context) error {
	if err := ps.store.SeedProgress(ctx); err != nil {
		return err
	}
	ps.logger.Info("progress rows seeded")
	return nil
}

// Reset deletes the exam history and zeroes every counter. The question
// bank is left untouched.
func (ps *ProgressService) Reset(ctx context.Context) error {
	if err := ps.store.PurgeHistory(ctx); err != nil {
		return err
	}
	ps.logger.Warn("exam history purged and progress reset")
	return nil
}
