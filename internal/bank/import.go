package bank

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/store"
)

// Summary reports what an import changed.
type Summary struct {
	Categories int `json:"categories" yaml:"categories"`
	Questions  int `json:"questions_created" yaml:"questions_created"`
	Skipped    int `json:"questions_skipped" yaml:"questions_skipped"`
}

// Loader imports catalogs into a store and exports the store back.
type Loader struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewLoader(s store.Store, logger *zap.Logger) *Loader {
	return &Loader{store: s, logger: logger, now: time.Now}
}

func (l *Loader) WithClock(now func() time.Time) *Loader {
	l.now = now
	return l
}

// Import validates the whole catalog before writing anything. Categories
// are matched by name and updated in place; a question whose text already
// exists in its category is skipped. Every category ends up with a
// progress row.
func (l *Loader) Import(ctx context.Context, c *Catalog) (Summary, error) {
	var sum Summary
	if err := c.Validate(); err != nil {
		return sum, err
	}

	for _, ce := range c.Categories {
		cat := ce.category()
		if err := l.store.SaveCategory(ctx, cat); err != nil {
			return sum, fmt.Errorf("save category %q: %w", cat.Name, err)
		}
		sum.Categories++

		existing, err := l.store.QuestionsByCategory(ctx, cat.ID)
		if err != nil {
			return sum, fmt.Errorf("load questions of %q: %w", cat.Name, err)
		}
		known := make(map[string]bool, len(existing))
		for _, q := range existing {
			known[q.Text] = true
		}

		for _, qe := range ce.Questions {
			q := qe.question(cat.ID)
			if known[q.Text] {
				sum.Skipped++
				continue
			}
			if err := l.store.SaveQuestion(ctx, &q); err != nil {
				return sum, fmt.Errorf("save question in %q: %w", cat.Name, err)
			}
			known[q.Text] = true
			sum.Questions++
		}
		l.logger.Debug("category imported", zap.String("category", cat.Name), zap.Int64("category_id", cat.ID))
	}

	if err := l.store.SeedProgress(ctx); err != nil {
		return sum, fmt.Errorf("seed progress: %w", err)
	}
	l.logger.Info("catalog imported",
		zap.Int("categories", sum.Categories),
		zap.Int("questions", sum.Questions),
		zap.Int("skipped", sum.Skipped),
	)
	return sum, nil
}

// Export reads the whole bank, categories in session order.
func (l *Loader) Export(ctx context.Context) (*Catalog, error) {
	cats, err := l.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	c := &Catalog{
		Version:    Version,
		ExportedAt: l.now().UTC().Format(time.RFC3339),
		Categories: make([]CategoryEntry, 0, len(cats)),
	}
	for _, cat := range cats {
		qs, err := l.store.QuestionsByCategory(ctx, cat.ID)
		if err != nil {
			return nil, fmt.Errorf("load questions of %q: %w", cat.Name, err)
		}
		entry := CategoryEntry{
			Name:          cat.Name,
			Description:   cat.Description,
			SessionNumber: cat.SessionNumber,
			Questions:     make([]QuestionEntry, len(qs)),
		}
		for i, q := range qs {
			entry.Questions[i] = entryFromQuestion(q)
		}
		c.Categories = append(c.Categories, entry)
	}
	return c, nil
}
