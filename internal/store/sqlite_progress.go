package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/remaimber-it/quizbank/internal/domain/progress"
)

// progressSchema creates the study_progress table. Counters are only
// checked for sign; a row with correct > answered is reported as malformed
// when read.
const progressSchema = `
CREATE TABLE IF NOT EXISTS study_progress (
    category_id INTEGER PRIMARY KEY,
    questions_answered INTEGER NOT NULL DEFAULT 0 CHECK (questions_answered >= 0),
    questions_correct INTEGER NOT NULL DEFAULT 0 CHECK (questions_correct >= 0),
    last_study_date TEXT,
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
);
`

func migrateForProgress(db *sql.DB) error {
	_, err := db.Exec(progressSchema)
	return err
}

// ============================================================================
// Study progress
// ============================================================================

func (w *sqliteWriter) UpsertProgress(ctx context.Context, categoryID int64, answered, correct int, at time.Time) error {
	_, err := w.q.ExecContext(ctx, `
		INSERT INTO study_progress (category_id, questions_answered, questions_correct, last_study_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(category_id) DO UPDATE SET
		    questions_answered = questions_answered + excluded.questions_answered,
		    questions_correct = questions_correct + excluded.questions_correct,
		    last_study_date = excluded.last_study_date`,
		categoryID, answered, correct, formatTime(at),
	)
	return err
}

func scanLastActivity(categoryID int64, raw sql.NullString) (*time.Time, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	t, err := parseTime(raw.String)
	if err != nil {
		return nil, fmt.Errorf("%w: progress of category %d: %v", ErrMalformedRecord, categoryID, err)
	}
	return &t, nil
}

func (s *SQLiteStore) GetProgress(ctx context.Context, categoryID int64) (*progress.StudyProgress, error) {
	var (
		p    progress.StudyProgress
		last sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT category_id, questions_answered, questions_correct, last_study_date
		FROM study_progress WHERE category_id = ?`, categoryID,
	).Scan(&p.CategoryID, &p.Answered, &p.Correct, &last)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.LastActivity, err = scanLastActivity(p.CategoryID, last); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *SQLiteStore) ListProgress(ctx context.Context) ([]progress.CategoryProgress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.category_id, p.questions_answered, p.questions_correct, p.last_study_date,
		    c.name, c.session_number
		FROM study_progress p
		JOIN categories c ON c.id = p.category_id
		ORDER BY c.session_number, c.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []progress.CategoryProgress{}
	for rows.Next() {
		var (
			cp   progress.CategoryProgress
			last sql.NullString
		)
		if err := rows.Scan(&cp.CategoryID, &cp.Answered, &cp.Correct, &last, &cp.CategoryName, &cp.SessionNumber); err != nil {
			return nil, err
		}
		if cp.LastActivity, err = scanLastActivity(cp.CategoryID, last); err != nil {
			return nil, err
		}
		list = append(list, cp)
	}
	return list, rows.Err()
}

func (s *SQLiteStore) SeedProgress(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO study_progress (category_id, questions_answered, questions_correct)
		SELECT id, 0, 0 FROM categories`,
	)
	return err
}

func (s *SQLiteStore) PurgeHistory(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM exam_answers",
		"DELETE FROM exams",
		"UPDATE study_progress SET questions_answered = 0, questions_correct = 0, last_study_date = NULL",
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
