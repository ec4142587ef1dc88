package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/remaimber-it/quizbank/internal/domain/category"
	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/question"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    session_number INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category_id INTEGER NOT NULL,
    question_type TEXT NOT NULL CHECK (question_type IN ('conceptual', 'syntax')),
    question_text TEXT NOT NULL,
    option_a TEXT NOT NULL,
    option_b TEXT NOT NULL,
    option_c TEXT NOT NULL,
    option_d TEXT NOT NULL,
    option_e TEXT NOT NULL,
    correct_answer TEXT NOT NULL CHECK (correct_answer IN ('a', 'b', 'c', 'd', 'e')),
    explanation TEXT NOT NULL DEFAULT '',
    dataset_reference TEXT,
    difficulty TEXT NOT NULL CHECK (difficulty IN ('easy', 'medium', 'hard')),
    FOREIGN KEY (category_id) REFERENCES categories(id)
);

CREATE INDEX IF NOT EXISTS idx_questions_category ON questions(category_id);

CREATE TABLE IF NOT EXISTS exams (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    total_questions INTEGER NOT NULL CHECK (total_questions >= 0),
    correct_answers INTEGER,
    score REAL,
    categories_filter TEXT NOT NULL DEFAULT '[]',
    time_spent_seconds INTEGER,
    CHECK (correct_answers IS NULL OR (correct_answers >= 0 AND correct_answers <= total_questions)),
    CHECK (time_spent_seconds IS NULL OR time_spent_seconds >= 0)
);

CREATE TABLE IF NOT EXISTS exam_answers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    exam_id INTEGER NOT NULL,
    question_id INTEGER NOT NULL,
    user_answer TEXT NOT NULL CHECK (user_answer IN ('', 'a', 'b', 'c', 'd', 'e')),
    is_correct INTEGER NOT NULL CHECK (is_correct IN (0, 1)),
    time_spent_seconds INTEGER NOT NULL DEFAULT 0 CHECK (time_spent_seconds >= 0),
    FOREIGN KEY (exam_id) REFERENCES exams(id) ON DELETE CASCADE,
    FOREIGN KEY (question_id) REFERENCES questions(id)
);

CREATE INDEX IF NOT EXISTS idx_exam_answers_exam ON exam_answers(exam_id);
`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SQLiteStore struct {
	sqliteWriter
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (and creates if needed) the database at dbPath. The pool
// is limited to one connection, so writers queue on the busy timeout
// instead of failing with SQLITE_BUSY.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if err := migrateForProgress(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply progress schema: %w", err)
	}

	return &SQLiteStore{
		sqliteWriter: sqliteWriter{q: db},
		db:           db,
	}, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(Writer) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&sqliteWriter{q: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

// ============================================================================
// Categories
// ============================================================================

func (s *SQLiteStore) SaveCategory(ctx context.Context, c *category.Category) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, session_number) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
		    description = excluded.description,
		    session_number = excluded.session_number
		RETURNING id`,
		c.Name, c.Description, c.SessionNumber,
	).Scan(&c.ID)
	return err
}

func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	var c category.Category
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, session_number FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.SessionNumber)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*category.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, session_number FROM categories ORDER BY session_number, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.SessionNumber); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// ============================================================================
// Questions
// ============================================================================

const questionColumns = `id, category_id, question_type, question_text,
    option_a, option_b, option_c, option_d, option_e,
    correct_answer, explanation, dataset_reference, difficulty`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(r rowScanner) (question.Question, error) {
	var (
		q       question.Question
		qType   string
		correct string
		diff    string
		ref     sql.NullString
	)
	err := r.Scan(&q.ID, &q.CategoryID, &qType, &q.Text,
		&q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3], &q.Options[4],
		&correct, &q.Explanation, &ref, &diff)
	if err != nil {
		return question.Question{}, err
	}
	q.Type = question.Type(qType)
	q.Correct = question.Label(correct)
	q.Difficulty = question.Difficulty(diff)
	if ref.Valid {
		q.DatasetReference = &ref.String
	}
	return q, nil
}

func collectQuestions(rows *sql.Rows) ([]question.Question, error) {
	defer rows.Close()
	questions := []question.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// inClause renders "col IN (?, ?, ...)" and its arguments.
func inClause(col string, ids []int64) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return col + " IN (" + strings.Join(marks, ", ") + ")", args
}

func (s *SQLiteStore) SaveQuestion(ctx context.Context, q *question.Question) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (category_id, question_type, question_text,
		    option_a, option_b, option_c, option_d, option_e,
		    correct_answer, explanation, dataset_reference, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.CategoryID, string(q.Type), q.Text,
		q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.Options[4],
		string(q.Correct), q.Explanation, q.DatasetReference, string(q.Difficulty),
	)
	if err != nil {
		return err
	}
	q.ID, err = res.LastInsertId()
	return err
}

func (s *SQLiteStore) RandomQuestions(ctx context.Context, limit int, categoryIDs []int64) ([]question.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions"
	var args []any
	if len(categoryIDs) > 0 {
		clause, inArgs := inClause("category_id", categoryIDs)
		query += " WHERE " + clause
		args = inArgs
	}
	query += " ORDER BY RANDOM() LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

func (s *SQLiteStore) QuestionByID(ctx context.Context, id int64) (*question.Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *SQLiteStore) QuestionsByCategory(ctx context.Context, categoryID int64) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE category_id = ? ORDER BY id", categoryID,
	)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

func (s *SQLiteStore) CountQuestions(ctx context.Context, categoryIDs ...int64) (int, error) {
	query := "SELECT COUNT(*) FROM questions"
	var args []any
	if len(categoryIDs) > 0 {
		clause, inArgs := inClause("category_id", categoryIDs)
		query += " WHERE " + clause
		args = inArgs
	}
	var n int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

// ============================================================================
// Exams
// ============================================================================

// sqliteWriter implements Writer on top of either the database or an open
// transaction.
type sqliteWriter struct {
	q querier
}

func (w *sqliteWriter) CreateExam(ctx context.Context, total int, filter []int64, at time.Time) (int64, error) {
	encoded, err := exam.EncodeFilter(filter)
	if err != nil {
		return 0, err
	}
	res, err := w.q.ExecContext(ctx,
		"INSERT INTO exams (created_at, total_questions, categories_filter) VALUES (?, ?, ?)",
		formatTime(at), total, encoded,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (w *sqliteWriter) FinishExam(ctx context.Context, id int64, correct, elapsedSeconds int) error {
	res, err := w.q.ExecContext(ctx, `
		UPDATE exams SET
		    correct_answers = ?,
		    score = CASE WHEN total_questions = 0 THEN 0 ELSE 100.0 * ? / total_questions END,
		    time_spent_seconds = ?
		WHERE id = ? AND correct_answers IS NULL`,
		correct, correct, elapsedSeconds, id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists int
	err = w.q.QueryRowContext(ctx, "SELECT 1 FROM exams WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrExamNotFound
	}
	if err != nil {
		return err
	}
	return ErrExamFinished
}

func (w *sqliteWriter) CreateExamAnswer(ctx context.Context, a exam.Answer) (int64, error) {
	res, err := w.q.ExecContext(ctx, `
		INSERT INTO exam_answers (exam_id, question_id, user_answer, is_correct, time_spent_seconds)
		VALUES (?, ?, ?, ?, ?)`,
		a.ExamID, a.QuestionID, string(a.Submitted), a.IsCorrect, a.TimeSpentSeconds,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const examColumns = "id, created_at, total_questions, correct_answers, score, categories_filter, time_spent_seconds"

func scanExam(r rowScanner) (*exam.Exam, error) {
	var (
		e         exam.Exam
		createdAt string
		correct   sql.NullInt64
		score     sql.NullFloat64
		filter    string
		elapsed   sql.NullInt64
	)
	if err := r.Scan(&e.ID, &createdAt, &e.TotalQuestions, &correct, &score, &filter, &elapsed); err != nil {
		return nil, err
	}

	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("%w: exam %d created_at: %v", ErrMalformedRecord, e.ID, err)
	}
	if e.CategoryFilter, err = exam.DecodeFilter(filter); err != nil {
		return nil, fmt.Errorf("%w: exam %d: %w", ErrMalformedRecord, e.ID, err)
	}
	if correct.Valid {
		c := int(correct.Int64)
		e.CorrectAnswers = &c
	}
	if score.Valid {
		e.Score = &score.Float64
	}
	if elapsed.Valid {
		s := int(elapsed.Int64)
		e.ElapsedSeconds = &s
	}
	return &e, nil
}

func (s *SQLiteStore) GetExam(ctx context.Context, id int64) (*exam.Exam, error) {
	e, err := scanExam(s.db.QueryRowContext(ctx, "SELECT "+examColumns+" FROM exams WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExamNotFound
	}
	return e, err
}

func (s *SQLiteStore) ListExams(ctx context.Context, limit int) ([]*exam.Exam, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+examColumns+" FROM exams ORDER BY created_at DESC, id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exams := []*exam.Exam{}
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

func (s *SQLiteStore) ExamAnswers(ctx context.Context, examID int64) ([]AnsweredQuestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.exam_id, a.user_answer, a.is_correct, a.time_spent_seconds,
		    q.id, q.category_id, q.question_type, q.question_text,
		    q.option_a, q.option_b, q.option_c, q.option_d, q.option_e,
		    q.correct_answer, q.explanation, q.dataset_reference, q.difficulty
		FROM exam_answers a
		JOIN questions q ON q.id = a.question_id
		WHERE a.exam_id = ?
		ORDER BY a.id`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := []AnsweredQuestion{}
	for rows.Next() {
		var (
			aq        AnsweredQuestion
			submitted string
			qType     string
			correct   string
			diff      string
			ref       sql.NullString
		)
		q := &aq.Question
		err := rows.Scan(&aq.ID, &aq.ExamID, &submitted, &aq.IsCorrect, &aq.TimeSpentSeconds,
			&q.ID, &q.CategoryID, &qType, &q.Text,
			&q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3], &q.Options[4],
			&correct, &q.Explanation, &ref, &diff)
		if err != nil {
			return nil, err
		}
		aq.QuestionID = q.ID
		aq.Submitted = question.Label(submitted)
		q.Type = question.Type(qType)
		q.Correct = question.Label(correct)
		q.Difficulty = question.Difficulty(diff)
		if ref.Valid {
			q.DatasetReference = &ref.String
		}
		answers = append(answers, aq)
	}
	return answers, rows.Err()
}

func (s *SQLiteStore) ExamStats(ctx context.Context) (exam.Stats, error) {
	var st exam.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MAX(score), 0)
		FROM exams WHERE correct_answers IS NOT NULL`,
	).Scan(&st.Finished, &st.AverageScore, &st.BestScore)
	return st, err
}

// ============================================================================
// Time encoding
// ============================================================================

// timeLayout is RFC 3339 with a fixed-width fraction so stored values sort
// chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
