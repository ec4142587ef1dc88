package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/remaimber-it/quizbank/internal/domain/category"
	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/progress"
	"github.com/remaimber-it/quizbank/internal/domain/question"
)

// ============================================================================
// Models
// ============================================================================

type categoryModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"size:191;uniqueIndex;not null"`
	Description   string `gorm:"type:text"`
	SessionNumber int    `gorm:"not null;index"`
}

func (categoryModel) TableName() string { return "categories" }

type questionModel struct {
	ID               int64   `gorm:"primaryKey;autoIncrement"`
	CategoryID       int64   `gorm:"not null;index"`
	QuestionType     string  `gorm:"size:16;not null"`
	QuestionText     string  `gorm:"type:text;not null"`
	OptionA          string  `gorm:"type:text;not null"`
	OptionB          string  `gorm:"type:text;not null"`
	OptionC          string  `gorm:"type:text;not null"`
	OptionD          string  `gorm:"type:text;not null"`
	OptionE          string  `gorm:"type:text;not null"`
	CorrectAnswer    string  `gorm:"size:1;not null"`
	Explanation      string  `gorm:"type:text"`
	DatasetReference *string `gorm:"size:255"`
	Difficulty       string  `gorm:"size:8;not null"`
}

func (questionModel) TableName() string { return "questions" }

func newQuestionModel(q *question.Question) questionModel {
	return questionModel{
		CategoryID:       q.CategoryID,
		QuestionType:     string(q.Type),
		QuestionText:     q.Text,
		OptionA:          q.Options[0],
		OptionB:          q.Options[1],
		OptionC:          q.Options[2],
		OptionD:          q.Options[3],
		OptionE:          q.Options[4],
		CorrectAnswer:    string(q.Correct),
		Explanation:      q.Explanation,
		DatasetReference: q.DatasetReference,
		Difficulty:       string(q.Difficulty),
	}
}

func (m questionModel) toDomain() question.Question {
	return question.Question{
		ID:               m.ID,
		CategoryID:       m.CategoryID,
		Type:             question.Type(m.QuestionType),
		Text:             m.QuestionText,
		Options:          [5]string{m.OptionA, m.OptionB, m.OptionC, m.OptionD, m.OptionE},
		Correct:          question.Label(m.CorrectAnswer),
		Explanation:      m.Explanation,
		DatasetReference: m.DatasetReference,
		Difficulty:       question.Difficulty(m.Difficulty),
	}
}

type examModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt        time.Time `gorm:"not null;index"`
	TotalQuestions   int       `gorm:"not null"`
	CorrectAnswers   *int
	Score            *float64
	CategoriesFilter string `gorm:"size:1024;not null"`
	TimeSpentSeconds *int
}

func (examModel) TableName() string { return "exams" }

func (m examModel) toDomain() (*exam.Exam, error) {
	filter, err := exam.DecodeFilter(m.CategoriesFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: exam %d: %w", ErrMalformedRecord, m.ID, err)
	}
	return &exam.Exam{
		ID:             m.ID,
		CreatedAt:      m.CreatedAt,
		TotalQuestions: m.TotalQuestions,
		CorrectAnswers: m.CorrectAnswers,
		Score:          m.Score,
		CategoryFilter: filter,
		ElapsedSeconds: m.TimeSpentSeconds,
	}, nil
}

type examAnswerModel struct {
	ID               int64  `gorm:"primaryKey;autoIncrement"`
	ExamID           int64  `gorm:"not null;index"`
	QuestionID       int64  `gorm:"not null"`
	UserAnswer       string `gorm:"size:1;not null"`
	IsCorrect        bool   `gorm:"not null"`
	TimeSpentSeconds int    `gorm:"not null"`
}

func (examAnswerModel) TableName() string { return "exam_answers" }

type progressModel struct {
	CategoryID        int64 `gorm:"primaryKey;autoIncrement:false"`
	QuestionsAnswered int   `gorm:"not null"`
	QuestionsCorrect  int   `gorm:"not null"`
	LastStudyDate     *time.Time
}

func (progressModel) TableName() string { return "study_progress" }

// ============================================================================
// Store
// ============================================================================

// GormStore implements Store with gorm. MySQL is the deployment target;
// SQLite dialectors work as well. NewMySQL is the deployment entry point.
type GormStore struct {
	gormWriter
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewMySQL(dsn string) (*GormStore, error) {
	return NewGorm(mysql.Open(dsn), gormlogger.Default.LogMode(gormlogger.Warn))
}

func NewGorm(dialector gorm.Dialector, log gormlogger.Interface) (*GormStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: log})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&categoryModel{},
		&questionModel{},
		&examModel{},
		&examAnswerModel{},
		&progressModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{gormWriter: gormWriter{db: db}, db: db}, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(Writer) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormWriter{db: tx})
	})
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// ============================================================================
// Categories and questions
// ============================================================================

func (s *GormStore) SaveCategory(ctx context.Context, c *category.Category) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := categoryModel{Name: c.Name, Description: c.Description, SessionNumber: c.SessionNumber}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "session_number"}),
		}).Create(&m).Error
		if err != nil {
			return err
		}
		// the insert id is not reported when the row was updated
		var saved categoryModel
		if err := tx.Where("name = ?", c.Name).First(&saved).Error; err != nil {
			return err
		}
		c.ID = saved.ID
		return nil
	})
}

func (s *GormStore) GetCategory(ctx context.Context, id int64) (*category.Category, error) {
	var m categoryModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	return &category.Category{ID: m.ID, Name: m.Name, Description: m.Description, SessionNumber: m.SessionNumber}, nil
}

func (s *GormStore) ListCategories(ctx context.Context) ([]*category.Category, error) {
	var models []categoryModel
	if err := s.db.WithContext(ctx).Order("session_number, id").Find(&models).Error; err != nil {
		return nil, err
	}
	categories := make([]*category.Category, len(models))
	for i, m := range models {
		categories[i] = &category.Category{ID: m.ID, Name: m.Name, Description: m.Description, SessionNumber: m.SessionNumber}
	}
	return categories, nil
}

func (s *GormStore) SaveQuestion(ctx context.Context, q *question.Question) error {
	m := newQuestionModel(q)
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	q.ID = m.ID
	return nil
}

func toQuestions(models []questionModel) []question.Question {
	questions := make([]question.Question, len(models))
	for i, m := range models {
		questions[i] = m.toDomain()
	}
	return questions
}

func (s *GormStore) RandomQuestions(ctx context.Context, limit int, categoryIDs []int64) ([]question.Question, error) {
	var models []questionModel
	q := s.db.WithContext(ctx).Model(&questionModel{})
	if len(categoryIDs) > 0 {
		q = q.Where("category_id IN ?", categoryIDs)
	}
	if err := q.Order(s.randomFunc()).Limit(limit).Find(&models).Error; err != nil {
		return nil, err
	}
	return toQuestions(models), nil
}

// randomFunc is the dialect's random ordering function.
func (s *GormStore) randomFunc() string {
	if s.db.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}

func (s *GormStore) QuestionByID(ctx context.Context, id int64) (*question.Question, error) {
	var m questionModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	q := m.toDomain()
	return &q, nil
}

func (s *GormStore) QuestionsByCategory(ctx context.Context, categoryID int64) ([]question.Question, error) {
	var models []questionModel
	err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toQuestions(models), nil
}

func (s *GormStore) CountQuestions(ctx context.Context, categoryIDs ...int64) (int, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&questionModel{})
	if len(categoryIDs) > 0 {
		q = q.Where("category_id IN ?", categoryIDs)
	}
	err := q.Count(&n).Error
	return int(n), err
}

// ============================================================================
// Exams
// ============================================================================

type gormWriter struct {
	db *gorm.DB
}

func (w *gormWriter) CreateExam(ctx context.Context, total int, filter []int64, at time.Time) (int64, error) {
	encoded, err := exam.EncodeFilter(filter)
	if err != nil {
		return 0, err
	}
	m := examModel{CreatedAt: at.UTC(), TotalQuestions: total, CategoriesFilter: encoded}
	if err := w.db.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (w *gormWriter) FinishExam(ctx context.Context, id int64, correct, elapsedSeconds int) error {
	db := w.db.WithContext(ctx)
	res := db.Model(&examModel{}).
		Where("id = ? AND correct_answers IS NULL", id).
		Updates(map[string]any{
			"correct_answers":    correct,
			"score":              gorm.Expr("CASE WHEN total_questions = 0 THEN 0 ELSE 100.0 * ? / total_questions END", correct),
			"time_spent_seconds": elapsedSeconds,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var n int64
	if err := db.Model(&examModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrExamNotFound
	}
	return ErrExamFinished
}

func (w *gormWriter) CreateExamAnswer(ctx context.Context, a exam.Answer) (int64, error) {
	m := examAnswerModel{
		ExamID:           a.ExamID,
		QuestionID:       a.QuestionID,
		UserAnswer:       string(a.Submitted),
		IsCorrect:        a.IsCorrect,
		TimeSpentSeconds: a.TimeSpentSeconds,
	}
	if err := w.db.WithContext(ctx).Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

func (w *gormWriter) UpsertProgress(ctx context.Context, categoryID int64, answered, correct int, at time.Time) error {
	at = at.UTC()
	m := progressModel{
		CategoryID:        categoryID,
		QuestionsAnswered: answered,
		QuestionsCorrect:  correct,
		LastStudyDate:     &at,
	}
	return w.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "category_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"questions_answered": gorm.Expr("questions_answered + ?", answered),
			"questions_correct":  gorm.Expr("questions_correct + ?", correct),
			"last_study_date":    at,
		}),
	}).Create(&m).Error
}

func (s *GormStore) GetExam(ctx context.Context, id int64) (*exam.Exam, error) {
	var m examModel
	if err := s.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, notFound(err, ErrExamNotFound)
	}
	return m.toDomain()
}

func (s *GormStore) ListExams(ctx context.Context, limit int) ([]*exam.Exam, error) {
	var models []examModel
	q := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	exams := make([]*exam.Exam, 0, len(models))
	for _, m := range models {
		e, err := m.toDomain()
		if err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, nil
}

func (s *GormStore) ExamAnswers(ctx context.Context, examID int64) ([]AnsweredQuestion, error) {
	db := s.db.WithContext(ctx)

	var answers []examAnswerModel
	if err := db.Where("exam_id = ?", examID).Order("id").Find(&answers).Error; err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return []AnsweredQuestion{}, nil
	}

	ids := make([]int64, len(answers))
	for i, a := range answers {
		ids[i] = a.QuestionID
	}
	var questions []questionModel
	if err := db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]questionModel, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	out := make([]AnsweredQuestion, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: answer %d references missing question %d", ErrMalformedRecord, a.ID, a.QuestionID)
		}
		out = append(out, AnsweredQuestion{
			Answer: exam.Answer{
				ID:               a.ID,
				ExamID:           a.ExamID,
				QuestionID:       a.QuestionID,
				Submitted:        question.Label(a.UserAnswer),
				IsCorrect:        a.IsCorrect,
				TimeSpentSeconds: a.TimeSpentSeconds,
			},
			Question: q.toDomain(),
		})
	}
	return out, nil
}

func (s *GormStore) ExamStats(ctx context.Context) (exam.Stats, error) {
	var row struct {
		Finished     int
		AverageScore float64
		BestScore    float64
	}
	err := s.db.WithContext(ctx).Model(&examModel{}).
		Select("COUNT(*) AS finished, COALESCE(AVG(score), 0) AS average_score, COALESCE(MAX(score), 0) AS best_score").
		Where("correct_answers IS NOT NULL").
		Scan(&row).Error
	return exam.Stats{Finished: row.Finished, AverageScore: row.AverageScore, BestScore: row.BestScore}, err
}

// ============================================================================
// Study progress
// ============================================================================

func (s *GormStore) GetProgress(ctx context.Context, categoryID int64) (*progress.StudyProgress, error) {
	var m progressModel
	if err := s.db.WithContext(ctx).First(&m, "category_id = ?", categoryID).Error; err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	return &progress.StudyProgress{
		CategoryID:   m.CategoryID,
		Answered:     m.QuestionsAnswered,
		Correct:      m.QuestionsCorrect,
		LastActivity: m.LastStudyDate,
	}, nil
}

func (s *GormStore) ListProgress(ctx context.Context) ([]progress.CategoryProgress, error) {
	var rows []struct {
		CategoryID        int64
		QuestionsAnswered int
		QuestionsCorrect  int
		LastStudyDate     *time.Time
		Name              string
		SessionNumber     int
	}
	err := s.db.WithContext(ctx).Table("study_progress AS p").
		Select("p.category_id, p.questions_answered, p.questions_correct, p.last_study_date, c.name, c.session_number").
		Joins("JOIN categories c ON c.id = p.category_id").
		Order("c.session_number, c.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	list := make([]progress.CategoryProgress, len(rows))
	for i, r := range rows {
		list[i] = progress.CategoryProgress{
			StudyProgress: progress.StudyProgress{
				CategoryID:   r.CategoryID,
				Answered:     r.QuestionsAnswered,
				Correct:      r.QuestionsCorrect,
				LastActivity: r.LastStudyDate,
			},
			CategoryName:  r.Name,
			SessionNumber: r.SessionNumber,
		}
	}
	return list, nil
}

func (s *GormStore) SeedProgress(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	var ids []int64
	if err := db.Model(&categoryModel{}).Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	rows := make([]progressModel, len(ids))
	for i, id := range ids {
		rows[i] = progressModel{CategoryID: id}
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (s *GormStore) PurgeHistory(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&examAnswerModel{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&examModel{}).Error; err != nil {
			return err
		}
		return all.Model(&progressModel{}).Updates(map[string]any{
			"questions_answered": 0,
			"questions_correct":  0,
			"last_study_date":    nil,
		}).Error
	})
}
