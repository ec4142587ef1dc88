package progress

import "time"

// Snapshot is the read model of a category's progress joined with the
// category metadata. A category with no answers yet has a zero snapshot.
type Snapshot struct {
	CategoryID     int64      `json:"category_id"`
	CategoryName   string     `json:"category_name"`
	SessionNumber  int        `json:"session_number"`
	TotalQuestions int        `json:"total_questions"`
	Answered       int        `json:"questions_answered"`
	Correct        int        `json:"questions_correct"`
	Accuracy       float64    `json:"accuracy"`
	LastActivity   *time.Time `json:"last_study_date,omitempty"`
}

// CategoryProgress is a stored progress row with its category name and
// ordering key, as returned by the repository join.
type CategoryProgress struct {
	StudyProgress
	CategoryName  string
	SessionNumber int
}

// NewSnapshot builds the snapshot of p. A nil p means "no data yet".
func NewSnapshot(categoryID int64, name string, session int, p *StudyProgress) (Snapshot, error) {
	s := Snapshot{
		CategoryID:    categoryID,
		CategoryName:  name,
		SessionNumber: session,
	}
	if p == nil {
		return s, nil
	}
	if err := p.Validate(); err != nil {
		return Snapshot{}, err
	}
	s.Answered = p.Answered
	s.Correct = p.Correct
	s.Accuracy = Accuracy(p.Correct, p.Answered)
	s.LastActivity = p.LastActivity
	return s, nil
}

// Overview aggregates every finished exam and every category tally.
type Overview struct {
	TotalExams      int     `json:"total_exams"`
	AverageScore    float64 `json:"avg_score"`
	BestScore       float64 `json:"best_score"`
	TotalAnswered   int     `json:"total_questions_answered"`
	TotalCorrect    int     `json:"total_questions_correct"`
	OverallAccuracy float64 `json:"overall_accuracy"`
}

// NewOverview combines exam statistics with the per-category snapshots.
func NewOverview(totalExams int, avgScore, bestScore float64, snapshots []Snapshot) Overview {
	o := Overview{
		TotalExams:   totalExams,
		AverageScore: Round2(avgScore),
		BestScore:    Round2(bestScore),
	}
	for _, s := range snapshots {
		o.TotalAnswered += s.Answered
		o.TotalCorrect += s.Correct
	}
	o.OverallAccuracy = Round2(Accuracy(o.TotalCorrect, o.TotalAnswered))
	return o
}
