package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/remaimber-it/quizbank/internal/domain/category"
	"github.com/remaimber-it/quizbank/internal/domain/exam"
	"github.com/remaimber-it/quizbank/internal/domain/question"
)

// storeContract holds the checks every Store implementation must pass.
var storeContract = []struct {
	name string
	run  func(t *testing.T, s Store)
}{
	{"Categories", testCategories},
	{"Questions", testQuestions},
	{"ExamLifecycle", testExamLifecycle},
	{"FinishEmptyExamScoresZero", testFinishEmptyExamScoresZero},
	{"ListExamsAndStats", testListExamsAndStats},
	{"WithinTxRollsBack", testWithinTxRollsBack},
	{"UpsertProgress", testUpsertProgress},
	{"ConcurrentUpsertsCommute", testConcurrentUpsertsCommute},
	{"SeedAndPurge", testSeedAndPurge},
}

func runContract(t *testing.T, open func(t *testing.T) Store) {
	for _, c := range storeContract {
		t.Run(c.name, func(t *testing.T) {
			c.run(t, open(t))
		})
	}
}

func mustCategory(t *testing.T, s Store, name string, session int) *category.Category {
	t.Helper()
	c := &category.Category{Name: name, SessionNumber: session}
	if err := s.SaveCategory(context.Background(), c); err != nil {
		t.Fatalf("save category: %v", err)
	}
	return c
}

func mustQuestion(t *testing.T, s Store, categoryID int64, d question.Difficulty) question.Question {
	t.Helper()
	q := question.Question{
		CategoryID: categoryID,
		Type:       question.TypeSyntax,
		Text:       "Which option?",
		Options:    [5]string{"one", "two", "three", "four", "five"},
		Correct:    question.LabelC,
		Difficulty: d,
	}
	if err := s.SaveQuestion(context.Background(), &q); err != nil {
		t.Fatalf("save question: %v", err)
	}
	return q
}

func testCategories(t *testing.T, s Store) {
	ctx := context.Background()

	second := mustCategory(t, s, "Joins", 2)
	first := mustCategory(t, s, "Basics", 1)

	again := &category.Category{Name: "Joins", Description: "updated", SessionNumber: 3}
	if err := s.SaveCategory(ctx, again); err != nil {
		t.Fatalf("resave category: %v", err)
	}
	if again.ID != second.ID {
		t.Errorf("expected upsert to keep id %d, got %d", second.ID, again.ID)
	}

	list, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].Description != "updated" {
		t.Errorf("unexpected categories %+v", list)
	}

	if _, err := s.GetCategory(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func testQuestions(t *testing.T, s Store) {
	ctx := context.Background()

	a := mustCategory(t, s, "A", 1)
	b := mustCategory(t, s, "B", 2)

	ref := "orders.csv"
	q := question.Question{
		CategoryID:       a.ID,
		Type:             question.TypeConceptual,
		Text:             "What is a primary key?",
		Options:          [5]string{"v", "w", "x", "y", "z"},
		Correct:          question.LabelE,
		Explanation:      "It identifies a row.",
		DatasetReference: &ref,
		Difficulty:       question.DifficultyHard,
	}
	if err := s.SaveQuestion(ctx, &q); err != nil {
		t.Fatalf("save question: %v", err)
	}
	for i := 0; i < 4; i++ {
		mustQuestion(t, s, b.ID, question.DifficultyEasy)
	}

	got, err := s.QuestionByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if got.Text != q.Text || got.Correct != question.LabelE || got.Options[4] != "z" ||
		got.DatasetReference == nil || *got.DatasetReference != ref || got.Difficulty != question.DifficultyHard {
		t.Errorf("question did not round-trip: %+v", got)
	}
	if _, err := s.QuestionByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	all, err := s.RandomQuestions(ctx, 100, nil)
	if err != nil || len(all) != 5 {
		t.Fatalf("expected 5 questions, got %d (%v)", len(all), err)
	}
	limited, err := s.RandomQuestions(ctx, 2, []int64{b.ID})
	if err != nil || len(limited) != 2 {
		t.Fatalf("expected 2 questions, got %d (%v)", len(limited), err)
	}
	for _, q := range limited {
		if q.CategoryID != b.ID {
			t.Errorf("question %d outside the category filter", q.ID)
		}
	}

	if n, _ := s.CountQuestions(ctx); n != 5 {
		t.Errorf("expected 5 questions in the bank, got %d", n)
	}
	if n, _ := s.CountQuestions(ctx, b.ID); n != 4 {
		t.Errorf("expected 4 questions in category B, got %d", n)
	}
	if byCat, _ := s.QuestionsByCategory(ctx, a.ID); len(byCat) != 1 {
		t.Errorf("expected 1 question in category A, got %d", len(byCat))
	}
}

func testExamLifecycle(t *testing.T, s Store) {
	ctx := context.Background()

	c := mustCategory(t, s, "A", 1)
	q1 := mustQuestion(t, s, c.ID, question.DifficultyEasy)
	q2 := mustQuestion(t, s, c.ID, question.DifficultyMedium)

	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	id, err := s.CreateExam(ctx, 2, []int64{c.ID}, at)
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}

	for _, a := range []exam.Answer{
		{ExamID: id, QuestionID: q2.ID, Submitted: question.LabelC, IsCorrect: true, TimeSpentSeconds: 5},
		{ExamID: id, QuestionID: q1.ID, Submitted: question.LabelNone, TimeSpentSeconds: 5},
	} {
		if _, err := s.CreateExamAnswer(ctx, a); err != nil {
			t.Fatalf("create answer: %v", err)
		}
	}

	pending, err := s.GetExam(ctx, id)
	if err != nil {
		t.Fatalf("get exam: %v", err)
	}
	if pending.Finished() || pending.Score != nil {
		t.Errorf("exam should not be finished yet: %+v", pending)
	}

	if err := s.FinishExam(ctx, id, 1, 11); err != nil {
		t.Fatalf("finish exam: %v", err)
	}
	if err := s.FinishExam(ctx, id, 2, 11); !errors.Is(err, ErrExamFinished) {
		t.Errorf("expected ErrExamFinished, got %v", err)
	}
	if err := s.FinishExam(ctx, 999, 1, 1); !errors.Is(err, ErrExamNotFound) {
		t.Errorf("expected ErrExamNotFound, got %v", err)
	}

	e, err := s.GetExam(ctx, id)
	if err != nil {
		t.Fatalf("get exam: %v", err)
	}
	if !e.CreatedAt.Equal(at) {
		t.Errorf("expected created_at %v, got %v", at, e.CreatedAt)
	}
	if *e.CorrectAnswers != 1 || *e.Score != 50 || *e.ElapsedSeconds != 11 {
		t.Errorf("unexpected finished exam %+v", e)
	}
	if len(e.CategoryFilter) != 1 || e.CategoryFilter[0] != c.ID {
		t.Errorf("unexpected category filter %v", e.CategoryFilter)
	}

	answers, err := s.ExamAnswers(ctx, id)
	if err != nil {
		t.Fatalf("exam answers: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if answers[0].QuestionID != q2.ID || answers[0].Question.Difficulty != question.DifficultyMedium || !answers[0].IsCorrect {
		t.Errorf("unexpected first answer %+v", answers[0])
	}
	if answers[1].Submitted != question.LabelNone || answers[1].IsCorrect {
		t.Errorf("unexpected second answer %+v", answers[1])
	}

	if _, err := s.GetExam(ctx, 999); !errors.Is(err, ErrExamNotFound) {
		t.Errorf("expected ErrExamNotFound, got %v", err)
	}
}

func testFinishEmptyExamScoresZero(t *testing.T, s Store) {
	ctx := context.Background()

	id, err := s.CreateExam(ctx, 0, nil, time.Now())
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	if err := s.FinishExam(ctx, id, 0, 3); err != nil {
		t.Fatalf("finish exam: %v", err)
	}
	e, _ := s.GetExam(ctx, id)
	if e.Score == nil || *e.Score != 0 {
		t.Errorf("expected score 0, got %v", e.Score)
	}
	if e.CategoryFilter == nil || len(e.CategoryFilter) != 0 {
		t.Errorf("expected empty filter, got %v", e.CategoryFilter)
	}
}

func testListExamsAndStats(t *testing.T, s Store) {
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []int64
	for i, correct := range []int{2, 4, 3} {
		id, err := s.CreateExam(ctx, 4, nil, base.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatalf("create exam: %v", err)
		}
		if err := s.FinishExam(ctx, id, correct, 60); err != nil {
			t.Fatalf("finish exam: %v", err)
		}
		ids = append(ids, id)
	}
	// unfinished exams do not count towards the stats
	if _, err := s.CreateExam(ctx, 4, nil, base.Add(-time.Hour)); err != nil {
		t.Fatalf("create exam: %v", err)
	}

	recent, err := s.ListExams(ctx, 2)
	if err != nil {
		t.Fatalf("list exams: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != ids[2] || recent[1].ID != ids[1] {
		t.Errorf("expected newest first, got %v and %v", recent[0].ID, recent[1].ID)
	}
	if all, _ := s.ListExams(ctx, 0); len(all) != 4 {
		t.Errorf("expected all 4 exams, got %d", len(all))
	}

	st, err := s.ExamStats(ctx)
	if err != nil {
		t.Fatalf("exam stats: %v", err)
	}
	if st.Finished != 3 || st.AverageScore != 75 || st.BestScore != 100 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func testWithinTxRollsBack(t *testing.T, s Store) {
	ctx := context.Background()
	c := mustCategory(t, s, "A", 1)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(w Writer) error {
		if _, err := w.CreateExam(ctx, 1, nil, time.Now()); err != nil {
			return err
		}
		if err := w.UpsertProgress(ctx, c.ID, 1, 1, time.Now()); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if exams, _ := s.ListExams(ctx, 0); len(exams) != 0 {
		t.Errorf("expected no exams after rollback, got %d", len(exams))
	}
	if _, err := s.GetProgress(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected no progress after rollback, got %v", err)
	}
}

func testUpsertProgress(t *testing.T, s Store) {
	ctx := context.Background()
	c := mustCategory(t, s, "A", 1)

	first := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	if err := s.UpsertProgress(ctx, c.ID, 5, 3, first); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := s.UpsertProgress(ctx, c.ID, 4, 4, second); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	p, err := s.GetProgress(ctx, c.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if p.Answered != 9 || p.Correct != 7 {
		t.Errorf("expected 7 of 9, got %d of %d", p.Correct, p.Answered)
	}
	if p.LastActivity == nil || !p.LastActivity.Equal(second) {
		t.Errorf("expected last activity %v, got %v", second, p.LastActivity)
	}

	list, err := s.ListProgress(ctx)
	if err != nil || len(list) != 1 || list[0].CategoryName != "A" {
		t.Errorf("unexpected progress list %+v (%v)", list, err)
	}
}

func testConcurrentUpsertsCommute(t *testing.T, s Store) {
	ctx := context.Background()
	c := mustCategory(t, s, "A", 1)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.UpsertProgress(ctx, c.ID, 3, i%3, time.Now())
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	p, err := s.GetProgress(ctx, c.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	wantCorrect := 0
	for i := 0; i < workers; i++ {
		wantCorrect += i % 3
	}
	if p.Answered != 3*workers || p.Correct != wantCorrect {
		t.Errorf("expected %d of %d, got %d of %d", wantCorrect, 3*workers, p.Correct, p.Answered)
	}
}

func testSeedAndPurge(t *testing.T, s Store) {
	ctx := context.Background()
	a := mustCategory(t, s, "A", 1)
	b := mustCategory(t, s, "B", 2)
	q := mustQuestion(t, s, a.ID, question.DifficultyEasy)

	if err := s.UpsertProgress(ctx, a.ID, 2, 1, time.Now()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.SeedProgress(ctx); err != nil {
			t.Fatalf("seed progress: %v", err)
		}
	}

	list, _ := s.ListProgress(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 progress rows, got %d", len(list))
	}
	if list[0].Answered != 2 {
		t.Errorf("seeding must not reset existing rows, got %+v", list[0])
	}
	if list[1].CategoryID != b.ID || list[1].Answered != 0 || list[1].LastActivity != nil {
		t.Errorf("expected a zero row for B, got %+v", list[1])
	}

	id, _ := s.CreateExam(ctx, 1, nil, time.Now())
	if _, err := s.CreateExamAnswer(ctx, exam.Answer{ExamID: id, QuestionID: q.ID, Submitted: question.LabelA}); err != nil {
		t.Fatalf("create answer: %v", err)
	}

	if err := s.PurgeHistory(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if exams, _ := s.ListExams(ctx, 0); len(exams) != 0 {
		t.Errorf("expected no exams after purge, got %d", len(exams))
	}
	if answers, _ := s.ExamAnswers(ctx, id); len(answers) != 0 {
		t.Errorf("expected no answers after purge, got %d", len(answers))
	}
	p, _ := s.GetProgress(ctx, a.ID)
	if p.Answered != 0 || p.Correct != 0 || p.LastActivity != nil {
		t.Errorf("expected progress reset, got %+v", p)
	}
	if n, _ := s.CountQuestions(ctx); n != 1 {
		t.Errorf("purge must keep the bank, got %d questions", n)
	}
}
