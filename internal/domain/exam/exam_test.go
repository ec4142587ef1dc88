package exam_test

import (
	"errors"
	"testing"

	"github.com/remaimber-it/quizbank/internal/domain/exam"
)

func TestScore(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{0, 0, 0},
		{0, 20, 0},
		{15, 20, 75},
		{20, 20, 100},
		{1, 3, 100.0 / 3},
	}
	for _, tt := range tests {
		if got := exam.Score(tt.correct, tt.total); got != tt.want {
			t.Errorf("Score(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestTimeShare(t *testing.T) {
	tests := []struct {
		elapsed, total, want int
	}{
		{200, 20, 10},
		{205, 20, 10},
		{19, 20, 0},
		{100, 0, 0},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := exam.TimeShare(tt.elapsed, tt.total); got != tt.want {
			t.Errorf("TimeShare(%d, %d) = %d, want %d", tt.elapsed, tt.total, got, tt.want)
		}
	}
}

func TestExam_Finished(t *testing.T) {
	e := exam.Exam{TotalQuestions: 3}
	if e.Finished() {
		t.Error("new exam should not be finished")
	}
	correct := 2
	e.CorrectAnswers = &correct
	if !e.Finished() {
		t.Error("exam with a correct count should be finished")
	}
}

func TestFilterCodec(t *testing.T) {
	encoded, err := exam.EncodeFilter([]int64{4, 2, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoded != "[4,2,9]" {
		t.Errorf("expected [4,2,9], got %s", encoded)
	}

	empty, err := exam.EncodeFilter(nil)
	if err != nil || empty != "[]" {
		t.Errorf("expected [] for nil filter, got %q %v", empty, err)
	}

	decoded, err := exam.DecodeFilter(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != 3 || decoded[0] != 4 || decoded[2] != 9 {
		t.Errorf("unexpected decoded filter %v", decoded)
	}

	for _, s := range []string{"", "[]", "null"} {
		ids, err := exam.DecodeFilter(s)
		if err != nil {
			t.Errorf("DecodeFilter(%q): unexpected error %v", s, err)
		}
		if ids == nil || len(ids) != 0 {
			t.Errorf("DecodeFilter(%q): expected empty filter, got %v", s, ids)
		}
	}

	for _, s := range []string{"1,2", `["a"]`, "{}", "[1.5]"} {
		if _, err := exam.DecodeFilter(s); !errors.Is(err, exam.ErrMalformedFilter) {
			t.Errorf("DecodeFilter(%q): expected ErrMalformedFilter, got %v", s, err)
		}
	}
}

func TestNormalizeFilter(t *testing.T) {
	got := exam.NormalizeFilter([]int64{5, 5, 1, 5, 2})
	want := []int64{5, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
