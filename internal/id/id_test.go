package id_test

import (
	"testing"

	"github.com/remaimber-it/quizbank/internal/id"
)

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := id.GenerateToken()
		if !id.ValidToken(token) {
			t.Fatalf("generated token %q is not valid", token)
		}
		if seen[token] {
			t.Fatalf("token %q generated twice", token)
		}
		seen[token] = true
	}
}

func TestValidToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"6f1c2d3e-4a5b-4c6d-8e7f-901a2b3c4d5e", true},
		{"", false},
		{"not-a-token", false},
		{"6f1c2d3e-4a5b-4c6d-8e7f", false},
		{"../../etc/passwd", false},
	}
	for _, tt := range tests {
		if got := id.ValidToken(tt.token); got != tt.want {
			t.Errorf("ValidToken(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
