package plan

import "testing"

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "Fall 2025", "Fall 2025"},
		{"lowercase season", "fall 2025", "Fall 2025"},
		{"uppercase season", "SPRING 2026", "Spring 2026"},
		{"combined term keeps first season", "Summer/Fall 2028", "Summer 2028"},
		{"combined term lowercase", "summer/fall 2028", "Summer 2028"},
		{"combined with year before slash", "Summer 2028/Fall", "Summer 2028"},
		{"extra whitespace", "  fall   2025  ", "Fall 2025"},
		{"season only", "fall", "Fall"},
		{"empty", "", ""},
		{"extra trailing tokens dropped", "fall 2025 semester", "Fall 2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTerm(tt.in); got != tt.want {
				t.Errorf("NormalizeTerm(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTerm_Malformed(t *testing.T) {
	// Malformed input is normalized best-effort, never rejected.
	if got := NormalizeTerm("???"); got != "???" {
		t.Errorf("NormalizeTerm(???) = %q, want ???", got)
	}
	if got := NormalizeTerm("/2028"); got != "2028" {
		t.Errorf("NormalizeTerm(/2028) = %q, want 2028", got)
	}
}
