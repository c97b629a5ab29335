package plan

import "testing"

func TestParseMarkdownSchedule_RoundTrip(t *testing.T) {
	input := "- Fall 2025 (16 credits):\n  - CS 1800: Discrete Structures (4)\n  - CS 1802: Seminar (1)"

	got := ParseMarkdownSchedule(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 semester, got %d", len(got))
	}
	s := got[0]
	if s.Term != "Fall 2025" {
		t.Errorf("term = %q, want Fall 2025", s.Term)
	}
	if s.Type != TypeAcademic {
		t.Errorf("type = %q, want academic", s.Type)
	}
	if len(s.Courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(s.Courses))
	}
	// The header claimed 16 credits; the recomputed total wins.
	if s.TotalCredits != 5 {
		t.Errorf("totalCredits = %d, want 5 (recomputed)", s.TotalCredits)
	}
	if s.Courses[0].Code != "CS 1800" || s.Courses[0].Credits != 4 {
		t.Errorf("first course = %+v", s.Courses[0])
	}
	if s.Courses[1].Name != "Seminar" {
		t.Errorf("second course name = %q", s.Courses[1].Name)
	}
}

func TestParseMarkdownSchedule_CoopAndYearHeaders(t *testing.T) {
	input := `**Year 1**
- Fall 2025 (8 credits):
  - CS 1800: Discrete Structures (4)
  - CS 2500: Fundamentals of CS 1 (4)
**Summer 2026: Co-op 1**
**Year 2**
- Fall 2026 (4 credits):
  - CS 3000: Algorithms (4)
`
	got := ParseMarkdownSchedule(input)
	if len(got) != 3 {
		t.Fatalf("expected 3 semesters, got %d: %+v", len(got), got)
	}

	if got[0].Type != TypeAcademic || len(got[0].Courses) != 2 {
		t.Errorf("first semester = %+v", got[0])
	}

	coop := got[1]
	if coop.Type != TypeCoop {
		t.Fatalf("second semester type = %q, want coop", coop.Type)
	}
	if coop.Term != "Summer 2026" || coop.CoopNumber != 1 {
		t.Errorf("coop semester = %+v", coop)
	}
	if len(coop.Courses) != 0 {
		t.Errorf("coop semester must not carry courses, got %d", len(coop.Courses))
	}

	if got[2].Term != "Fall 2026" || got[2].TotalCredits != 4 {
		t.Errorf("third semester = %+v", got[2])
	}
}

func TestParseMarkdownSchedule_CoopClosesOpenSemester(t *testing.T) {
	input := `- Spring 2026 (4 credits):
  - CS 2510: Fundamentals of CS 2 (4)
**Fall 2026: Co-op 1**`

	got := ParseMarkdownSchedule(input)
	if len(got) != 2 {
		t.Fatalf("expected 2 semesters, got %d", len(got))
	}
	if got[0].Type != TypeAcademic || got[1].Type != TypeCoop {
		t.Errorf("got types %q, %q", got[0].Type, got[1].Type)
	}
}

func TestParseMarkdownSchedule_CoursePatterns(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantCode    string
		wantName    string
		wantCredits int
	}{
		{"strict code", "- CS 1800: Discrete Structures (4)", "CS 1800", "Discrete Structures", 4},
		{"strict no space in code", "- CS1800: Discrete Structures (4)", "CS1800", "Discrete Structures", 4},
		{"loose 3-digit code", "- MATH 141: Calculus 1 (4)", "MATH 141", "Calculus 1", 4},
		{"loose 5-letter code", "- THTRE 1170: The Eloquent Presenter (4)", "THTRE 1170", "The Eloquent Presenter", 4},
		{"generic label becomes elective", "- Science Elective (4)", CodeElec, "Science Elective", 4},
		{"credits word tolerated", "- CS 1800: Discrete Structures (4 credits)", "CS 1800", "Discrete Structures", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCourseLine(tt.line)
			if !ok {
				t.Fatalf("parseCourseLine(%q) did not match", tt.line)
			}
			if got.Code != tt.wantCode || got.Name != tt.wantName || got.Credits != tt.wantCredits {
				t.Errorf("parseCourseLine(%q) = %+v", tt.line, got)
			}
		})
	}
}

func TestParseMarkdownSchedule_TolerantOfNoise(t *testing.T) {
	input := `Here is your plan!

- Fall 2025 (4 credits):
  random commentary that matches nothing
  - CS 1800: Discrete Structures (4)

Hope that helps.`

	got := ParseMarkdownSchedule(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 semester, got %d", len(got))
	}
	if len(got[0].Courses) != 1 {
		t.Errorf("expected 1 course, got %d", len(got[0].Courses))
	}
}

func TestParseMarkdownSchedule_CourseLinesOutsideSemesterDropped(t *testing.T) {
	input := "  - CS 1800: Discrete Structures (4)\n- Fall 2025 (4 credits):\n  - CS 2500: Fundamentals (4)"

	got := ParseMarkdownSchedule(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 semester, got %d", len(got))
	}
	// The orphan course line before any semester header is dropped.
	if len(got[0].Courses) != 1 || got[0].Courses[0].Code != "CS 2500" {
		t.Errorf("courses = %+v", got[0].Courses)
	}
}

func TestParseMarkdownSchedule_Empty(t *testing.T) {
	if got := ParseMarkdownSchedule(""); len(got) != 0 {
		t.Errorf("expected no semesters, got %d", len(got))
	}
}
