package plan

import (
	"reflect"
	"testing"
)

func TestNormalize_CoopMislabelCorrected(t *testing.T) {
	raw := map[string]any{
		"school": "X",
		"semesters": []any{
			map[string]any{
				"term": "Fall 2026",
				"type": "coop",
				"courses": []any{
					map[string]any{"code": "CS1800", "name": "Discrete Structures", "credits": float64(4)},
				},
			},
		},
	}

	p := Normalize(raw)
	if len(p.Semesters) != 1 {
		t.Fatalf("expected 1 semester, got %d", len(p.Semesters))
	}
	s := p.Semesters[0]
	if s.Type != TypeAcademic {
		t.Errorf("type = %q, want academic (agent mislabeled a semester with courses)", s.Type)
	}
	if s.TotalCredits != 4 {
		t.Errorf("totalCredits = %d, want 4", s.TotalCredits)
	}
}

func TestNormalize_TypeInference(t *testing.T) {
	raw := map[string]any{
		"semesters": []any{
			map[string]any{"term": "Fall 2025", "courses": []any{
				map[string]any{"code": "CS 1800", "credits": float64(4)},
			}},
			map[string]any{"term": "Summer 2026", "coopNumber": float64(1)},
			map[string]any{"term": "Spring 2027"},
			map[string]any{"term": "Fall 2027", "type": "co-op", "coopNumber": float64(2)},
		},
	}

	p := Normalize(raw)
	wantTypes := []SemesterType{TypeAcademic, TypeCoop, TypeAcademic, TypeCoop}
	for i, want := range wantTypes {
		if p.Semesters[i].Type != want {
			t.Errorf("semester %d type = %q, want %q", i, p.Semesters[i].Type, want)
		}
	}
	if p.Semesters[3].CoopNumber != 2 {
		t.Errorf("hyphenated co-op type lost its number: %+v", p.Semesters[3])
	}
}

func TestNormalize_DedupFirstWins(t *testing.T) {
	raw := map[string]any{
		"semesters": []any{
			map[string]any{"term": "Fall 2025", "type": "academic", "courses": []any{
				map[string]any{"code": "CS 1800", "name": "Discrete", "credits": float64(4)},
				map[string]any{"code": "ELEC", "name": "Elective 1", "credits": float64(4)},
			}},
			map[string]any{"term": "Spring 2026", "type": "academic", "courses": []any{
				map[string]any{"code": "cs  1800", "name": "Discrete again", "credits": float64(4)},
				map[string]any{"code": "ELEC", "name": "Elective 2", "credits": float64(4)},
				map[string]any{"code": "CS 2500", "name": "Fundies", "credits": float64(4)},
			}},
		},
	}

	p := Normalize(raw)

	// Case/whitespace-folded duplicate dropped, first occurrence kept.
	if got := len(p.Semesters[0].Courses); got != 2 {
		t.Errorf("first semester courses = %d, want 2", got)
	}
	if got := len(p.Semesters[1].Courses); got != 2 {
		t.Fatalf("second semester courses = %d, want 2 (dup dropped, elective kept)", got)
	}
	if p.Semesters[1].Courses[0].Code != "ELEC" || p.Semesters[1].Courses[1].Code != "CS 2500" {
		t.Errorf("second semester courses = %+v", p.Semesters[1].Courses)
	}
	if p.Semesters[1].TotalCredits != 8 {
		t.Errorf("second semester totalCredits = %d, want 8 after dedup", p.Semesters[1].TotalCredits)
	}

	// The drop shows up as a warning instead of disappearing silently.
	found := false
	for _, w := range p.Warnings {
		if w == "Dropped 1 duplicate course(s) from Spring 2026" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a duplicate-drop warning, got %v", p.Warnings)
	}
}

func TestNormalize_DedupIdempotent(t *testing.T) {
	raw := map[string]any{
		"school": "X",
		"semesters": []any{
			map[string]any{"term": "Fall 2025", "type": "academic", "courses": []any{
				map[string]any{"code": "CS 1800", "name": "Discrete", "credits": float64(4)},
				map[string]any{"code": "CS 1800", "name": "Discrete dup", "credits": float64(4)},
			}},
		},
	}

	first := Normalize(raw)

	// Re-normalize the already-clean result; nothing further may drop.
	again := Normalize(map[string]any{
		"school": first.School,
		"semesters": []any{
			map[string]any{"term": "Fall 2025", "type": "academic", "courses": []any{
				map[string]any{"code": "CS 1800", "name": "Discrete", "credits": float64(4)},
			}},
		},
	})

	if !reflect.DeepEqual(first.Semesters, again.Semesters) {
		t.Errorf("re-normalization changed semesters:\nfirst: %+v\nagain: %+v", first.Semesters, again.Semesters)
	}
	if len(again.Warnings) != 0 {
		t.Errorf("idempotent pass produced warnings: %v", again.Warnings)
	}
}

func TestNormalize_SemestersAsJSONString(t *testing.T) {
	raw := map[string]any{
		"semesters": `[{"term":"fall 2025","type":"academic","courses":[{"code":"CS 1800","name":"Discrete","credits":4}]},]`,
	}

	p := Normalize(raw)
	if len(p.Semesters) != 1 {
		t.Fatalf("expected 1 semester from stringified JSON (with trailing comma), got %d", len(p.Semesters))
	}
	if p.Semesters[0].Term != "Fall 2025" {
		t.Errorf("term = %q", p.Semesters[0].Term)
	}
}

func TestNormalize_SemestersAsMarkdown(t *testing.T) {
	raw := map[string]any{
		"semesters": "- Fall 2025 (16 credits):\n  - CS 1800: Discrete Structures (4)",
	}

	p := Normalize(raw)
	if len(p.Semesters) != 1 {
		t.Fatalf("expected 1 semester from markdown fallback, got %d", len(p.Semesters))
	}
	if p.Semesters[0].TotalCredits != 4 {
		t.Errorf("totalCredits = %d, want 4", p.Semesters[0].TotalCredits)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	p := Normalize(map[string]any{})
	if p.Degree != "BS" {
		t.Errorf("degree = %q, want BS", p.Degree)
	}
	if p.TotalCredits != DefaultTargetCredits {
		t.Errorf("totalCredits = %d, want %d", p.TotalCredits, DefaultTargetCredits)
	}
	if p.Warnings == nil || len(p.Warnings) != 0 {
		t.Errorf("warnings = %#v, want empty non-nil slice", p.Warnings)
	}
	if p.Semesters == nil {
		t.Error("semesters must be a non-nil slice")
	}
}

func TestNormalize_TargetFromAcademicSum(t *testing.T) {
	raw := map[string]any{
		"totalCredits": "not a number",
		"semesters": []any{
			map[string]any{"term": "Fall 2025", "type": "academic", "courses": []any{
				map[string]any{"code": "CS 1800", "credits": float64(4)},
				map[string]any{"code": "CS 2500", "credits": float64(4)},
			}},
		},
	}
	p := Normalize(raw)
	if p.TotalCredits != 8 {
		t.Errorf("totalCredits = %d, want 8 (sum of academic semesters)", p.TotalCredits)
	}
}

func TestNormalize_TargetFromNumericString(t *testing.T) {
	p := Normalize(map[string]any{"totalCredits": "134 credits"})
	if p.TotalCredits != 134 {
		t.Errorf("totalCredits = %d, want 134", p.TotalCredits)
	}
}

func TestNormalize_CreditConsistency(t *testing.T) {
	// Whatever the input claims, academic totals equal the course sums.
	raw := map[string]any{
		"semesters": []any{
			map[string]any{"term": "Fall 2025", "type": "academic", "totalCredits": float64(99), "courses": []any{
				map[string]any{"code": "CS 1800", "credits": float64(4)},
				map[string]any{"code": "ENGW 1111", "credits": float64(4)},
			}},
		},
	}
	p := Normalize(raw)
	for _, s := range p.Semesters {
		if s.Type != TypeAcademic {
			continue
		}
		sum := 0
		for _, c := range s.Courses {
			sum += c.Credits
		}
		if s.TotalCredits != sum {
			t.Errorf("%s: totalCredits %d != course sum %d", s.Term, s.TotalCredits, sum)
		}
	}
}

func TestNormalizeWarnings(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, []string{}},
		{"array", []any{"a", "b"}, []string{"a", "b"}},
		{"json string", `["a","b"]`, []string{"a", "b"}},
		{"bulleted lines", "- first\n• second\n* third\n2. fourth\n\n", []string{"first", "second", "third", "fourth"}},
		{"plain string", "just one warning", []string{"just one warning"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeWarnings(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeWarnings(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeText(t *testing.T) {
	// Embedded JSON wins when present.
	p := NormalizeText(`Result: {"school":"X","semesters":[]} done`)
	if p.School != "X" {
		t.Errorf("school = %q", p.School)
	}

	// Otherwise the text is treated as a markdown plan.
	p = NormalizeText("- Fall 2025 (4 credits):\n  - CS 1800: Discrete Structures (4)")
	if len(p.Semesters) != 1 || p.Semesters[0].Term != "Fall 2025" {
		t.Errorf("semesters = %+v", p.Semesters)
	}
}
