package archive

import (
	"testing"

	"github.com/nmoreno/semplan/internal/plan"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("creating archive: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func samplePlan() *plan.SchedulePlan {
	return &plan.SchedulePlan{
		School:       "Northeastern University",
		Major:        "Computer Science",
		Degree:       "BS",
		TotalCredits: 134,
		Semesters: []plan.Semester{
			plan.NewAcademic("Fall 2025", []plan.Course{
				{Code: "CS 1800", Name: "Discrete Structures", Credits: 4},
			}),
			plan.NewCoop("Summer 2026", 1),
		},
		Warnings: []string{},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save("Student@Example.COM", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Email lookup is case-insensitive.
	saved, err := s.Load("student@example.com")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if saved.Email != "student@example.com" {
		t.Errorf("email = %q", saved.Email)
	}
	if saved.Plan.Major != "Computer Science" {
		t.Errorf("major = %q", saved.Plan.Major)
	}
	if len(saved.Plan.Semesters) != 2 {
		t.Errorf("semesters = %d, want 2", len(saved.Plan.Semesters))
	}
	if saved.Plan.Semesters[1].Type != plan.TypeCoop {
		t.Errorf("second semester type = %q", saved.Plan.Semesters[1].Type)
	}
	if saved.UpdatedAt == "" {
		t.Error("updated_at not recorded")
	}
}

func TestSave_Upserts(t *testing.T) {
	s := newTestStore(t)

	first := samplePlan()
	if err := s.Save("a@b.c", first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := samplePlan()
	second.Major = "Mathematics"
	if err := s.Save("a@b.c", second); err != nil {
		t.Fatalf("Save (again): %v", err)
	}

	saved, err := s.Load("a@b.c")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if saved.Plan.Major != "Mathematics" {
		t.Errorf("major = %q, want the replacement", saved.Plan.Major)
	}
}

func TestLoad_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load("nobody@example.com")
	if err == nil {
		t.Fatal("expected not_found")
	}
	if plan.AsError(err).Kind != plan.KindNotFound {
		t.Errorf("kind = %q, want not_found", plan.AsError(err).Kind)
	}
}

func TestSave_RequiresEmail(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("   ", samplePlan()); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := s.Load(""); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save("a@b.c", samplePlan()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("A@B.C"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("a@b.c"); err == nil {
		t.Error("expected not_found after delete")
	}
	// Deleting an absent row is fine.
	if err := s.Delete("a@b.c"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}
