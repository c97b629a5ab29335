package plan

import (
	"fmt"
	"strings"
)

// Mutation operations. Each one takes the current canonical plan, validates
// its preconditions, and returns a freshly built plan plus a human-readable
// result message. The input plan is never modified — callers pair these
// with the store's atomic replace, so a validation failure leaves stored
// state untouched.

// Credit bounds for a single course.
const (
	MinCourseCredits = 1
	MaxCourseCredits = 6
)

// AddCourse appends a course to an academic semester and refreshes its
// credit total.
func AddCourse(p *SchedulePlan, term, code, name string, credits int, options []string) (*SchedulePlan, string, error) {
	if strings.TrimSpace(code) == "" {
		return nil, "", Errf(KindValidation, "code", "course code is required")
	}
	if credits < MinCourseCredits || credits > MaxCourseCredits {
		return nil, "", Errf(KindValidation, "credits", "credits must be between %d and %d, got %d", MinCourseCredits, MaxCourseCredits, credits)
	}
	si := p.FindSemester(term)
	if si < 0 {
		return nil, "", Errf(KindNotFound, "term", "semester %q not found in schedule", NormalizeTerm(term))
	}
	if p.Semesters[si].Type == TypeCoop {
		return nil, "", Errf(KindConstraint, "term", "%s is a co-op semester and cannot hold courses", p.Semesters[si].Term)
	}
	if p.HasCourse(code) {
		return nil, "", Errf(KindConflict, "code", "course %s is already in the schedule", NormalizeCode(code))
	}

	next := p.Clone()
	next.Semesters[si].Courses = append(next.Semesters[si].Courses, Course{
		Code:    strings.TrimSpace(code),
		Name:    strings.TrimSpace(name),
		Credits: credits,
		Options: options,
	})
	next.Semesters[si].RecomputeCredits()

	msg := fmt.Sprintf("Added %s (%d credits) to %s — semester now has %d credits",
		NormalizeCode(code), credits, next.Semesters[si].Term, next.Semesters[si].TotalCredits)
	return next, msg, nil
}

// RemoveCourse deletes a course wherever it appears and refreshes that
// semester's credit total.
func RemoveCourse(p *SchedulePlan, code string) (*SchedulePlan, string, error) {
	si, ci := p.FindCourse(code)
	if si < 0 {
		return nil, "", Errf(KindNotFound, "code", "course %q not found in schedule", NormalizeCode(code))
	}

	next := p.Clone()
	removed := next.Semesters[si].Courses[ci]
	next.Semesters[si].Courses = append(next.Semesters[si].Courses[:ci], next.Semesters[si].Courses[ci+1:]...)
	next.Semesters[si].RecomputeCredits()

	msg := fmt.Sprintf("Removed %s from %s — semester now has %d credits",
		removed.Code, next.Semesters[si].Term, next.Semesters[si].TotalCredits)
	return next, msg, nil
}

// MoveCourse relocates a course to another academic semester, refreshing
// both credit totals. Moving a course to the semester it is already in is
// a successful no-op.
func MoveCourse(p *SchedulePlan, code, toTerm string) (*SchedulePlan, string, error) {
	si, ci := p.FindCourse(code)
	if si < 0 {
		return nil, "", Errf(KindNotFound, "code", "course %q not found in schedule", NormalizeCode(code))
	}
	ti := p.FindSemester(toTerm)
	if ti < 0 {
		return nil, "", Errf(KindNotFound, "toTerm", "semester %q not found in schedule", NormalizeTerm(toTerm))
	}
	if p.Semesters[ti].Type == TypeCoop {
		return nil, "", Errf(KindConstraint, "toTerm", "%s is a co-op semester and cannot hold courses", p.Semesters[ti].Term)
	}
	if si == ti {
		return p.Clone(), fmt.Sprintf("%s is already in %s", NormalizeCode(code), p.Semesters[ti].Term), nil
	}

	next := p.Clone()
	moved := next.Semesters[si].Courses[ci]
	next.Semesters[si].Courses = append(next.Semesters[si].Courses[:ci], next.Semesters[si].Courses[ci+1:]...)
	next.Semesters[si].RecomputeCredits()
	next.Semesters[ti].Courses = append(next.Semesters[ti].Courses, moved)
	next.Semesters[ti].RecomputeCredits()

	msg := fmt.Sprintf("Moved %s from %s to %s", moved.Code, next.Semesters[si].Term, next.Semesters[ti].Term)
	return next, msg, nil
}

// SwapCourses exchanges the positions of two courses. Within one semester
// the two array slots are swapped; across semesters each course lands in
// the other's slot and both totals are refreshed.
func SwapCourses(p *SchedulePlan, code1, code2 string) (*SchedulePlan, string, error) {
	s1, c1 := p.FindCourse(code1)
	if s1 < 0 {
		return nil, "", Errf(KindNotFound, "code1", "course %q not found in schedule", NormalizeCode(code1))
	}
	s2, c2 := p.FindCourse(code2)
	if s2 < 0 {
		return nil, "", Errf(KindNotFound, "code2", "course %q not found in schedule", NormalizeCode(code2))
	}

	next := p.Clone()
	next.Semesters[s1].Courses[c1], next.Semesters[s2].Courses[c2] =
		next.Semesters[s2].Courses[c2], next.Semesters[s1].Courses[c1]
	next.Semesters[s1].RecomputeCredits()
	if s2 != s1 {
		next.Semesters[s2].RecomputeCredits()
	}

	msg := fmt.Sprintf("Swapped %s (%s) with %s (%s)",
		NormalizeCode(code1), next.Semesters[s2].Term, NormalizeCode(code2), next.Semesters[s1].Term)
	if s1 == s2 {
		msg = fmt.Sprintf("Swapped the positions of %s and %s within %s",
			NormalizeCode(code1), NormalizeCode(code2), next.Semesters[s1].Term)
	}
	return next, msg, nil
}

// RemoveSemester deletes a semester entry. An academic semester that still
// has courses is only removed when force is set; the plan-level credit
// target is recomputed from the remaining academic semesters.
func RemoveSemester(p *SchedulePlan, term string, force bool) (*SchedulePlan, string, error) {
	si := p.FindSemester(term)
	if si < 0 {
		return nil, "", Errf(KindNotFound, "term", "semester %q not found in schedule", NormalizeTerm(term))
	}
	s := p.Semesters[si]
	if s.Type == TypeAcademic && len(s.Courses) > 0 && !force {
		return nil, "", Errf(KindConstraint, "term", "%s still has %d course(s); pass force to remove it anyway", s.Term, len(s.Courses))
	}

	next := p.Clone()
	next.Semesters = append(next.Semesters[:si], next.Semesters[si+1:]...)
	next.TotalCredits = next.AcademicCreditTotal()
	if next.TotalCredits == 0 {
		next.TotalCredits = DefaultTargetCredits
	}

	msg := fmt.Sprintf("Removed %s from the schedule", s.Term)
	if s.Type == TypeAcademic && len(s.Courses) > 0 {
		msg = fmt.Sprintf("Removed %s and its %d course(s) from the schedule", s.Term, len(s.Courses))
	}
	return next, msg, nil
}

// SetSemesterType converts a semester between the academic and co-op
// variants. Converting to co-op discards any courses (noted in the result
// message); converting to academic resets to an empty course list. Asking
// for the type the semester already has is a successful no-op.
func SetSemesterType(p *SchedulePlan, term string, newType SemesterType, coopNumber int) (*SchedulePlan, string, error) {
	if !ValidSemesterType(newType) {
		return nil, "", Errf(KindValidation, "newType", "invalid semester type %q: must be academic or coop", newType)
	}
	si := p.FindSemester(term)
	if si < 0 {
		return nil, "", Errf(KindNotFound, "term", "semester %q not found in schedule", NormalizeTerm(term))
	}
	if p.Semesters[si].Type == newType {
		return p.Clone(), fmt.Sprintf("%s is already a %s semester", p.Semesters[si].Term, newType), nil
	}

	next := p.Clone()
	old := next.Semesters[si]
	switch newType {
	case TypeCoop:
		if coopNumber <= 0 {
			coopNumber = nextCoopNumber(next)
		}
		next.Semesters[si] = NewCoop(old.Term, coopNumber)
	case TypeAcademic:
		next.Semesters[si] = NewAcademic(old.Term, []Course{})
	}
	next.TotalCredits = next.AcademicCreditTotal()
	if next.TotalCredits == 0 {
		next.TotalCredits = DefaultTargetCredits
	}

	msg := fmt.Sprintf("Converted %s to a %s semester", old.Term, newType)
	if newType == TypeCoop && len(old.Courses) > 0 {
		msg += fmt.Sprintf(" — %d course(s) were discarded", len(old.Courses))
	}
	return next, msg, nil
}

// nextCoopNumber returns one past the highest placement index in the plan.
func nextCoopNumber(p *SchedulePlan) int {
	max := 0
	for _, s := range p.Semesters {
		if s.Type == TypeCoop && s.CoopNumber > max {
			max = s.CoopNumber
		}
	}
	return max + 1
}

// GetSemester returns the semester record for a term.
func GetSemester(p *SchedulePlan, term string) (Semester, error) {
	si := p.FindSemester(term)
	if si < 0 {
		return Semester{}, Errf(KindNotFound, "term", "semester %q not found in schedule", NormalizeTerm(term))
	}
	return p.Semesters[si].Clone(), nil
}

// CourseMatch pairs a found course with the term that holds it.
type CourseMatch struct {
	Term   string `json:"term"`
	Course Course `json:"course"`
}

// FindCourses does a case-insensitive substring search against course
// codes and names across all academic semesters. An empty result is a
// normal outcome, not a failure.
func FindCourses(p *SchedulePlan, searchTerm string) []CourseMatch {
	needle := strings.ToLower(strings.TrimSpace(searchTerm))
	matches := []CourseMatch{}
	for _, s := range p.Semesters {
		if s.Type != TypeAcademic {
			continue
		}
		for _, c := range s.Courses {
			if needle == "" ||
				strings.Contains(strings.ToLower(c.Code), needle) ||
				strings.Contains(strings.ToLower(c.Name), needle) {
				matches = append(matches, CourseMatch{Term: s.Term, Course: c})
			}
		}
	}
	return matches
}

// --- Credit summary ---

// CreditStatus classifies progress against the credential target.
type CreditStatus string

const (
	StatusOverTarget  CreditStatus = "over_target"
	StatusAtTarget    CreditStatus = "at_target"
	StatusUnderTarget CreditStatus = "under_target"
)

// Summary is the derived credit projection over a plan. Purely a read —
// computing it never changes stored state.
type Summary struct {
	CurrentCredits   int          `json:"currentCredits"`
	TargetCredits    int          `json:"targetCredits"`
	RemainingCredits int          `json:"remainingCredits"`
	LightestTerm     string       `json:"lightestTerm,omitempty"`
	LightestCredits  int          `json:"lightestCredits,omitempty"`
	HeaviestTerm     string       `json:"heaviestTerm,omitempty"`
	HeaviestCredits  int          `json:"heaviestCredits,omitempty"`
	Status           CreditStatus `json:"status"`
}

// CreditSummary computes current-vs-target credits and identifies the
// lightest and heaviest academic semesters by load.
func CreditSummary(p *SchedulePlan) Summary {
	sum := Summary{
		CurrentCredits: p.AcademicCreditTotal(),
		TargetCredits:  p.TotalCredits,
	}
	sum.RemainingCredits = sum.TargetCredits - sum.CurrentCredits
	if sum.RemainingCredits < 0 {
		sum.RemainingCredits = 0
	}

	for _, s := range p.Semesters {
		if s.Type != TypeAcademic {
			continue
		}
		if sum.LightestTerm == "" || s.TotalCredits < sum.LightestCredits {
			sum.LightestTerm, sum.LightestCredits = s.Term, s.TotalCredits
		}
		if sum.HeaviestTerm == "" || s.TotalCredits > sum.HeaviestCredits {
			sum.HeaviestTerm, sum.HeaviestCredits = s.Term, s.TotalCredits
		}
	}

	switch {
	case sum.CurrentCredits > sum.TargetCredits:
		sum.Status = StatusOverTarget
	case sum.CurrentCredits == sum.TargetCredits:
		sum.Status = StatusAtTarget
	default:
		sum.Status = StatusUnderTarget
	}
	return sum
}
