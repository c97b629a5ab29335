// Package plan defines the canonical degree-schedule model and the engine
// that keeps it trustworthy: a normalizer that coerces loosely-typed agent
// output into the model, and the mutation operations that edit it without
// breaking its invariants.
//
// The package follows the same split as the rest of the codebase:
// - types, parsing, normalization, and operations live in separate files
// - everything externally sourced passes through Normalize before it is
//   allowed to touch the typed model
// - operations never mutate a fetched plan in place; they build a new one
package plan

import "strings"

// --- Semester type enum ---

// SemesterType discriminates the two semester variants.
type SemesterType string

const (
	// TypeAcademic is a term during which coursework occurs.
	TypeAcademic SemesterType = "academic"
	// TypeCoop is a term reserved for a co-op work placement.
	TypeCoop SemesterType = "coop"
)

// ValidSemesterType reports whether t is a recognized semester type.
func ValidSemesterType(t SemesterType) bool {
	return t == TypeAcademic || t == TypeCoop
}

// --- Course ---

// Elective placeholder codes. Multiple distinct elective slots legitimately
// share these codes, so they are exempt from duplicate detection.
const (
	CodeElec     = "ELEC"
	CodeElective = "ELECTIVE"
)

// Course is a single course entry within an academic semester.
type Course struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Credits int      `json:"credits"`
	Options []string `json:"options,omitempty"`
}

// NormalizeCode folds a course code into its comparison key: uppercased,
// trimmed, internal whitespace collapsed to single spaces. "cs  1800" and
// "CS 1800" compare equal.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), " "))
}

// IsElectivePlaceholder reports whether code is one of the generic elective
// placeholder codes (after normalization).
func IsElectivePlaceholder(code string) bool {
	n := NormalizeCode(code)
	return n == CodeElec || n == CodeElective
}

// --- Semester ---

// Semester is a tagged variant: either an academic term carrying courses or
// a co-op term carrying a placement number. Consumers must switch on Type
// and handle both arms.
type Semester struct {
	Term         string       `json:"term"`
	Type         SemesterType `json:"type"`
	Courses      []Course     `json:"courses,omitempty"`
	TotalCredits int          `json:"totalCredits,omitempty"`
	CoopNumber   int          `json:"coopNumber,omitempty"`
}

// NewAcademic builds an academic semester with TotalCredits derived from
// the given courses.
func NewAcademic(term string, courses []Course) Semester {
	s := Semester{Term: term, Type: TypeAcademic, Courses: courses}
	s.RecomputeCredits()
	return s
}

// NewCoop builds a co-op semester. Co-op semesters carry no courses.
func NewCoop(term string, number int) Semester {
	return Semester{Term: term, Type: TypeCoop, CoopNumber: number}
}

// RecomputeCredits refreshes the cached TotalCredits from the course list.
// TotalCredits is derived state, never an independent source of truth.
func (s *Semester) RecomputeCredits() {
	if s.Type != TypeAcademic {
		s.TotalCredits = 0
		return
	}
	total := 0
	for _, c := range s.Courses {
		total += c.Credits
	}
	s.TotalCredits = total
}

// MatchesTerm reports whether the semester's term equals the given label,
// comparing case-insensitively on the canonical "Season Year" form.
func (s *Semester) MatchesTerm(term string) bool {
	return strings.EqualFold(s.Term, NormalizeTerm(term))
}

// Clone deep-copies the semester so callers can edit the copy freely.
func (s Semester) Clone() Semester {
	out := s
	if s.Courses != nil {
		out.Courses = make([]Course, len(s.Courses))
		copy(out.Courses, s.Courses)
		for i, c := range s.Courses {
			if c.Options != nil {
				out.Courses[i].Options = append([]string(nil), c.Options...)
			}
		}
	}
	return out
}

// --- SchedulePlan ---

// SchedulePlan is the canonical multi-year schedule. Semesters are ordered
// chronologically and every operation preserves that order except explicit
// removal. TotalCredits is the credential's required credit target, not the
// sum of the semesters' credits — consumers compute current credits from
// the academic semesters separately.
type SchedulePlan struct {
	School         string     `json:"school"`
	Major          string     `json:"major"`
	Degree         string     `json:"degree"`
	StartTerm      string     `json:"startTerm"`
	GraduationTerm string     `json:"graduationTerm"`
	TotalCredits   int        `json:"totalCredits"`
	Semesters      []Semester `json:"semesters"`
	Warnings       []string   `json:"warnings"`
	SourceURL      string     `json:"sourceUrl,omitempty"`
}

// Clone deep-copies the plan. Mutation operations clone, edit the clone,
// and hand the result to the store's atomic replace.
func (p *SchedulePlan) Clone() *SchedulePlan {
	out := *p
	out.Semesters = make([]Semester, len(p.Semesters))
	for i, s := range p.Semesters {
		out.Semesters[i] = s.Clone()
	}
	out.Warnings = append([]string(nil), p.Warnings...)
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	return &out
}

// FindSemester returns the index of the semester matching term, or -1.
func (p *SchedulePlan) FindSemester(term string) int {
	for i := range p.Semesters {
		if p.Semesters[i].MatchesTerm(term) {
			return i
		}
	}
	return -1
}

// FindCourse locates a course by normalized code. Returns the semester
// index and the course index within it, or (-1, -1) if absent. Only
// academic semesters are searched — co-op semesters carry no courses.
func (p *SchedulePlan) FindCourse(code string) (int, int) {
	want := NormalizeCode(code)
	for si := range p.Semesters {
		if p.Semesters[si].Type != TypeAcademic {
			continue
		}
		for ci := range p.Semesters[si].Courses {
			if NormalizeCode(p.Semesters[si].Courses[ci].Code) == want {
				return si, ci
			}
		}
	}
	return -1, -1
}

// HasCourse reports whether a non-elective course with the given code
// already exists anywhere in the plan.
func (p *SchedulePlan) HasCourse(code string) bool {
	if IsElectivePlaceholder(code) {
		return false
	}
	si, _ := p.FindCourse(code)
	return si >= 0
}

// AcademicCreditTotal sums TotalCredits across academic semesters — the
// plan's "current credits" as opposed to the TotalCredits target.
func (p *SchedulePlan) AcademicCreditTotal() int {
	total := 0
	for _, s := range p.Semesters {
		if s.Type == TypeAcademic {
			total += s.TotalCredits
		}
	}
	return total
}

// AddWarning appends a warning, keeping Warnings a non-nil slice.
func (p *SchedulePlan) AddWarning(w string) {
	if p.Warnings == nil {
		p.Warnings = []string{}
	}
	p.Warnings = append(p.Warnings, w)
}
