package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultTargetCredits is the fallback credential target when the agent
// supplies nothing usable and no academic credits exist to sum.
const DefaultTargetCredits = 128

// DefaultDegree is assumed when the agent omits the credential.
const DefaultDegree = "BS"

// Normalize converts a raw candidate schedule — whatever shape the agent
// produced — into a canonical SchedulePlan. It never fails: unparseable
// fields degrade to best-effort defaults and a warning, because agent
// output is inherently untrustworthy and the system must stay usable even
// when it cannot be fully understood.
//
// After Normalize returns, every invariant in the model holds: semester
// types are reconciled against their contents, duplicate course codes are
// dropped first-wins (electives exempt), and every academic semester's
// TotalCredits equals the sum of its courses' credits.
func Normalize(raw map[string]any) *SchedulePlan {
	if raw == nil {
		raw = map[string]any{}
	}

	p := &SchedulePlan{
		School:         asString(raw["school"]),
		Major:          asString(raw["major"]),
		Degree:         asString(raw["degree"]),
		StartTerm:      asString(raw["startTerm"]),
		GraduationTerm: asString(raw["graduationTerm"]),
		SourceURL:      asString(raw["sourceUrl"]),
		Warnings:       normalizeWarnings(raw["warnings"]),
	}
	if p.Degree == "" {
		p.Degree = DefaultDegree
	}

	p.Semesters = normalizeSemesters(raw["semesters"])
	reconcileTypes(p.Semesters)
	if dropped := dedupeCourses(p.Semesters); len(dropped) > 0 {
		for term, n := range dropped {
			p.AddWarning(fmt.Sprintf("Dropped %d duplicate course(s) from %s", n, term))
		}
	}
	for i := range p.Semesters {
		if p.Semesters[i].Type == TypeAcademic && len(p.Semesters[i].Courses) > 0 {
			p.Semesters[i].RecomputeCredits()
		}
	}

	p.TotalCredits = normalizeTarget(raw["totalCredits"], p)
	if p.Warnings == nil {
		p.Warnings = []string{}
	}
	return p
}

// NormalizeText builds a canonical plan straight from raw agent text: if
// an embedded JSON schedule can be recovered it is normalized, otherwise
// the whole text is treated as a markdown-formatted semester list.
func NormalizeText(text string) *SchedulePlan {
	if obj, ok := ExtractScheduleJSON(text); ok {
		return Normalize(obj)
	}
	return Normalize(map[string]any{"semesters": text})
}

// --- Semester shaping ---

// normalizeSemesters accepts a proper array, a stringified JSON array, or
// markdown prose, in that order of preference.
func normalizeSemesters(v any) []Semester {
	switch sv := v.(type) {
	case nil:
		return []Semester{}
	case []any:
		return semestersFromSlice(sv)
	case []Semester:
		out := make([]Semester, len(sv))
		for i, s := range sv {
			out[i] = s.Clone()
		}
		return out
	case string:
		text := strings.TrimSpace(sv)
		if strings.HasPrefix(text, "[") {
			candidate := stripTrailingComma(text)
			var arr []any
			if err := json.Unmarshal([]byte(candidate), &arr); err == nil {
				return semestersFromSlice(arr)
			}
		}
		return ParseMarkdownSchedule(text)
	default:
		return []Semester{}
	}
}

var trailingComma = regexp.MustCompile(`,\s*\]$`)

func stripTrailingComma(s string) string {
	return trailingComma.ReplaceAllString(s, "]")
}

func semestersFromSlice(items []any) []Semester {
	out := make([]Semester, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := Semester{
			Term:         NormalizeTerm(asString(m["term"])),
			Type:         SemesterType(strings.ReplaceAll(strings.ToLower(asString(m["type"])), "-", "")),
			TotalCredits: asInt(m["totalCredits"], 0),
			CoopNumber:   asInt(m["coopNumber"], 0),
		}
		if courses, ok := m["courses"].([]any); ok {
			s.Courses = coursesFromSlice(courses)
		}
		out = append(out, s)
	}
	return out
}

func coursesFromSlice(items []any) []Course {
	out := make([]Course, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := Course{
			Code:    strings.TrimSpace(asString(m["code"])),
			Name:    strings.TrimSpace(asString(m["name"])),
			Credits: asInt(m["credits"], 0),
		}
		if opts, ok := m["options"].([]any); ok {
			for _, o := range opts {
				if s := asString(o); s != "" {
					c.Options = append(c.Options, s)
				}
			}
		}
		if c.Code == "" && c.Name == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// reconcileTypes fixes mislabeled semesters in place. The agent sometimes
// tags a fully populated academic term as "coop"; the courses win over the
// label. Unknown types are inferred from content: courses mean academic,
// a coop number means co-op, and the default is academic. Co-op semesters
// missing a number get the next sequential placement index.
func reconcileTypes(semesters []Semester) {
	coopSeq := 0
	for i := range semesters {
		s := &semesters[i]
		switch {
		case s.Type == TypeCoop && len(s.Courses) > 0:
			s.Type = TypeAcademic
			s.CoopNumber = 0
		case s.Type == TypeCoop:
			// keep
		case s.Type == TypeAcademic:
			// keep
		case len(s.Courses) > 0:
			s.Type = TypeAcademic
		case s.CoopNumber > 0:
			s.Type = TypeCoop
		default:
			s.Type = TypeAcademic
		}
		if s.Type == TypeAcademic && s.Courses == nil {
			s.Courses = []Course{}
		}
		if s.Type == TypeCoop {
			coopSeq++
			if s.CoopNumber <= 0 {
				s.CoopNumber = coopSeq
			}
			s.Courses = nil
			s.TotalCredits = 0
		}
	}
}

// dedupeCourses drops repeat occurrences of already-seen course codes,
// first occurrence wins. Elective placeholders are never deduplicated.
// Returns per-term drop counts for diagnostics; an already-deduplicated
// schedule comes back untouched, so normalization is idempotent.
func dedupeCourses(semesters []Semester) map[string]int {
	seen := map[string]bool{}
	dropped := map[string]int{}
	for i := range semesters {
		s := &semesters[i]
		if s.Type != TypeAcademic || len(s.Courses) == 0 {
			continue
		}
		kept := s.Courses[:0]
		for _, c := range s.Courses {
			key := NormalizeCode(c.Code)
			if !IsElectivePlaceholder(c.Code) && seen[key] {
				dropped[s.Term]++
				continue
			}
			seen[key] = true
			kept = append(kept, c)
		}
		s.Courses = kept
	}
	return dropped
}

// --- Field coercion ---

// normalizeWarnings coerces the warnings field into a string slice. A
// string is tried as a JSON array first, then split into bullet lines; if
// nothing survives, the original string becomes the single warning.
func normalizeWarnings(v any) []string {
	switch wv := v.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string(nil), wv...)
	case []any:
		out := []string{}
		for _, item := range wv {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		return warningsFromString(wv)
	default:
		return []string{}
	}
}

var bulletPrefix = regexp.MustCompile(`^(?:[-•*]|\d+\.)\s*`)

func warningsFromString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}
	var arr []string
	if err := json.Unmarshal([]byte(trimmed), &arr); err == nil {
		return arr
	}
	out := []string{}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		line = bulletPrefix.ReplaceAllString(line, "")
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return []string{trimmed}
	}
	return out
}

// normalizeTarget resolves the plan-level credit target: the declared
// value if it parses as an integer, else the sum of academic semester
// credits, else the conventional default.
func normalizeTarget(v any, p *SchedulePlan) int {
	if n := asInt(v, 0); n > 0 {
		return n
	}
	if sum := p.AcademicCreditTotal(); sum > 0 {
		return sum
	}
	return DefaultTargetCredits
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// asInt accepts the shapes JSON decoding actually produces plus numeric
// strings like "128" or "128 credits".
func asInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if m := firstInt.FindString(strings.TrimSpace(n)); m != "" {
			if i, err := strconv.Atoi(m); err == nil {
				return i
			}
		}
	}
	return def
}

var firstInt = regexp.MustCompile(`-?\d+`)
