package plan

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// Line patterns for the prose schedule convention the agent emits.
// Compiled once at package load, same as the memory store's matchers.
var (
	// **Year 2**
	yearHeaderLine = regexp.MustCompile(`^\*\*\s*Year\s+\d+\s*\*\*`)
	// **Summer 2026: Co-op 1**
	coopLine = regexp.MustCompile(`(?i)^\*\*\s*(.+?)\s*:\s*Co-?op\s+(\d+)\s*\*\*`)
	// - Fall 2025 (16 credits):
	semesterHeaderLine = regexp.MustCompile(`^-\s*(.+?)\s*\(\s*(\d+)\s*credits?\s*\)\s*:`)
	// - CS 1800: Discrete Structures (4)
	courseStrictLine = regexp.MustCompile(`^-\s*([A-Za-z]{2,4}\s?\d{4})\s*:\s*(.+?)\s*\(\s*(\d+)\s*(?:credits?)?\s*\)\s*$`)
	// Looser code shape: 2-5 letters, 3-4 digits.
	courseLooseLine = regexp.MustCompile(`^-\s*([A-Za-z]{2,5}\s?\d{3,4})\s*:\s*(.+?)\s*\(\s*(\d+)\s*(?:credits?)?\s*\)\s*$`)
	// - Science Elective (4) — no code at all; recorded as an ELEC slot.
	courseGenericLine = regexp.MustCompile(`^-\s*(.+?)\s*\(\s*(\d+)\s*(?:credits?)?\s*\)\s*$`)
	// Used to reject generic matches whose label is actually a code+name pair.
	codeLikeLabel = regexp.MustCompile(`^[A-Za-z]{2,5}\s?\d{3,4}\b`)
)

// ParseMarkdownSchedule turns an agent's prose-formatted plan into an
// ordered semester sequence. The parser is deliberately tolerant: lines it
// does not recognize are dropped silently, and course lines are only
// attempted while an academic semester is open. Header-claimed credit
// totals are discarded — every academic semester's TotalCredits is
// recomputed from the courses that actually parsed.
func ParseMarkdownSchedule(text string) []Semester {
	var semesters []Semester
	var current *Semester

	flush := func() {
		if current != nil {
			current.RecomputeCredits()
			semesters = append(semesters, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if yearHeaderLine.MatchString(line) {
			continue
		}

		// Co-op lines are self-contained: close whatever is open, then
		// emit the co-op semester directly.
		if m := coopLine.FindStringSubmatch(line); m != nil {
			flush()
			n, _ := strconv.Atoi(m[2])
			semesters = append(semesters, NewCoop(NormalizeTerm(m[1]), n))
			continue
		}

		if m := semesterHeaderLine.FindStringSubmatch(line); m != nil {
			flush()
			claimed, _ := strconv.Atoi(m[2])
			current = &Semester{
				Term:         NormalizeTerm(m[1]),
				Type:         TypeAcademic,
				Courses:      []Course{},
				TotalCredits: claimed, // overwritten by flush
			}
			continue
		}

		if current == nil {
			continue
		}

		if c, ok := parseCourseLine(line); ok {
			current.Courses = append(current.Courses, c)
		}
	}

	flush()
	return semesters
}

// parseCourseLine tries the three course patterns from strictest to
// loosest. The generic pattern only applies when the label does not look
// like a course code, so a typo'd code doesn't silently become an
// elective with the code folded into its name.
func parseCourseLine(line string) (Course, bool) {
	if m := courseStrictLine.FindStringSubmatch(line); m != nil {
		credits, _ := strconv.Atoi(m[3])
		return Course{Code: strings.ToUpper(m[1]), Name: m[2], Credits: credits}, true
	}
	if m := courseLooseLine.FindStringSubmatch(line); m != nil {
		credits, _ := strconv.Atoi(m[3])
		return Course{Code: strings.ToUpper(m[1]), Name: m[2], Credits: credits}, true
	}
	if m := courseGenericLine.FindStringSubmatch(line); m != nil {
		label := m[1]
		if codeLikeLabel.MatchString(label) {
			return Course{}, false
		}
		credits, _ := strconv.Atoi(m[2])
		return Course{Code: CodeElec, Name: label, Credits: credits}, true
	}
	return Course{}, false
}
