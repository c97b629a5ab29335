package plan

import (
	"regexp"
	"strings"
)

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// NormalizeTerm canonicalizes a free-form term label to "Season Year"
// (season title-cased, year four digits). Combined labels like
// "Summer/Fall 2028" keep the first season plus whichever four-digit year
// appears anywhere in the string. Malformed input is normalized
// best-effort, never rejected — there is no season or year validation
// beyond this syntactic pass.
func NormalizeTerm(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return term
	}

	if strings.Contains(term, "/") {
		season := strings.TrimSpace(strings.SplitN(term, "/", 2)[0])
		// The season part may itself carry trailing words; keep the first token.
		if fields := strings.Fields(season); len(fields) > 0 {
			season = fields[0]
		}
		year := ""
		if m := yearPattern.FindString(term); m != "" {
			year = m
		}
		if year == "" {
			return titleCase(season)
		}
		if season == "" {
			return year
		}
		return titleCase(season) + " " + year
	}

	fields := strings.Fields(term)
	if len(fields) == 1 {
		return titleCase(fields[0])
	}
	return titleCase(fields[0]) + " " + fields[1]
}

// titleCase uppercases the first letter and lowercases the rest, so
// "fall", "FALL", and "Fall" all normalize identically.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
