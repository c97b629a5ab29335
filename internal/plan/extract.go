package plan

import (
	"encoding/json"
	"regexp"
	"strings"
)

// answerFieldPattern finds an escaped JSON payload inside an
// `"answer": "..."` envelope without parsing the whole surrounding text.
var answerFieldPattern = regexp.MustCompile(`"answer"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// ExtractScheduleJSON recovers a schedule object from raw agent text. The
// agent may emit the object bare, wrap it in explanatory prose, or escape
// it as a string inside another JSON envelope, so three strategies are
// tried in order and the first success wins:
//
//  1. parse the whole text as JSON, unwrapping a stringified "answer" field
//  2. regex out an escaped "answer" payload and unescape it
//  3. scan for a literal {"school" opening brace and balance braces
//
// A candidate is accepted only if it has both "school" and "semesters"
// keys. Every strategy swallows its own parse failures; the function never
// errors, it just reports no match.
func ExtractScheduleJSON(text string) (map[string]any, bool) {
	if obj, ok := extractWholeJSON(text); ok {
		return obj, true
	}
	if obj, ok := extractAnswerField(text); ok {
		return obj, true
	}
	if obj, ok := extractBraceScan(text); ok {
		return obj, true
	}
	return nil, false
}

// looksLikeSchedule is the acceptance check shared by all strategies.
func looksLikeSchedule(obj map[string]any) bool {
	_, hasSchool := obj["school"]
	_, hasSemesters := obj["semesters"]
	return hasSchool && hasSemesters
}

// Strategy 1: the text is itself JSON, possibly an envelope whose "answer"
// field is a stringified schedule.
func extractWholeJSON(text string) (map[string]any, bool) {
	var outer map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &outer); err != nil {
		return nil, false
	}
	if answer, ok := outer["answer"]; ok {
		if s, ok := answer.(string); ok {
			var inner map[string]any
			if err := json.Unmarshal([]byte(s), &inner); err == nil && looksLikeSchedule(inner) {
				return inner, true
			}
			return nil, false
		}
		if m, ok := answer.(map[string]any); ok && looksLikeSchedule(m) {
			return m, true
		}
	}
	if looksLikeSchedule(outer) {
		return outer, true
	}
	return nil, false
}

// Strategy 2: find `"answer": "<escaped JSON>"` in otherwise unparseable
// text, undo the common escapes, and parse the payload.
func extractAnswerField(text string) (map[string]any, bool) {
	m := answerFieldPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	payload := strings.NewReplacer(`\n`, "\n", `\"`, `"`, `\\`, `\`).Replace(m[1])
	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil, false
	}
	if !looksLikeSchedule(obj) {
		return nil, false
	}
	return obj, true
}

// Strategy 3: the schedule object sits bare somewhere in prose. Find its
// opening brace by the {"school" marker, then balance braces to the
// matching close and parse the span.
func extractBraceScan(text string) (map[string]any, bool) {
	start := strings.Index(text, `{"school"`)
	if start < 0 {
		start = strings.Index(text, `{ "school"`)
	}
	if start < 0 {
		return nil, false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				var obj map[string]any
				if err := json.Unmarshal([]byte(text[start:i+1]), &obj); err != nil {
					return nil, false
				}
				if !looksLikeSchedule(obj) {
					return nil, false
				}
				return obj, true
			}
		}
	}
	return nil, false
}
