// Package chat extracts issue fields from free-form chat messages
// (e.g. Teams) using a small fixed set of "Label: value" pattern rules.
package chat

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Trigger tokens that authorize automatic issue creation from a message.
// Matching is case-insensitive and covers the "#"-prefixed forms too.
var triggerTokens = []string{"zprodbug", "teamsjirabugbot"}

var (
	// Label patterns, first match wins. Captures run to end of line; the
	// whitespace after the separator stays on the label's own line so a
	// label with a blank value does not swallow the next line.
	customerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)customer\s+name\s*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)customer\s*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)customer\s*-[ \t]*(.+)`),
	}
	assigneePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)assignee\s*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)assigned\s+to\s*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)assign\s+to\s*:[ \t]*(.+)`),
	}
	priorityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)priority\s*[:\-][ \t]*(.+)`),
	}

	// A captured value stops at punctuation or the next label.
	valueBoundary = regexp.MustCompile(`(?i)[\n,;]|customer\s*[:\-]|#|@`)

	// Standalone P1-P5 token, used when no Priority label is present.
	priorityToken = regexp.MustCompile(`(?i)\bP([1-5])\b`)

	triggerPattern = regexp.MustCompile(`(?i)#?(zprodbug|teamsjirabugbot)`)
)

// priorityNames maps P1-P5 shorthand to Jira priority names.
var priorityNames = map[string]string{
	"1": "Highest",
	"2": "High",
	"3": "Medium",
	"4": "Low",
	"5": "Lowest",
}

// HasTrigger reports whether the message contains a trigger token.
func HasTrigger(message string) bool {
	text := strings.ToLower(strings.TrimSpace(message))
	for _, token := range triggerTokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}

// firstMatch scans the patterns in order and returns the first captured
// value, truncated at the value boundary and trimmed. Values that are empty
// or longer than maxLen are treated as no match.
func firstMatch(text string, patterns []*regexp.Regexp, maxLen int) string {
	for _, pat := range patterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := m[1]
		if loc := valueBoundary.FindStringIndex(value); loc != nil {
			value = value[:loc[0]]
		}
		value = strings.TrimSpace(value)
		if value != "" && utf8.RuneCountInString(value) <= maxLen {
			return value
		}
	}
	return ""
}

// ExtractCustomerName returns the customer mentioned in the message, or "NA".
func ExtractCustomerName(message string) string {
	text := strings.TrimSpace(message)
	if text == "" {
		return "NA"
	}
	if name := firstMatch(text, customerPatterns, 200); name != "" {
		return name
	}
	return "NA"
}

// ExtractAssignee returns the assignee display name mentioned in the
// message, or def when the message carries none.
func ExtractAssignee(message, def string) string {
	text := strings.TrimSpace(message)
	if text == "" {
		return def
	}
	if name := firstMatch(text, assigneePatterns, 100); name != "" {
		return name
	}
	return def
}

// ExtractPriority returns the priority name mentioned in the message. A
// "Priority:" label wins over a standalone P1-P5 token. Empty when neither
// is present.
func ExtractPriority(message string) string {
	text := strings.TrimSpace(message)
	if text == "" {
		return ""
	}
	if name := firstMatch(text, priorityPatterns, 50); name != "" {
		return name
	}
	if m := priorityToken.FindStringSubmatch(text); m != nil {
		return priorityNames[m[1]]
	}
	return ""
}

// CleanMessage strips trigger tokens and blank lines from the message. The
// result is what becomes the issue description.
func CleanMessage(message string) string {
	text := triggerPattern.ReplaceAllString(message, "")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
