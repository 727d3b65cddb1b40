package generator

import (
	"regexp"
	"strings"
)

var leadingListNumber = regexp.MustCompile(`^\d+[.)]\s*`)

// CleanTitle normalizes a model-produced title. Surrounding quotes go,
// only the first non-empty line survives, and leading list numbering
// ("1. ", "2) ") is stripped. Returns "" when nothing usable remains.
func CleanTitle(raw string) string {
	title := trimQuotePair(strings.TrimSpace(raw))

	for _, line := range strings.Split(title, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = leadingListNumber.ReplaceAllString(line, "")
		return trimQuotePair(strings.TrimSpace(line))
	}
	return ""
}

// trimQuotePair removes one layer of matching surrounding quotes.
func trimQuotePair(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}

func countWords(s string) int {
	return len(strings.Fields(s))
}
