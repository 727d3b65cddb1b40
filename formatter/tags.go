package formatter

import "strings"

const maxTags = 5

// topicTags maps topic keywords to extra tags, applied after the
// profile's base set.
var topicTags = []struct {
	keyword string
	tags    []string
}{
	{"remote", []string{"remote-work", "workplace"}},
	{"health", []string{"healthcare", "digital-health"}},
	{"cyber", []string{"cybersecurity", "privacy"}},
	{"sustain", []string{"sustainability", "green-tech"}},
}

// NormalizeTags merges the profile tag set with topic-derived extras,
// lowercases everything, drops duplicates, and caps the list at five.
// Base tags keep priority over derived ones.
func NormalizeTags(base []string, topic string) []string {
	lower := strings.ToLower(topic)

	merged := make([]string, 0, len(base)+4)
	merged = append(merged, base...)
	for _, t := range topicTags {
		if strings.Contains(lower, t.keyword) {
			merged = append(merged, t.tags...)
		}
	}

	seen := make(map[string]struct{}, len(merged))
	out := make([]string, 0, maxTags)
	for _, tag := range merged {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

// ReadingMinutes estimates reading time at 200 words per minute,
// at least one minute.
func ReadingMinutes(body string) int {
	return len(strings.Fields(body))/200 + 1
}
