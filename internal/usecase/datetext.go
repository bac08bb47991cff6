package usecase

import (
	"regexp"
	"strings"
	"time"
)

// Press-release pages end with lines like:
//
//	Ends/Issued at HKT 16:30
//	Wednesday, January 2, 2026
//
// These parsers recover the publish date/time from that tail when the
// LLM extraction left the fields empty. Any parse failure degrades to
// an empty string; it never aborts the article.

var (
	pubDateRe = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4}`)
	pubTimeRe = regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`)
)

// PubDateFromText scans the text from the last line backwards for a
// "January 2, 2026"-style date and returns it as YYYY-MM-DD, or "".
func PubDateFromText(text string) string {
	for _, line := range tailLines(text) {
		m := pubDateRe.FindString(line)
		if m == "" {
			continue
		}
		t, err := time.Parse("January 2, 2006", normalizeSpaces(m))
		if err != nil {
			continue
		}
		return t.Format("2006-01-02")
	}
	return ""
}

// PubTimeFromText scans the text from the last line backwards for an
// "HH:MM" clock time and returns it as HH:MM:SS, or "".
func PubTimeFromText(text string) string {
	for _, line := range tailLines(text) {
		m := pubTimeRe.FindString(line)
		if m == "" {
			continue
		}
		t, err := time.Parse("15:04", m)
		if err != nil {
			continue
		}
		return t.Format("15:04:05")
	}
	return ""
}

// tailLines returns the non-empty lines of text in reverse order.
func tailLines(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
