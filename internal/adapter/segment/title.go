package segment

import (
	"regexp"
	"strings"
	"unicode"
)

var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\.\s+\S`),       // 1. Introduction
	regexp.MustCompile(`^\d+\.\d+\.?\s+\S`), // 1.1 Subsection
	regexp.MustCompile(`^[A-Z][A-Z\s]+$`),   // ALL CAPS
	regexp.MustCompile(`^[A-Z][\w\s]+:$`),   // Title Case with colon
}

const maxHeadingLen = 100

// isHeadingLine reports whether a line looks like a section heading.
func isHeadingLine(line string) bool {
	if len(line) < 3 || len(line) > maxHeadingLen {
		return false
	}
	// Headings do not end mid-sentence.
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") {
		return false
	}
	for _, p := range headingPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	// Short capitalized line with few words reads as a heading.
	words := strings.Fields(line)
	if len(words) > 0 && len(words) <= 8 {
		first := []rune(words[0])
		if unicode.IsUpper(first[0]) && !strings.ContainsAny(line, ".!?") {
			return len(line) <= 60
		}
	}
	return false
}

// sectionTitle picks a title for a section: the detected heading if one was
// found, otherwise the first substantial line of the body, otherwise a
// truncated prefix of the body itself.
func sectionTitle(heading, body string) string {
	if heading != "" {
		return cleanTitle(heading)
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 10 && len(line) < maxHeadingLen {
			if t := cleanTitle(line); t != "" {
				return t
			}
		}
	}

	return cleanTitle(truncateAt(body, 60))
}

var titleTrim = regexp.MustCompile(`^[^\w]+|[^\w]+$`)

func cleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return titleTrim.ReplaceAllString(s, "")
}
