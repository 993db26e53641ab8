package prompt

import (
	"regexp"
	"strings"
)

var reTextBlock = regexp.MustCompile("(?ms)^```(?:\\w+)?\\s*([\\s\\S]+?)\\s*```$")

// ExtractOneTextCodeBlock unwraps a fenced code block from model output.
// Returns (contentToUse, foundBlock); without a block the trimmed input is returned.
func ExtractOneTextCodeBlock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	m := reTextBlock.FindStringSubmatch(s)
	if len(m) == 2 {
		return strings.TrimSpace(m[1]), true
	}
	return s, false
}

// CleanMessage strips code fences and surrounding quotes some models add
// despite being told not to.
func CleanMessage(s string) string {
	s, _ = ExtractOneTextCodeBlock(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
