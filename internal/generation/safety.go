package generation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(forget|ignore|disregard)\b\s+(all\s+)?(the\s+|your\s+)?(previous|prior|above|earlier)\b`),
	regexp.MustCompile(`(?i)system\s+prompt|\byou\s+are\b|\bact\s+as\b|\bpretend\s+to\s+be\b`),
	regexp.MustCompile("(?s)```.*?```"),
	regexp.MustCompile(`(?i)<script|javascript:|onerror\s*=|onclick\s*=`),
	regexp.MustCompile(`(?i)\b(def|function|class|import|export|const|let|var)\s|print\(|console\.`),
	regexp.MustCompile(`(?i)\b(select|insert|update|delete|drop|create|alter)\b`),
	regexp.MustCompile(`[^\x00-\x7F]{10,}`),
}

const shortInputRunes = 10

var shortInputKeywords = []string{"ignore", "forget", "system", "you must"}

// IsSuspicious reports whether text looks like prompt injection, code, SQL
// or a long run of non-ASCII characters. Suspicious text never reaches the
// model.
func IsSuspicious(text string) bool {
	for _, re := range suspiciousPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	if utf8.RuneCountInString(text) < shortInputRunes {
		lower := strings.ToLower(text)
		for _, kw := range shortInputKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
