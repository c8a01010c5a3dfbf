package generation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultMaxWords = 80
	DefaultMaxChars = 600
)

// Limits bounds the free-text prompt.
type Limits struct {
	MaxWords int
	MaxChars int
}

func (l Limits) withDefaults() Limits {
	if l.MaxWords <= 0 {
		l.MaxWords = DefaultMaxWords
	}
	if l.MaxChars <= 0 {
		l.MaxChars = DefaultMaxChars
	}
	return l
}

// CountWords counts whitespace-separated tokens, ignoring empty ones.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Validate rejects blank text and text over the word or character limit.
// Nothing is truncated.
func Validate(text string, limits Limits) error {
	limits = limits.withDefaults()
	if strings.TrimSpace(text) == "" {
		return &InputError{Message: "experience is required"}
	}
	if CountWords(text) > limits.MaxWords {
		return &InputError{Message: fmt.Sprintf("experience must be %d words or fewer", limits.MaxWords)}
	}
	if utf8.RuneCountInString(text) > limits.MaxChars {
		return &InputError{Message: fmt.Sprintf("experience must be %d characters or fewer", limits.MaxChars)}
	}
	return nil
}
