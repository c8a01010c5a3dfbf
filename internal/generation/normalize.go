package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"resume-builder/internal/shared/metrics"
)

var (
	fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	greedyJSON = regexp.MustCompile(`(?s)\{.*\}`)
)

const emptySentinel = "{0}"

var refusalMarkers = []string{"error", "cannot", "invalid"}

// Normalize turns raw model text into a response. It never repairs JSON:
// refusals map to the generic resume, unparseable output to the sample
// resume. The second return value is the fallback reason, empty on success.
func Normalize(raw string, lang Lang) (Result, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == emptySentinel || containsRefusal(trimmed) {
		return Result{Resume: GenericResume(lang), Fallback: true}, metrics.ReasonRejectedOutput
	}

	span, ok := ExtractJSON(trimmed)
	if !ok || !json.Valid([]byte(span)) {
		return Result{Resume: SampleResume(lang), Fallback: true}, metrics.ReasonUnparseable
	}
	return Result{Resume: json.RawMessage(span), Fallback: false}, ""
}

// ExtractJSON locates a JSON span in model text: a ```json fenced block
// first, then the widest {...} span.
func ExtractJSON(text string) (string, bool) {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := greedyJSON.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

func containsRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range refusalMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
