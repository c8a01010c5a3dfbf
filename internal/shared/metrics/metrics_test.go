package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulativeOnce(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	var cumulative uint64
	for i := range snap.buckets {
		cumulative += snap.counts[i]
	}
	if cumulative != 2 {
		t.Fatalf("expected 2 observations within buckets, got %d", cumulative)
	}
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
}

func TestRenderIncludesFallbackReasons(t *testing.T) {
	IncGenerationFallback(ReasonSuspiciousInput)
	IncGenerationFallback(ReasonLLMError)

	out := Render()
	if !strings.Contains(out, `resume_generation_fallback_total{reason="suspicious_input"}`) {
		t.Fatalf("expected suspicious_input series, got:\n%s", out)
	}
	if !strings.Contains(out, `resume_generation_fallback_total{reason="llm_error"}`) {
		t.Fatalf("expected llm_error series, got:\n%s", out)
	}
	if !strings.Contains(out, "resume_generation_duration_ms_count") {
		t.Fatalf("expected histogram output")
	}
}
