package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// Fallback reasons recorded by IncGenerationFallback.
const (
	ReasonSuspiciousInput = "suspicious_input"
	ReasonUnconfigured    = "llm_unconfigured"
	ReasonLLMError        = "llm_error"
	ReasonRejectedOutput  = "rejected_output"
	ReasonUnparseable     = "unparseable_output"
)

var (
	generationTotal         atomic.Uint64
	generationSucceeded     atomic.Uint64
	sideEffectFailuresTotal atomic.Uint64
	anonymousPromptsEvicted atomic.Uint64

	fallbacks = newLabeledCounter()

	generationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncGeneration counts a generation request that passed input validation.
func IncGeneration() {
	generationTotal.Add(1)
}

// IncGenerationSucceeded counts a generation answered with model output.
func IncGenerationSucceeded() {
	generationSucceeded.Add(1)
}

// IncGenerationFallback counts a generation answered with a canned resume.
func IncGenerationFallback(reason string) {
	fallbacks.Inc(reason)
}

// IncSideEffectFailure counts a swallowed background task failure.
func IncSideEffectFailure() {
	sideEffectFailuresTotal.Add(1)
}

// AddAnonymousPromptsEvicted counts rows removed from the anonymous prompt log.
func AddAnonymousPromptsEvicted(n int) {
	if n > 0 {
		anonymousPromptsEvicted.Add(uint64(n))
	}
}

// ObserveGenerationDurationMs records a generation duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_generation_total", "Generation requests that passed validation", generationTotal.Load())
	writeCounter(&buf, "resume_generation_succeeded_total", "Generations answered with model output", generationSucceeded.Load())
	writeLabeledCounter(&buf, "resume_generation_fallback_total", "Generations answered with a fallback resume", "reason", fallbacks.Snapshot())
	writeCounter(&buf, "side_effect_failures_total", "Background side effects that failed", sideEffectFailuresTotal.Load())
	writeCounter(&buf, "anonymous_prompts_evicted_total", "Anonymous prompt log rows evicted", anonymousPromptsEvicted.Load())
	writeHistogram(&buf, "resume_generation_duration_ms", "Generation duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newLabeledCounter() *labeledCounter {
	return &labeledCounter{values: make(map[string]uint64)}
}

func (l *labeledCounter) Inc(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[label]++
}

func (l *labeledCounter) Snapshot() map[string]uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]uint64, len(l.values))
	for k, v := range l.values {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket that holds it; Render accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help, label string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
