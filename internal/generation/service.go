package generation

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/tasks"
	"resume-builder/internal/shared/telemetry"
)

// PromptLog records raw prompts from anonymous callers.
type PromptLog interface {
	Record(ctx context.Context, prompt string) error
}

// ExperienceSink stores experiences extracted for a user.
type ExperienceSink interface {
	AddExtracted(ctx context.Context, userID string, items []ExtractedExperience) error
}

// Service runs the generation pipeline.
type Service struct {
	// LLM is nil when no provider is configured.
	LLM         llm.Client
	Prompts     PromptLog
	Experiences ExperienceSink
	Tasks       *tasks.Runner
	Limits      Limits
}

// Request is a single generate-resume call. UserID is empty for anonymous
// callers.
type Request struct {
	Text   string
	Lang   Lang
	UserID string
}

// Extraction is the outcome of extracting experiences from free text.
type Extraction struct {
	Experiences []ExtractedExperience `json:"experiences"`
	Fallback    bool                  `json:"fallback"`
}

// Generate validates the request and returns a resume. Only validation
// fails hard; every later failure degrades to a fallback resume. Side
// effects are started as detached tasks and never affect the result.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	if err := Validate(req.Text, s.Limits); err != nil {
		return Result{}, err
	}
	metrics.IncGeneration()
	start := time.Now()

	text := strings.TrimSpace(req.Text)
	suspicious := IsSuspicious(text)
	s.spawnSideEffects(ctx, req.UserID, text, suspicious)

	result, reason := s.generate(ctx, text, req.Lang, suspicious)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveGenerationDurationMs(elapsed)
	if result.Fallback {
		metrics.IncGenerationFallback(reason)
	} else {
		metrics.IncGenerationSucceeded()
	}

	telemetry.Info("generation.complete", map[string]any{
		"request_id":      tasks.RequestIDFromContext(ctx),
		"user_id":         req.UserID,
		"lang":            string(req.Lang),
		"prompt_sha":      telemetry.Fingerprint(text),
		"fallback":        result.Fallback,
		"fallback_reason": reason,
		"duration_ms":     elapsed,
	})
	return result, nil
}

func (s *Service) generate(ctx context.Context, text string, lang Lang, suspicious bool) (Result, string) {
	if suspicious {
		return Result{Resume: GenericResume(lang), Fallback: true}, metrics.ReasonSuspiciousInput
	}
	if s.LLM == nil {
		return Result{Resume: SampleResume(lang), Fallback: true}, metrics.ReasonUnconfigured
	}
	raw, err := s.LLM.Complete(ctx, BuildResumePrompt(text, lang))
	if err != nil {
		telemetry.Warn("generation.llm_failed", map[string]any{
			"request_id": tasks.RequestIDFromContext(ctx),
			"error":      err,
		})
		reason := metrics.ReasonLLMError
		if errors.Is(err, llm.ErrUnconfigured) {
			reason = metrics.ReasonUnconfigured
		}
		return Result{Resume: SampleResume(lang), Fallback: true}, reason
	}
	return Normalize(raw, lang)
}

func (s *Service) spawnSideEffects(ctx context.Context, userID, text string, suspicious bool) {
	if s.Tasks == nil {
		return
	}
	if userID == "" {
		if s.Prompts == nil {
			return
		}
		s.Tasks.Go(ctx, "anonymous_prompt.record", func(ctx context.Context) error {
			return s.Prompts.Record(ctx, text)
		})
		return
	}
	if suspicious || s.LLM == nil || s.Experiences == nil {
		return
	}
	s.Tasks.Go(ctx, "experiences.extract", func(ctx context.Context) error {
		items, err := s.extract(ctx, text)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return s.Experiences.AddExtracted(ctx, userID, items)
	})
}

// Extract pulls experience entries out of free text for the experiences
// endpoint. Suspicious input and model failures yield an empty fallback
// result; a missing provider is ErrUnavailable.
func (s *Service) Extract(ctx context.Context, text string) (Extraction, error) {
	if err := Validate(text, s.Limits); err != nil {
		return Extraction{}, err
	}
	text = strings.TrimSpace(text)
	if IsSuspicious(text) {
		return Extraction{Experiences: []ExtractedExperience{}, Fallback: true}, nil
	}
	if s.LLM == nil {
		return Extraction{}, ErrUnavailable
	}
	items, err := s.extract(ctx, text)
	if err != nil {
		if errors.Is(err, llm.ErrUnconfigured) {
			return Extraction{}, ErrUnavailable
		}
		telemetry.Warn("extraction.failed", map[string]any{
			"request_id": tasks.RequestIDFromContext(ctx),
			"error":      err,
		})
		return Extraction{Experiences: []ExtractedExperience{}, Fallback: true}, nil
	}
	return Extraction{Experiences: items, Fallback: false}, nil
}

func (s *Service) extract(ctx context.Context, text string) ([]ExtractedExperience, error) {
	raw, err := s.LLM.Complete(ctx, BuildExtractionPrompt(text))
	if err != nil {
		return nil, err
	}
	return ParseExperiences(raw)
}
