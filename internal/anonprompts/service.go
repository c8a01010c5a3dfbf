// Package anonprompts keeps a capped log of prompts submitted by
// unauthenticated callers.
package anonprompts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

const DefaultCap = 100

// Service appends to the log and evicts rows beyond Cap.
type Service struct {
	Repo Repo
	Cap  int
}

func NewService(repo Repo, limit int) *Service {
	if limit <= 0 {
		limit = DefaultCap
	}
	return &Service{Repo: repo, Cap: limit}
}

// Record inserts prompt and then deletes the oldest rows beyond the cap.
// Insert and eviction are separate statements; two concurrent calls may
// each compute the excess from their own snapshot.
func (s *Service) Record(ctx context.Context, prompt string) error {
	if s == nil || s.Repo == nil {
		return errors.New("anonymous prompt log not configured")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil
	}
	if err := s.Repo.Insert(ctx, prompt); err != nil {
		return fmt.Errorf("insert anonymous prompt: %w", err)
	}

	rows, err := s.Repo.ListOldestFirst(ctx)
	if err != nil {
		return fmt.Errorf("list anonymous prompts: %w", err)
	}
	excess := len(rows) - s.Cap
	if excess <= 0 {
		return nil
	}
	ids := make([]int64, 0, excess)
	for _, row := range rows[:excess] {
		ids = append(ids, row.ID)
	}
	deleted, err := s.Repo.DeleteByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("evict anonymous prompts: %w", err)
	}
	metrics.AddAnonymousPromptsEvicted(deleted)
	telemetry.Info("anonymous_prompts.evicted", map[string]any{
		"deleted": deleted,
		"cap":     s.Cap,
	})
	return nil
}
