package anonprompts

import "context"

// Repo stores the anonymous prompt log.
type Repo interface {
	Insert(ctx context.Context, prompt string) error
	// ListOldestFirst returns every row ordered by creation time, oldest first.
	ListOldestFirst(ctx context.Context) ([]Prompt, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int, error)
}
