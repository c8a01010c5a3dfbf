package anonprompts

import "time"

// Prompt is one row of the anonymous prompt log.
type Prompt struct {
	ID        int64     `json:"id"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}
