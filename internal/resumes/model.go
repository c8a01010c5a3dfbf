package resumes

import (
	"encoding/json"
	"time"
)

// Resume is a saved resume document. UserID is empty once the owner deleted
// it or their account.
type Resume struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId,omitempty"`
	Resume    json.RawMessage `json:"resume"`
	IsPublic  bool            `json:"isPublic"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
