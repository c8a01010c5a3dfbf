package resumes

import "context"

// Repo stores resumes. Mutations that take an owner only touch rows still
// owned by that user and report ErrNotFound otherwise.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	Get(ctx context.Context, id string) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	ClearOwner(ctx context.Context, id, ownerID string) error
	SetPublic(ctx context.Context, id, ownerID string, isPublic bool) error
	// ReassignOwner moves every resume of fromUser to toUser.
	ReassignOwner(ctx context.Context, fromUser, toUser string) (int, error)
	Count(ctx context.Context) (int, error)
}
