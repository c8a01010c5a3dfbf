package lifedata

import "context"

// Store persists one owned record type. Update and Delete filter by both id
// and owner and report ErrNotFound when nothing matched.
type Store[T any] interface {
	List(ctx context.Context, userID string) ([]T, error)
	Owner(ctx context.Context, id string) (string, error)
	Insert(ctx context.Context, items ...T) error
	Update(ctx context.Context, item T) (T, error)
	Delete(ctx context.Context, id, userID string) error
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

// TagStore persists skills or hobbies.
type TagStore interface {
	List(ctx context.Context, userID string) ([]Tag, error)
	Exists(ctx context.Context, userID, name string) (bool, error)
	Insert(ctx context.Context, tag Tag) error
	DeleteByName(ctx context.Context, userID, name string) (int, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
}
