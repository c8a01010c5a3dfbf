package lifedata

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Collection applies the ownership rules to one record type: every
// mutation first reads the row owner, then runs an owner-filtered write.
type Collection[T any, P record[T]] struct {
	Store Store[T]
	now   func() time.Time
}

func NewCollection[T any, P record[T]](store Store[T]) *Collection[T, P] {
	return &Collection[T, P]{Store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (c *Collection[T, P]) List(ctx context.Context, userID string) ([]T, error) {
	return c.Store.List(ctx, userID)
}

func (c *Collection[T, P]) Create(ctx context.Context, userID string, item T) (T, error) {
	items, err := c.CreateMany(ctx, userID, []T{item})
	if err != nil {
		var zero T
		return zero, err
	}
	return items[0], nil
}

// CreateMany validates and inserts items for userID in one write.
func (c *Collection[T, P]) CreateMany(ctx context.Context, userID string, items []T) ([]T, error) {
	now := c.now()
	out := make([]T, len(items))
	for i, item := range items {
		if err := validate.Struct(P(&item)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		m := P(&item).meta()
		m.ID = uuid.NewString()
		m.UserID = userID
		m.CreatedAt = now
		m.UpdatedAt = now
		out[i] = item
	}
	if err := c.Store.Insert(ctx, out...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collection[T, P]) Update(ctx context.Context, userID, id string, item T) (T, error) {
	var zero T
	if err := validate.Struct(P(&item)); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := c.checkOwner(ctx, userID, id); err != nil {
		return zero, err
	}
	m := P(&item).meta()
	m.ID = id
	m.UserID = userID
	return c.Store.Update(ctx, item)
}

func (c *Collection[T, P]) Delete(ctx context.Context, userID, id string) error {
	if err := c.checkOwner(ctx, userID, id); err != nil {
		return err
	}
	return c.Store.Delete(ctx, id, userID)
}

func (c *Collection[T, P]) DeleteAll(ctx context.Context, userID string) (int, error) {
	return c.Store.DeleteByUser(ctx, userID)
}

// checkOwner reports ErrNotFound for malformed, missing and foreign ids alike.
func (c *Collection[T, P]) checkOwner(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	owner, err := c.Store.Owner(ctx, id)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrNotFound
	}
	return nil
}
