package lifedata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tags manages a per-user set of distinct names. Uniqueness is checked
// before insert rather than enforced by the store.
type Tags struct {
	Store TagStore
	now   func() time.Time
}

func NewTags(store TagStore) *Tags {
	return &Tags{Store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (t *Tags) List(ctx context.Context, userID string) ([]Tag, error) {
	return t.Store.List(ctx, userID)
}

func (t *Tags) Add(ctx context.Context, userID, name string) (Tag, error) {
	tag := Tag{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		CreatedAt: t.now(),
	}
	if err := validate.Struct(&tag); err != nil {
		return Tag{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	exists, err := t.Store.Exists(ctx, userID, tag.Name)
	if err != nil {
		return Tag{}, err
	}
	if exists {
		return Tag{}, ErrDuplicate
	}
	if err := t.Store.Insert(ctx, tag); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

func (t *Tags) Remove(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidInput
	}
	deleted, err := t.Store.DeleteByName(ctx, userID, name)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *Tags) DeleteAll(ctx context.Context, userID string) (int, error) {
	return t.Store.DeleteByUser(ctx, userID)
}
