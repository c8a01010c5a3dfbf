package lifedata

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryStore[T any, P record[T]] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func NewMemoryStore[T any, P record[T]]() *MemoryStore[T, P] {
	return &MemoryStore[T, P]{rows: make(map[string]T)}
}

func (s *MemoryStore[T, P]) List(ctx context.Context, userID string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0)
	for _, row := range s.rows {
		if P(&row).meta().UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return P(&out[i]).meta().CreatedAt.After(P(&out[j]).meta().CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore[T, P]) Owner(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[id]
	if !ok {
		return "", ErrNotFound
	}
	return P(&row).meta().UserID, nil
}

func (s *MemoryStore[T, P]) Insert(ctx context.Context, items ...T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.rows[P(&item).meta().ID] = item
	}
	return nil
}

func (s *MemoryStore[T, P]) Update(ctx context.Context, item T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := P(&item).meta()
	existing, ok := s.rows[m.ID]
	if !ok || P(&existing).meta().UserID != m.UserID {
		return zero, ErrNotFound
	}
	m.CreatedAt = P(&existing).meta().CreatedAt
	m.UpdatedAt = time.Now().UTC()
	s.rows[m.ID] = item
	return item, nil
}

func (s *MemoryStore[T, P]) Delete(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok || P(&row).meta().UserID != userID {
		return ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *MemoryStore[T, P]) DeleteByUser(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, row := range s.rows {
		if P(&row).meta().UserID == userID {
			delete(s.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

type MemoryTagStore struct {
	mu   sync.RWMutex
	tags []Tag
}

func NewMemoryTagStore() *MemoryTagStore {
	return &MemoryTagStore{}
}

func (s *MemoryTagStore) List(ctx context.Context, userID string) ([]Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Tag, 0)
	for _, tag := range s.tags {
		if tag.UserID == userID {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (s *MemoryTagStore) Exists(ctx context.Context, userID, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tag := range s.tags {
		if tag.UserID == userID && tag.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryTagStore) Insert(ctx context.Context, tag Tag) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags = append(s.tags, tag)
	return nil
}

func (s *MemoryTagStore) DeleteByName(ctx context.Context, userID, name string) (int, error) {
	return s.deleteWhere(ctx, func(tag Tag) bool {
		return tag.UserID == userID && tag.Name == name
	})
}

func (s *MemoryTagStore) DeleteByUser(ctx context.Context, userID string) (int, error) {
	return s.deleteWhere(ctx, func(tag Tag) bool {
		return tag.UserID == userID
	})
}

func (s *MemoryTagStore) deleteWhere(ctx context.Context, match func(Tag) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.tags[:0]
	deleted := 0
	for _, tag := range s.tags {
		if match(tag) {
			deleted++
			continue
		}
		kept = append(kept, tag)
	}
	s.tags = kept
	return deleted, nil
}
