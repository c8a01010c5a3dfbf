package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = now
	}
	resume.UpdatedAt = now
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resume, 0)
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) ClearOwner(ctx context.Context, id, ownerID string) error {
	return r.update(ctx, id, ownerID, func(resume *Resume) {
		resume.UserID = ""
	})
}

func (r *MemoryRepo) SetPublic(ctx context.Context, id, ownerID string, isPublic bool) error {
	return r.update(ctx, id, ownerID, func(resume *Resume) {
		resume.IsPublic = isPublic
	})
}

func (r *MemoryRepo) update(ctx context.Context, id, ownerID string, fn func(*Resume)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok || resume.UserID == "" || resume.UserID != ownerID {
		return ErrNotFound
	}
	fn(&resume)
	resume.UpdatedAt = time.Now().UTC()
	r.resumes[id] = resume
	return nil
}

func (r *MemoryRepo) ReassignOwner(ctx context.Context, fromUser, toUser string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	moved := 0
	for id, resume := range r.resumes {
		if resume.UserID == fromUser {
			resume.UserID = toUser
			resume.UpdatedAt = time.Now().UTC()
			r.resumes[id] = resume
			moved++
		}
	}
	return moved, nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.resumes), nil
}
