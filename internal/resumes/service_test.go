package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, svc *Service, userID string, public bool) Resume {
	t.Helper()
	resume, err := svc.Save(context.Background(), userID, json.RawMessage(`{"name":"Ada"}`), public)
	require.NoError(t, err)
	return resume
}

func TestSaveRequiresObject(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	for _, body := range []string{`[]`, `"x"`, `{`, ``} {
		_, err := svc.Save(context.Background(), "u1", json.RawMessage(body), false)
		assert.True(t, errors.Is(err, ErrInvalidInput), body)
	}
}

func TestGetVisibility(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	private := seed(t, svc, "u1", false)
	public := seed(t, svc, "u1", true)

	_, err := svc.Get(ctx, private.ID, "u1")
	assert.NoError(t, err)
	_, err = svc.Get(ctx, private.ID, "u2")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, private.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, public.ID, "")
	assert.NoError(t, err)
}

func TestToggleForeignIsForbiddenAndUnchanged(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	resume := seed(t, svc, "owner", false)

	_, err := svc.TogglePublic(ctx, resume.ID, "intruder", nil)
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := repo.Get(ctx, resume.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublic)
}

func TestToggleFlipsOrSets(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	resume := seed(t, svc, "u1", false)

	got, err := svc.TogglePublic(ctx, resume.ID, "u1", nil)
	require.NoError(t, err)
	assert.True(t, got.IsPublic)

	got, err = svc.TogglePublic(ctx, resume.ID, "u1", nil)
	require.NoError(t, err)
	assert.False(t, got.IsPublic)

	yes := true
	got, err = svc.TogglePublic(ctx, resume.ID, "u1", &yes)
	require.NoError(t, err)
	assert.True(t, got.IsPublic)

	_, err = svc.TogglePublic(ctx, "missing", "u1", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClearsOwnerOnly(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	resume := seed(t, svc, "u1", true)

	assert.ErrorIs(t, svc.Delete(ctx, resume.ID, "u2"), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, resume.ID, "u1"))

	stored, err := repo.Get(ctx, resume.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.UserID)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.Delete(ctx, resume.ID, "u1"), ErrForbidden)
}

func TestReassignAll(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()
	seed(t, svc, "u1", false)
	seed(t, svc, "u1", true)
	seed(t, svc, "u2", false)

	moved, err := svc.ReassignAll(ctx, "u1", "anon")
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	list, _ := svc.List(ctx, "anon")
	assert.Len(t, list, 2)
}
