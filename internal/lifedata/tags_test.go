package lifedata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsRejectDuplicatePerUser(t *testing.T) {
	tags := NewTags(NewMemoryTagStore())
	ctx := context.Background()

	_, err := tags.Add(ctx, "u1", "Go")
	require.NoError(t, err)
	_, err = tags.Add(ctx, "u1", " Go ")
	assert.ErrorIs(t, err, ErrDuplicate)
	_, err = tags.Add(ctx, "u2", "Go")
	assert.NoError(t, err)

	list, err := tags.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTagsRemoveByValue(t *testing.T) {
	tags := NewTags(NewMemoryTagStore())
	ctx := context.Background()
	_, _ = tags.Add(ctx, "u1", "Chess")
	_, _ = tags.Add(ctx, "u2", "Chess")

	require.NoError(t, tags.Remove(ctx, "u1", "Chess"))
	assert.ErrorIs(t, tags.Remove(ctx, "u1", "Chess"), ErrNotFound)
	assert.ErrorIs(t, tags.Remove(ctx, "u1", " "), ErrInvalidInput)

	other, _ := tags.List(ctx, "u2")
	assert.Len(t, other, 1)
}
