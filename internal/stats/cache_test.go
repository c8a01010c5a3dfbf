package stats

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountCacheHonoursTTL(t *testing.T) {
	calls := 0
	value := 3
	cache := NewCountCache(func(ctx context.Context) (int, error) {
		calls++
		return value, nil
	}, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	value = 7
	now = now.Add(30 * time.Second)
	got, _ = cache.Get(context.Background())
	assert.Equal(t, 3, got)
	assert.Equal(t, 1, calls)

	now = now.Add(31 * time.Second)
	got, _ = cache.Get(context.Background())
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, calls)
}

func TestCountCacheReset(t *testing.T) {
	calls := 0
	cache := NewCountCache(func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}, 0)

	first, _ := cache.Get(context.Background())
	cache.Reset()
	second, _ := cache.Get(context.Background())
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestCountCacheDoesNotCacheErrors(t *testing.T) {
	fail := true
	cache := NewCountCache(func(ctx context.Context) (int, error) {
		if fail {
			return 0, errors.New("db down")
		}
		return 5, nil
	}, time.Hour)

	_, err := cache.Get(context.Background())
	assert.Error(t, err)
	fail = false
	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestResumeCountHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewCountCache(func(ctx context.Context) (int, error) { return 42, nil }, 0)).RegisterRoutes(router.Group("/api"))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/resume-count", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"count":42}`, resp.Body.String())
}
