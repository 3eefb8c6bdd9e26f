package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAllowsWithinBudget(t *testing.T) {
	store := NewMemoryStore(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := store.Allow(context.Background(), "203.0.113.9")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := store.Allow(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request in the window is rejected")

	allowed, err = store.Allow(context.Background(), "198.51.100.7")
	require.NoError(t, err)
	assert.True(t, allowed, "other clients are unaffected")
}

func TestMemoryStoreResetsAfterWindow(t *testing.T) {
	store := NewMemoryStore(1, time.Minute)
	current := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	allowed, _ := store.Allow(context.Background(), "203.0.113.9")
	assert.True(t, allowed)
	allowed, _ = store.Allow(context.Background(), "203.0.113.9")
	assert.False(t, allowed)

	current = current.Add(61 * time.Second)
	allowed, _ = store.Allow(context.Background(), "203.0.113.9")
	assert.True(t, allowed, "window expired, count reset")
}

func TestMemoryStoreEvictsExpiredWindows(t *testing.T) {
	store := NewMemoryStore(5, time.Minute)
	current := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Allow(context.Background(), "a")
	store.Allow(context.Background(), "b")

	current = current.Add(2 * time.Minute)
	store.Allow(context.Background(), "c")

	assert.Len(t, store.windows, 1, "expired windows evicted on sweep")
}

func TestRateLimitMiddlewareRejectsWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := NewMemoryStore(1, time.Minute)

	r := gin.New()
	r.Use(RateLimit(store, nil, nil))
	r.POST("/api/submit-form", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/submit-form", nil)
	r.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/submit-form", nil)
	r.ServeHTTP(second, req)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), `"success":false`)
}
