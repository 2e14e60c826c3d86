package ratelimit

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RateLimitExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(0, time.Minute) // limit 0 -> always deny
	r := gin.New()
	r.Use(Middleware(lim))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 429, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Rate limit exceeded. Try again later.", body["error"])
	require.Equal(t, "RATE_LIMITED", body["code"])
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Limit"))
	require.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestMiddleware_HeadersCountDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(New(3, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	for _, want := range []string{"2", "1", "0"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		require.Equal(t, 200, w.Code)
		require.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, want, w.Header().Get("X-RateLimit-Remaining"))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, 429, w.Code)
}

func TestUserBasedMiddleware_SeparatesUsers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if u := c.GetHeader("X-User"); u != "" {
			c.Set("userID", u)
		}
		c.Next()
	}, UserBasedMiddleware(New(1, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	send := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, 200, send("alice"))
	require.Equal(t, 429, send("alice"))
	require.Equal(t, 200, send("bob"))
	require.Equal(t, 200, send(""))
	require.Equal(t, 429, send(""))
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	lim := New(2, time.Minute)
	lim.now = func() time.Time { return now }

	require.True(t, lim.Allow("k"))
	now = now.Add(30 * time.Second)
	require.True(t, lim.Allow("k"))
	require.False(t, lim.Allow("k"))
	require.Equal(t, 0, lim.Remaining("k"))
	require.Equal(t, now.Add(30*time.Second), lim.ResetTime("k"))

	now = now.Add(31 * time.Second)
	require.Equal(t, 1, lim.Remaining("k"))
	require.True(t, lim.Allow("k"))

	now = now.Add(2 * time.Minute)
	lim.Cleanup()
	require.Empty(t, lim.requests)

	lim.Allow("k")
	lim.Reset("k")
	require.Equal(t, 2, lim.Remaining("k"))
}

func TestRateLimiter_StartCleanupStopsWithContext(t *testing.T) {
	lim := New(1, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	lim.StartCleanup(ctx, time.Millisecond)
	lim.Allow("k")
	require.Eventually(t, func() bool {
		lim.mu.Lock()
		defer lim.mu.Unlock()
		return len(lim.requests) == 0
	}, time.Second, 5*time.Millisecond)
	cancel()
}

func TestNewWithCleanupDropsIdleKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lim := NewWithCleanup(ctx, 5, 10*time.Millisecond)
	for _, key := range []string{"ip:192.0.2.1", "ip:192.0.2.2", "user:u1"} {
		require.True(t, lim.Allow(key))
	}
	require.Equal(t, 3, lim.Len())

	require.Eventually(t, func() bool { return lim.Len() == 0 }, time.Second, 5*time.Millisecond)
}
