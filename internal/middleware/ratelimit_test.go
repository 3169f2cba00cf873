package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMemoryLimiterWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("hit %d should pass", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("third hit in the window must be refused")
	}
	if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
		t.Fatal("keys are counted separately")
	}

	now = now.Add(time.Minute + time.Second)
	if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
		t.Fatal("a new window starts after the old one expires")
	}
}

func TestMemoryLimiterSweepsExpiredKeys(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(5, time.Minute)
	l.now = func() time.Time { return now }
	l.lastSweep = now
	ctx := context.Background()

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		_, _ = l.Allow(ctx, ip)
	}
	now = now.Add(30 * time.Second)
	_, _ = l.Allow(ctx, "10.0.0.4")
	if len(l.visitors) != 4 {
		t.Fatalf("visitors = %d, want 4", len(l.visitors))
	}

	now = now.Add(61 * time.Second)
	_, _ = l.Allow(ctx, "10.0.0.5")
	if len(l.visitors) != 1 {
		t.Fatalf("expired keys kept: %d visitors", len(l.visitors))
	}
	if _, ok := l.visitors["10.0.0.5"]; !ok {
		t.Fatal("current key missing after sweep")
	}
}

func TestMemoryLimiterDefaults(t *testing.T) {
	l := NewMemoryLimiter(0, 0)
	if l.limit != 60 || l.window != time.Minute {
		t.Fatalf("limit = %d, window = %v", l.limit, l.window)
	}

	ctx := context.Background()
	for i := 0; i < 60; i++ {
		if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatalf("hit %d refused", i+1)
		}
	}
	if ok, _ := l.Allow(ctx, "1.2.3.4"); ok {
		t.Fatal("hit 61 should be refused")
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func rateLimitedRouter(l Limiter) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(l, slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRateLimitMiddleware(t *testing.T) {
	r := rateLimitedRouter(NewMemoryLimiter(1, time.Minute))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first = %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second = %d", second.Code)
	}
	if code := errorCode(t, second); code != "rate_limited" {
		t.Fatalf("code = %s", code)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	w := httptest.NewRecorder()
	rateLimitedRouter(failingLimiter{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
