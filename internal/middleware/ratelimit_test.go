package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitOnlyCountsPosts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := RateLimit(ctx, 0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(method, addr string) int {
		req := httptest.NewRequest(method, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := do(http.MethodPost, "10.0.0.1:1000"); code != http.StatusOK {
			t.Fatalf("post %d status = %d", i, code)
		}
	}
	if code := do(http.MethodPost, "10.0.0.1:1001"); code != http.StatusTooManyRequests {
		t.Errorf("post over burst status = %d, want 429", code)
	}
	if code := do(http.MethodGet, "10.0.0.1:1002"); code != http.StatusOK {
		t.Errorf("get status = %d, want 200", code)
	}
	if code := do(http.MethodPost, "10.0.0.2:1000"); code != http.StatusOK {
		t.Errorf("other ip status = %d, want 200", code)
	}
}

func TestSweepDropsIdleVisitors(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	start := time.Now()
	rl.getLimiter("a", start)
	rl.getLimiter("b", start.Add(9*time.Minute))

	rl.sweep(start.Add(15*time.Minute), 10*time.Minute)
	if _, ok := rl.visitors["a"]; ok {
		t.Error("idle visitor kept")
	}
	if _, ok := rl.visitors["b"]; !ok {
		t.Error("recent visitor dropped")
	}
}

func TestCleanupStopsWithContext(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.cleanup(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup still running after cancel")
	}
}
