package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders_SetsAllHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"X-XSS-Protection":       "0",
	}
	for name, want := range headers {
		assert.Equal(t, want, rec.Header().Get(name), name)
	}
	assert.True(t, strings.Contains(rec.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'"))
}

func TestCORS_Preflight(t *testing.T) {
	h := New(&mockDB{}, "https://stinex.de")
	rec := httptest.NewRecorder()
	h.CORS(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/contact", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://stinex.de", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Admin-Key")
}

func TestCORS_WildcardWithoutCredentials(t *testing.T) {
	h := New(&mockDB{}, "*")
	rec := httptest.NewRecorder()
	h.CORS(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func newTestLimiter(t *testing.T, perMinute int, now time.Time) *RateLimiter {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	rl := NewRateLimiter(ctx, perMinute)
	rl.now = func() time.Time { return now }
	return rl
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	rl := newTestLimiter(t, 3, time.Now())
	h := rl.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/contact", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	req := httptest.NewRequest("POST", "/api/contact", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	resp := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "rate_limited", resp.Error)
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := newTestLimiter(t, 1, time.Now())
	h := rl.Middleware(okHandler())

	for _, ip := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest("POST", "/", nil)
		req.RemoteAddr = ip
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, ip)
	}
}

func TestRateLimiter_Refills(t *testing.T) {
	now := time.Now()
	rl := newTestLimiter(t, 1, now)
	h := rl.Middleware(okHandler())

	send := func() int {
		req := httptest.NewRequest("POST", "/", nil)
		req.RemoteAddr = "10.0.0.1:1"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	require.Equal(t, http.StatusOK, send())
	require.Equal(t, http.StatusTooManyRequests, send())

	rl.now = func() time.Time { return now.Add(61 * time.Second) }
	assert.Equal(t, http.StatusOK, send())
}

func TestRateLimiter_ClientIPFromForwardedFor(t *testing.T) {
	rl := newTestLimiter(t, 1, time.Now())

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "127.0.0.1:80"
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 203.0.113.7")
	assert.Equal(t, "203.0.113.7", rl.clientIP(req))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "127.0.0.1", rl.clientIP(req))
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Now()
	rl := newTestLimiter(t, 5, now)
	rl.limiterFor("10.0.0.1", now.Add(-2*time.Minute))
	rl.limiterFor("10.0.0.2", now)

	rl.evict(now.Add(-time.Minute))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "10.0.0.1")
	assert.Contains(t, rl.clients, "10.0.0.2")
}
