package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/perdiem-planner/backend/internal/middleware"
)

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.RemoteAddr = addr
	return req
}

// TestRateLimiter_BurstThenReject verifies that a client gets its burst and
// is then turned away with 429 and a Retry-After header.
func TestRateLimiter_BurstThenReject(t *testing.T) {
	h := middleware.NewRateLimiter(60, 2).Handler(trivialHandler)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.0.2.1:5000"))
		require.Equal(t, http.StatusOK, rec.Code, "request %d is within the burst", i+1)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.0.2.1:5001"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "the port does not make a new client")
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limited")
}

// TestRateLimiter_ClientsAreIndependent verifies that one client's usage
// does not count against another.
func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	h := middleware.NewRateLimiter(60, 1).Handler(trivialHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.0.2.1:5000"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("198.51.100.7:5000"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiter_DisabledWhenZero(t *testing.T) {
	l := middleware.NewRateLimiter(0, 0)

	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("192.0.2.1"))
	}
}
