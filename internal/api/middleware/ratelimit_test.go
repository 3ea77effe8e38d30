package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func serve(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPut, "/api/auth", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:5678"))
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "10.0.0.1:1234"), "burst exhausted")

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, serve(h, "10.0.0.2:1234"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:1234"), "token refilled")
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, serve(h, "10.0.0.1:1234"))
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(5, 5)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	now = now.Add(10 * time.Minute)
	rl.allow("10.0.0.2")

	assert.Equal(t, 1, rl.Cleanup(5*time.Minute))
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "10.0.0.2")
}
