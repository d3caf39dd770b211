package kit

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_SlidingWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "limits are per ip")

	now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("10.0.0.1"))
}

func TestIPRateLimiter_DisabledPassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := NewIPRateLimiter(0, time.Minute).Middleware(next)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}
}

func TestIPRateLimiter_RejectsWithRetryAfter(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})
	h := NewIPRateLimiter(1, 30*time.Second).Middleware(next)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"too many requests"}`, rec.Body.String())
}

func TestIPRateLimiter_ClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	req.Header.Set("X-Forwarded-For", " 198.51.100.7 ,192.0.2.1")

	l := NewIPRateLimiter(1, time.Minute)
	assert.Equal(t, "192.0.2.1", l.clientIP(req), "forwarded header ignored by default")

	l.TrustForwardedFor = true
	assert.Equal(t, "198.51.100.7", l.clientIP(req))

	req.Header.Del("X-Forwarded-For")
	assert.Equal(t, "192.0.2.1", l.clientIP(req))
}

func TestIPRateLimiter_SpoofedForwardedForStillLimited(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})
	l := NewIPRateLimiter(1, time.Minute)
	h := l.Middleware(next)

	codes := make([]int, 0, 3)
	for _, xff := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1, l.tracked())
}

func TestIPRateLimiter_ForgetsIdleIPs(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewIPRateLimiter(5, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		l.Allow("198.51.100." + strconv.Itoa(i))
	}
	assert.Equal(t, 100, l.tracked())

	now = now.Add(2 * time.Minute)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.Equal(t, 1, l.tracked())
}
