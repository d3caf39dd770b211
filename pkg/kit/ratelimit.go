package kit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// IPRateLimiter is a sliding-window limiter keyed by client IP.
//
// X-Forwarded-For is ignored unless TrustForwardedFor is set; only enable it
// behind a proxy that overwrites the header.
type IPRateLimiter struct {
	TrustForwardedFor bool

	mu        sync.Mutex
	limit     int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Middleware passes everything through when the limit is not positive.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	if l.limit <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientIP(r)) {
			w.Header().Set("Retry-After", retryAfter(l.window))
			WriteError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Allow records a hit for ip and reports whether it is within the limit.
func (l *IPRateLimiter) Allow(ip string) bool {
	now := l.now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	ts := prune(l.hits[ip], cutoff)
	if len(ts) >= l.limit {
		l.hits[ip] = ts
		return false
	}

	l.hits[ip] = append(ts, now)
	return true
}

// sweep drops every ip with no hits inside the window.
func (l *IPRateLimiter) sweep(cutoff time.Time) {
	for ip, ts := range l.hits {
		if ts = prune(ts, cutoff); len(ts) == 0 {
			delete(l.hits, ip)
		} else {
			l.hits[ip] = ts
		}
	}
}

func (l *IPRateLimiter) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	n := 0
	for _, t := range ts {
		if t.After(cutoff) {
			ts[n] = t
			n++
		}
	}
	return ts[:n]
}

func retryAfter(d time.Duration) string {
	s := int(d / time.Second)
	if s < 1 {
		s = 1
	}
	return strconv.Itoa(s)
}

func (l *IPRateLimiter) clientIP(r *http.Request) string {
	if l.TrustForwardedFor {
		if ip := firstForwardedFor(r.Header.Get("X-Forwarded-For")); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}

	return r.RemoteAddr
}

func firstForwardedFor(xff string) string {
	if xff == "" {
		return ""
	}

	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}
