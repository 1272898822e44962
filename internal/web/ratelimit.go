package web

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"
)

var errRateLimited = errors.New("rate limit exceeded")

// windowLimiter grants each client IP a fixed number of requests per window.
type windowLimiter struct {
	mu      sync.Mutex
	clients map[string]*budget
	limit   int
	window  time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

type budget struct {
	used  int
	start time.Time
}

func newWindowLimiter(limit int, window time.Duration) *windowLimiter {
	return &windowLimiter{
		clients: make(map[string]*budget),
		limit:   limit,
		window:  window,
		now:     time.Now,
		done:    make(chan struct{}),
	}
}

// rateLimit builds a limiter whose sweeper is stopped by Shutdown.
func (s *Server) rateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	l := newWindowLimiter(limit, window)
	go l.sweep()
	s.limiters = append(s.limiters, l)
	return l.middleware
}

func (l *windowLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.clients[ip]
	if !ok || now.Sub(b.start) > l.window {
		l.clients[ip] = &budget{used: 1, start: now}
		return true
	}
	if b.used >= l.limit {
		return false
	}
	b.used++
	return true
}

// sweep drops clients idle for two windows.
func (l *windowLimiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			cutoff := l.now().Add(-2 * l.window)
			l.mu.Lock()
			for ip, b := range l.clients {
				if b.start.Before(cutoff) {
					delete(l.clients, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *windowLimiter) stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// middleware keys on RemoteAddr, which TrustedRealIP has already rewritten.
func (l *windowLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r.RemoteAddr)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			respondError(w, r, errRateLimited, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
