package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/eventorbit/server/internal/api/respond"
	"github.com/eventorbit/server/internal/config"
	"golang.org/x/time/rate"
)

const loginRateWindow = 15 * time.Minute

// LoginRateLimit throttles login and register attempts per client IP, on top
// of the per-account failed-attempt counter. Each client gets a token bucket
// with a burst of cfg.LoginPer15Minutes that refills over the 15 minute
// window. A zero budget disables throttling entirely.
func LoginRateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.LoginPer15Minutes <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	store := newLimiterStore(cfg.LoginPer15Minutes)
	refill := loginRateWindow / time.Duration(cfg.LoginPer15Minutes)
	retryAfter := strconv.Itoa(int(refill.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.allow(clientKey(r, cfg.TrustedProxies)) {
				w.Header().Set("Retry-After", retryAfter)
				respond.Error(w, r, http.StatusTooManyRequests, "Too many attempts. Please try again later.", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type limiterStore struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	burst   int
	refill  rate.Limit
	stop    chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(perWindow int) *limiterStore {
	store := &limiterStore{
		entries: make(map[string]*limiterEntry),
		burst:   perWindow,
		refill:  rate.Every(loginRateWindow / time.Duration(perWindow)),
		stop:    make(chan struct{}),
	}

	// Entries for clients not seen within the window are evicted so the map
	// stays bounded under address-spraying traffic.
	go store.cleanupLoop()

	return store
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	entry, ok := s.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.refill, s.burst)}
		s.entries[key] = entry
	}
	entry.lastSeen = time.Now()
	s.mu.Unlock()

	return entry.limiter.Allow()
}

func (s *limiterStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

func (s *limiterStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if now.Sub(entry.lastSeen) > loginRateWindow {
			delete(s.entries, key)
		}
	}
}

// clientKey identifies the client for throttling. Forwarding headers are
// spoofable, so X-Forwarded-For and X-Real-IP are only honored when the
// direct peer is a trusted proxy.
func clientKey(r *http.Request, trustedProxies []string) string {
	remoteIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		remoteIP = host
	}

	if isTrustedProxy(remoteIP, trustedProxies) {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			return strings.TrimSpace(strings.Split(forwarded, ",")[0])
		}
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			return strings.TrimSpace(realIP)
		}
	}

	return remoteIP
}

func isTrustedProxy(ip string, trustedProxies []string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}

	for _, cidrStr := range trustedProxies {
		_, cidr, err := net.ParseCIDR(cidrStr)
		if err != nil {
			continue
		}
		if cidr.Contains(parsed) {
			return true
		}
	}
	return false
}
