package restapi

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/rue-joseph-bens/tramboard/internal/models"
)

// RateLimitMiddleware limits requests per client address. Every dashboard
// request fans out to the upstream API, so one misbehaving client must not be
// able to exhaust the upstream quota.
type RateLimitMiddleware struct {
	limiters    map[string]*rate.Limiter
	mu          sync.RWMutex
	rateLimit   rate.Limit
	burstSize   int
	cleanupTick *time.Ticker
	done        chan struct{}
	stopOnce    sync.Once
}

// NewRateLimitMiddleware creates a new rate limiting middleware allowing
// ratePerInterval requests per interval for each client. Zero blocks every
// request; a negative value disables limiting.
func NewRateLimitMiddleware(ratePerInterval int, interval time.Duration) *RateLimitMiddleware {
	var rateLimit rate.Limit
	switch {
	case ratePerInterval < 0:
		rateLimit = rate.Inf
	case ratePerInterval == 0:
		rateLimit = 0
	default:
		rateLimit = rate.Every(interval / time.Duration(ratePerInterval))
	}

	middleware := &RateLimitMiddleware{
		limiters:    make(map[string]*rate.Limiter),
		rateLimit:   rateLimit,
		burstSize:   ratePerInterval,
		cleanupTick: time.NewTicker(5 * time.Minute),
		done:        make(chan struct{}),
	}

	go middleware.cleanup()

	return middleware
}

// getLimiter gets or creates a rate limiter for the given client
func (rl *RateLimitMiddleware) getLimiter(client string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[client]
	rl.mu.RUnlock()

	if exists {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := rl.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rl.rateLimit, rl.burstSize)
	rl.limiters[client] = limiter

	return limiter
}

// Handler is the HTTP middleware function
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.rateLimit == rate.Inf {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getLimiter(clientAddress(r)).Allow() {
			rl.sendRateLimitExceeded(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddress returns the host part of the request's remote address.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return r.RemoteAddr
	}
	return host
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter) {
	retryAfter := time.Second
	if rl.rateLimit == 0 {
		retryAfter = time.Hour
	} else if interval := time.Duration(float64(time.Second) / float64(rl.rateLimit)); interval > retryAfter {
		retryAfter = interval
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	response := models.NewResponse(http.StatusTooManyRequests, nil, "Rate limit exceeded. Please try again later.")
	_ = json.NewEncoder(w).Encode(response)
}

// cleanup periodically drops limiters that are back at full burst, which
// means their client has been idle.
func (rl *RateLimitMiddleware) cleanup() {
	for {
		select {
		case <-rl.done:
			return
		case <-rl.cleanupTick.C:
			rl.removeIdleLimiters()
		}
	}
}

func (rl *RateLimitMiddleware) removeIdleLimiters() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for client, limiter := range rl.limiters {
		if limiter.Tokens() >= float64(rl.burstSize) {
			delete(rl.limiters, client)
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanupTick.Stop()
		close(rl.done)
	})
}
