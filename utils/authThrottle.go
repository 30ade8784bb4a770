package utils

import (
	"sync"

	"golang.org/x/time/rate"
)

// ThrottleConfig holds the configuration for the login throttle
type ThrottleConfig struct {
	AttemptsPerSecond float64
	Burst             int
}

// LoginThrottle slows down repeated login attempts. One limiter guards the
// whole console since a session serves one operator at a time.
type LoginThrottle struct {
	limiter *rate.Limiter
	mu      sync.Mutex
}

// NewLoginThrottle creates a new login throttle
func NewLoginThrottle(config ThrottleConfig) *LoginThrottle {
	return &LoginThrottle{
		limiter: rate.NewLimiter(rate.Limit(config.AttemptsPerSecond), config.Burst),
	}
}

// Allow reports whether another login attempt may proceed now.
func (t *LoginThrottle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limiter.Allow()
}
