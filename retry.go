package iftracer

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// RetryableError is an interface for errors that know if they're retryable.
type RetryableError interface {
	error
	IsRetryable() bool
}

// IsRetryableNetworkError determines if a network error is transient and
// worth retrying. Permanent failures such as DNS errors, connection refused,
// and TLS errors return false.
func IsRetryableNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true // Timeout - worth retrying
	}
	if errors.Is(err, context.Canceled) {
		return false // Explicit cancellation - don't retry
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var syscallErr syscall.Errno
	if errors.As(err, &syscallErr) {
		switch syscallErr {
		case syscall.ECONNRESET, syscall.ETIMEDOUT:
			return true
		case syscall.ECONNREFUSED, syscall.ENETUNREACH, syscall.EHOSTUNREACH:
			return false
		}
	}

	// DNS lookup failures are usually permanent (typos, non-existent domain).
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return IsRetryableNetworkError(urlErr.Err)
	}

	// Fall back to message patterns for errors the transport wraps opaquely.
	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"certificate", "x509:", "tls:", "no such host", "connection refused"} {
		if strings.Contains(errStr, pattern) {
			return false
		}
	}
	for _, pattern := range []string{"timeout", "reset by peer", "broken pipe", "temporary failure", "eof"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	// Don't retry unknown errors.
	return false
}

// RetryStrategy defines how failed requests are retried.
type RetryStrategy interface {
	// ShouldRetry returns true if the request should be retried.
	// attempt is zero-based: it counts completed attempts so far.
	ShouldRetry(attempt int, err error) bool

	// RetryDelay returns how long to wait before the next attempt.
	RetryDelay(attempt int) time.Duration
}

// ExponentialBackoff implements exponential backoff with optional jitter.
type ExponentialBackoff struct {
	// InitialDelay is the delay before the first retry.
	// Defaults to 1 second if not set.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	// Defaults to 30 seconds if not set.
	MaxDelay time.Duration

	// Multiplier is the factor by which the delay increases.
	// Defaults to 2.0 if not set.
	Multiplier float64

	// Jitter adds randomness to the delay to prevent thundering herd.
	// If true, the delay is multiplied by a random factor between 0.5 and 1.5.
	Jitter bool

	// MaxRetries is the maximum number of retry attempts.
	// Defaults to 3 if not set.
	MaxRetries int
}

// NewExponentialBackoff creates an exponential backoff strategy with defaults.
func NewExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
		MaxRetries:   DefaultMaxRetries,
	}
}

// ShouldRetry implements RetryStrategy.ShouldRetry.
func (e *ExponentialBackoff) ShouldRetry(attempt int, err error) bool {
	maxRetries := e.MaxRetries
	if maxRetries == 0 {
		maxRetries = DefaultMaxRetries
	}
	if attempt >= maxRetries {
		return false
	}

	var retryableErr RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.IsRetryable()
	}

	return IsRetryableNetworkError(err)
}

// RetryDelay implements RetryStrategy.RetryDelay.
func (e *ExponentialBackoff) RetryDelay(attempt int) time.Duration {
	initialDelay := e.InitialDelay
	if initialDelay == 0 {
		initialDelay = 1 * time.Second
	}
	maxDelay := e.MaxDelay
	if maxDelay == 0 {
		maxDelay = 30 * time.Second
	}
	multiplier := e.Multiplier
	if multiplier == 0 {
		multiplier = 2.0
	}

	delay := float64(initialDelay) * math.Pow(multiplier, float64(attempt))
	if delay > float64(maxDelay) {
		delay = float64(maxDelay)
	}

	if e.Jitter {
		delay *= 0.5 + rand.Float64()
	}

	return time.Duration(delay)
}

// NoRetry is a retry strategy that never retries.
type NoRetry struct{}

// ShouldRetry implements RetryStrategy.ShouldRetry.
func (NoRetry) ShouldRetry(attempt int, err error) bool {
	return false
}

// RetryDelay implements RetryStrategy.RetryDelay.
func (NoRetry) RetryDelay(attempt int) time.Duration {
	return 0
}

// FixedDelay is a retry strategy with a constant delay between retries.
type FixedDelay struct {
	// Delay between attempts.
	Delay time.Duration

	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int
}

// ShouldRetry implements RetryStrategy.ShouldRetry.
func (f *FixedDelay) ShouldRetry(attempt int, err error) bool {
	if attempt >= f.MaxRetries {
		return false
	}

	var retryableErr RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.IsRetryable()
	}

	return IsRetryableNetworkError(err)
}

// RetryDelay implements RetryStrategy.RetryDelay.
func (f *FixedDelay) RetryDelay(attempt int) time.Duration {
	return f.Delay
}

// Ensure strategies implement RetryStrategy.
var (
	_ RetryStrategy = (*ExponentialBackoff)(nil)
	_ RetryStrategy = NoRetry{}
	_ RetryStrategy = (*FixedDelay)(nil)
)
