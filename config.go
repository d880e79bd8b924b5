package iftracer

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// ============================================================================
// Default Configuration Values
// ============================================================================

// Default configuration values.
const (
	// DefaultBaseURL is the default evaluation service endpoint.
	DefaultBaseURL = "https://ai-stg.insightfinder.com"

	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default maximum number of retry attempts.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the default initial delay between retry attempts.
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxConcurrency is the default cap on concurrent requests
	// issued by a single batch operation.
	DefaultMaxConcurrency = 5

	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 100

	// DefaultMaxIdleConnsPerHost is the default maximum idle connections per host.
	DefaultMaxIdleConnsPerHost = 10

	// DefaultIdleConnTimeout is the default timeout for idle connections.
	DefaultIdleConnTimeout = 90 * time.Second

	// MaxMaxRetries is the maximum allowed retry count.
	MaxMaxRetries = 10

	// MaxTimeout is the maximum allowed request timeout.
	MaxTimeout = 5 * time.Minute

	// MaxMaxConcurrency is the maximum allowed batch concurrency cap.
	MaxMaxConcurrency = 64
)

// Config holds the configuration for an Evaluator.
// The zero value is not usable; construct one explicitly or rely on
// NewEvaluator's defaults. The Evaluator copies the Config at construction
// time, so a Config is effectively immutable once an Evaluator is built
// from it.
type Config struct {
	// APIKey is the evaluation service API key (required).
	APIKey string

	// Username is the account username paired with the API key (required).
	Username string

	// ProjectName is the default project recorded with each evaluation.
	ProjectName string

	// BaseURL is the base URL for the evaluation service.
	// Defaults to DefaultBaseURL if not set.
	BaseURL string

	// HTTPClient is the HTTP client to use for requests.
	// If not set, a default client with sensible timeouts will be used.
	HTTPClient *http.Client

	// Timeout is the per-request timeout.
	// Defaults to 30 seconds if not set.
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts for failed requests.
	// Zero means unset and defaults to 3; set RetryStrategy to NoRetry{}
	// to disable retries.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts.
	// Defaults to 1 second if not set.
	RetryDelay time.Duration

	// RetryStrategy controls retry decisions and delays.
	// If nil, an exponential backoff strategy built from MaxRetries and
	// RetryDelay is used.
	RetryStrategy RetryStrategy

	// MaxConcurrency caps the number of in-flight requests a batch
	// operation may issue. Defaults to 5 if not set.
	MaxConcurrency int

	// Debug enables debug logging.
	Debug bool

	// Logger is used for SDK logging (printf-style).
	// If nil, logging is disabled unless Debug is true.
	Logger Logger

	// StructuredLogger is used for structured SDK logging.
	// If set, this takes precedence over Logger.
	StructuredLogger StructuredLogger

	// Metrics is used for SDK telemetry.
	// If nil, no metrics are collected.
	Metrics Metrics

	// HTTPHooks are called before and after each HTTP request.
	// Use hooks to add custom headers, log requests, or collect metrics.
	HTTPHooks []HTTPHook

	// MaxIdleConns controls the maximum number of idle connections.
	// Defaults to 100 if not set.
	MaxIdleConns int

	// MaxIdleConnsPerHost controls the maximum idle connections per host.
	// Defaults to 10 if not set.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections are kept.
	// Defaults to 90 seconds if not set.
	IdleConnTimeout time.Duration
}

// String returns a string representation of the config with masked
// credentials. Safe to use in logs and debug output.
func (c *Config) String() string {
	return fmt.Sprintf("Config{APIKey: %q, Username: %q, ProjectName: %q, BaseURL: %q, MaxRetries: %d, MaxConcurrency: %d}",
		MaskCredential(c.APIKey),
		c.Username,
		c.ProjectName,
		c.BaseURL,
		c.MaxRetries,
		c.MaxConcurrency,
	)
}

// applyDefaults sets default values for unset configuration options.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}

	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}

	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}

	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = DefaultMaxConcurrency
	}

	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}

	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}

	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = DefaultIdleConnTimeout
	}

	if c.RetryStrategy == nil {
		c.RetryStrategy = &ExponentialBackoff{
			InitialDelay: c.RetryDelay,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
			Jitter:       true,
			MaxRetries:   c.MaxRetries,
		}
	}

	// Set default logger if debug is enabled and no logger is set
	if c.Debug && c.Logger == nil && c.StructuredLogger == nil {
		c.Logger = &defaultLogger{
			logger: log.New(os.Stderr, "iftracer: ", log.LstdFlags),
		}
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        c.MaxIdleConns,
				MaxIdleConnsPerHost: c.MaxIdleConnsPerHost,
				IdleConnTimeout:     c.IdleConnTimeout,
				DisableKeepAlives:   false,
			},
		}
	}
}

// validate checks that the configuration is valid.
func (c *Config) validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Username == "" {
		return ErrMissingUsername
	}
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("iftracer: invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("iftracer: base URL %q must include a scheme and host", c.BaseURL)
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("iftracer: max retries cannot be negative, got %d", c.MaxRetries)
	}
	if c.MaxRetries > MaxMaxRetries {
		return fmt.Errorf("iftracer: max retries cannot exceed %d, got %d", MaxMaxRetries, c.MaxRetries)
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("iftracer: max concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	if c.MaxConcurrency > MaxMaxConcurrency {
		return fmt.Errorf("iftracer: max concurrency cannot exceed %d, got %d", MaxMaxConcurrency, c.MaxConcurrency)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("iftracer: timeout cannot be negative")
	}
	if c.Timeout > MaxTimeout {
		return fmt.Errorf("iftracer: timeout cannot exceed %v", MaxTimeout)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("iftracer: retry delay cannot be negative")
	}

	if c.MaxIdleConnsPerHost > c.MaxIdleConns {
		return fmt.Errorf("iftracer: max idle connections per host (%d) cannot exceed total max idle connections (%d)",
			c.MaxIdleConnsPerHost, c.MaxIdleConns)
	}

	return nil
}

// DefaultConfig returns a production-ready configuration with sensible
// defaults. Use this as a starting point for most deployments.
//
// Example:
//
//	cfg := iftracer.DefaultConfig("api-key", "user")
//	evaluator, err := iftracer.NewEvaluatorWithConfig(cfg)
func DefaultConfig(apiKey, username string) *Config {
	return &Config{
		APIKey:   apiKey,
		Username: username,
	}
}

// DevelopmentConfig returns a configuration suitable for development:
// debug logging enabled, a single retry, and a short retry delay for
// faster feedback.
func DevelopmentConfig(apiKey, username string) *Config {
	return &Config{
		APIKey:     apiKey,
		Username:   username,
		Debug:      true,
		MaxRetries: 1,
		RetryDelay: 100 * time.Millisecond,
	}
}

// MaskCredential masks a credential string for safe logging.
// It shows only the last 4 characters; short strings are fully masked.
//
// Examples:
//
//	MaskCredential("1234567890abcdef") => "************cdef"
//	MaskCredential("key") => "****"
func MaskCredential(s string) string {
	if s == "" {
		return ""
	}

	const visibleSuffix = 4

	if len(s) <= visibleSuffix {
		return "****"
	}

	masked := make([]byte, len(s)-visibleSuffix)
	for i := range masked {
		masked[i] = '*'
	}
	return string(masked) + s[len(s)-visibleSuffix:]
}
