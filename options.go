package iftracer

import (
	"net/http"
	"time"
)

// Option is a function that modifies a Config.
type Option func(*Config)

// WithProjectName sets the default project name recorded with evaluations.
func WithProjectName(name string) Option {
	return func(c *Config) {
		c.ProjectName = name
	}
}

// WithBaseURL sets a custom base URL for the evaluation service.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
// Zero means "unset" and falls back to DefaultMaxRetries; to disable
// retries entirely, use WithRetryStrategy(NoRetry{}).
func WithMaxRetries(maxRetries int) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
	}
}

// WithRetryDelay sets the initial delay between retry attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

// WithRetryStrategy sets a custom retry strategy.
func WithRetryStrategy(strategy RetryStrategy) Option {
	return func(c *Config) {
		c.RetryStrategy = strategy
	}
}

// WithMaxConcurrency caps the number of in-flight requests per batch call.
func WithMaxConcurrency(n int) Option {
	return func(c *Config) {
		c.MaxConcurrency = n
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) Option {
	return func(c *Config) {
		c.Debug = debug
	}
}

// WithLogger sets a printf-style logger.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithStructuredLogger sets a structured logger.
// Takes precedence over WithLogger.
func WithStructuredLogger(logger StructuredLogger) Option {
	return func(c *Config) {
		c.StructuredLogger = logger
	}
}

// WithMetrics sets a metrics recorder for SDK telemetry.
func WithMetrics(metrics Metrics) Option {
	return func(c *Config) {
		c.Metrics = metrics
	}
}

// WithHTTPHook registers a hook called around each HTTP request.
func WithHTTPHook(hook HTTPHook) Option {
	return func(c *Config) {
		c.HTTPHooks = append(c.HTTPHooks, hook)
	}
}
