package iftracer

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ============================================================================
// Environment Variable Constants
// ============================================================================

// Environment variable names for the primary tracing configuration.
const (
	// EnvAPIKey is the environment variable for the API key.
	EnvAPIKey = "IFTRACER_API_KEY"
	// EnvUsername is the environment variable for the username.
	EnvUsername = "IFTRACER_USER_NAME"
	// EnvProjectName is the environment variable for the project name.
	EnvProjectName = "IFTRACER_PROJECT_NAME"
	// EnvBaseURL is the environment variable for the service base URL.
	EnvBaseURL = "IFTRACER_API_ENDPOINT"
	// EnvTimeout is the environment variable for the request timeout.
	EnvTimeout = "IFTRACER_TIMEOUT"
	// EnvMaxRetries is the environment variable for the retry count.
	EnvMaxRetries = "IFTRACER_MAX_RETRIES"
	// EnvDebug is the environment variable to enable debug mode.
	EnvDebug = "IFTRACER_DEBUG"
)

// Environment variable names for evaluation-specific overrides.
// Each falls back to its primary counterpart when unset.
const (
	// EnvEvaluationAPIKey overrides EnvAPIKey for evaluation calls.
	EnvEvaluationAPIKey = "IFTRACER_EVALUATION_API_KEY"
	// EnvEvaluationUsername overrides EnvUsername for evaluation calls.
	EnvEvaluationUsername = "IFTRACER_EVALUATION_USER_NAME"
	// EnvEvaluationProjectName overrides EnvProjectName for evaluation calls.
	EnvEvaluationProjectName = "IFTRACER_EVALUATION_PROJECT_NAME"
	// EnvEvaluationBaseURL overrides EnvBaseURL for evaluation calls.
	EnvEvaluationBaseURL = "IFTRACER_EVALUATION_API_ENDPOINT"
)

// ============================================================================
// Environment Helpers
// ============================================================================

// GetEnvString returns the value of an environment variable or a default.
func GetEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns true if the env var is "true" or "1".
func GetEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v == "true" || v == "1"
}

// GetEnvInt returns the integer value of an environment variable or a
// default when unset or unparseable.
func GetEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetEnvDuration returns the duration value of an environment variable or a
// default when unset or unparseable. Plain integers are read as seconds.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

// getEnvEither returns the first set value among the given keys, or the
// default. Used for evaluation-specific overrides that fall back to the
// primary tracing configuration.
func getEnvEither(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return defaultValue
}

// ConfigFromEnv builds a Config from environment variables.
// Evaluation-specific variables (IFTRACER_EVALUATION_*) take precedence over
// the primary tracing variables.
func ConfigFromEnv() *Config {
	return &Config{
		APIKey:      getEnvEither("", EnvEvaluationAPIKey, EnvAPIKey),
		Username:    getEnvEither("", EnvEvaluationUsername, EnvUsername),
		ProjectName: getEnvEither("", EnvEvaluationProjectName, EnvProjectName),
		BaseURL:     getEnvEither("", EnvEvaluationBaseURL, EnvBaseURL),
		Timeout:     GetEnvDuration(EnvTimeout, 0),
		MaxRetries:  GetEnvInt(EnvMaxRetries, 0),
		Debug:       GetEnvBool(EnvDebug, false),
	}
}

// NewFromEnv creates a new Evaluator using environment variables for
// configuration. It requires IFTRACER_API_KEY and IFTRACER_USER_NAME (or
// their IFTRACER_EVALUATION_* overrides).
//
// Example:
//
//	evaluator, err := iftracer.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewFromEnv(opts ...Option) (*Evaluator, error) {
	cfg := ConfigFromEnv()

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("iftracer: %s environment variable is required", EnvAPIKey)
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("iftracer: %s environment variable is required", EnvUsername)
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewEvaluatorWithConfig(cfg)
}
