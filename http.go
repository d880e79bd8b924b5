package iftracer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// userAgent identifies the SDK on outbound requests.
const userAgent = "iftracer-go/1.0.0"

// httpClient handles HTTP requests to the evaluation service.
type httpClient struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	username string
	retry    RetryStrategy
	hooks    []HTTPHook
	metrics  Metrics
	logger   StructuredLogger
}

// newHTTPClient creates a new HTTP client from a validated Config.
func newHTTPClient(cfg *Config) *httpClient {
	logger := cfg.StructuredLogger
	if logger == nil {
		if cfg.Logger != nil {
			logger = WrapPrintfLogger(cfg.Logger)
		} else {
			logger = NopLogger{}
		}
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &httpClient{
		client:   cfg.HTTPClient,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		username: cfg.Username,
		retry:    cfg.RetryStrategy,
		hooks:    cfg.HTTPHooks,
		metrics:  metrics,
		logger:   logger,
	}
}

// httpResult is the outcome of a post call, successful or not.
// Attempts is always populated so callers can report retry counts.
type httpResult struct {
	StatusCode int
	Body       []byte
	Attempts   int
}

// post executes a POST request with retries.
// On success the returned error is nil and the result holds a 2xx body.
// On failure the result still carries the attempt count and, when a
// response was received, the final status code.
func (h *httpClient) post(ctx context.Context, path string, body any) (*httpResult, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return &httpResult{}, fmt.Errorf("iftracer: failed to marshal request body: %w", err)
	}

	var lastErr error
	result := &httpResult{}

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			h.metrics.IncrementCounter(metricRequestRetries, 1)
			select {
			case <-ctx.Done():
				result.Attempts = attempt
				return result, fmt.Errorf("iftracer: request cancelled during retry wait: %w", ctx.Err())
			case <-time.After(h.retry.RetryDelay(attempt - 1)):
			}
		}

		status, respBody, err := h.doOnce(ctx, path, bodyBytes)
		result.Attempts = attempt + 1
		if status != 0 {
			result.StatusCode = status
		}

		if err == nil {
			result.Body = respBody
			return result, nil
		}

		lastErr = err
		h.logger.Debug("evaluation request attempt failed",
			"path", path,
			"attempt", attempt+1,
			"status", status,
			"error", err,
		)

		if ctx.Err() != nil {
			return result, lastErr
		}
		if !h.retry.ShouldRetry(attempt, err) {
			h.metrics.IncrementCounter(metricRequestFailures, 1)
			return result, lastErr
		}
	}
}

// doOnce executes a single HTTP request.
// A non-2xx status is returned as an *APIError along with the status code.
func (h *httpClient) doOnce(ctx context.Context, path string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("iftracer: failed to create request: %w", err)
	}

	req.Header.Set("X-Api-Key", h.apiKey)
	req.Header.Set("X-User-Name", h.username)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	for _, hook := range h.hooks {
		if hookErr := hook.BeforeRequest(ctx, req); hookErr != nil {
			return 0, nil, fmt.Errorf("iftracer: request hook failed: %w", hookErr)
		}
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	duration := time.Since(start)

	h.metrics.IncrementCounter(metricRequestsTotal, 1)
	h.metrics.RecordDuration(metricRequestDuration, duration)

	for _, hook := range h.hooks {
		hook.AfterResponse(ctx, req, resp, duration, err)
	}

	if err != nil {
		return 0, nil, fmt.Errorf("iftracer: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("iftracer: failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
		// Prefer a structured message when the service provides one.
		var msg struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(respBody, &msg) == nil {
			if msg.Message != "" {
				apiErr.Message = msg.Message
			} else if msg.Error != "" {
				apiErr.Message = msg.Error
			}
		}
		return resp.StatusCode, respBody, apiErr
	}

	return resp.StatusCode, respBody, nil
}
