package iftracer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "with message",
			err:  &APIError{StatusCode: 400, Message: "bad request"},
			want: `iftracer: API error (status 400): bad request`,
		},
		{
			name: "falls back to body",
			err:  &APIError{StatusCode: 500, Body: "upstream exploded"},
			want: `iftracer: API error (status 500): upstream exploded`,
		},
		{
			name: "status only",
			err:  &APIError{StatusCode: 503},
			want: `iftracer: API error (status 503)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &APIError{StatusCode: 429, Message: "slow down"})

	if !errors.Is(err, ErrRateLimited) {
		t.Error("errors.Is(err, ErrRateLimited) = false, want true")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = true, want false")
	}
}

func TestAPIErrorClassification(t *testing.T) {
	tests := []struct {
		status        int
		clientErr     bool
		serverErr     bool
		retryable     bool
		wantErrorCode ErrorCode
	}{
		{400, true, false, false, ErrCodeAPI},
		{401, true, false, false, ErrCodeAuth},
		{403, true, false, false, ErrCodeAuth},
		{404, true, false, false, ErrCodeAPI},
		{429, true, false, false, ErrCodeRateLimit},
		{500, false, true, true, ErrCodeAPI},
		{503, false, true, true, ErrCodeAPI},
	}

	for _, tt := range tests {
		err := &APIError{StatusCode: tt.status}
		if got := err.IsClientError(); got != tt.clientErr {
			t.Errorf("status %d: IsClientError() = %v, want %v", tt.status, got, tt.clientErr)
		}
		if got := err.IsServerError(); got != tt.serverErr {
			t.Errorf("status %d: IsServerError() = %v, want %v", tt.status, got, tt.serverErr)
		}
		if got := err.IsRetryable(); got != tt.retryable {
			t.Errorf("status %d: IsRetryable() = %v, want %v", tt.status, got, tt.retryable)
		}
		if got := err.Code(); got != tt.wantErrorCode {
			t.Errorf("status %d: Code() = %v, want %v", tt.status, got, tt.wantErrorCode)
		}
	}
}

func TestAsAPIError(t *testing.T) {
	apiErr := &APIError{StatusCode: 500}
	wrapped := fmt.Errorf("request failed: %w", apiErr)

	got, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatal("AsAPIError() = false, want true")
	}
	if got != apiErr {
		t.Error("AsAPIError() did not return the wrapped value")
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Error("AsAPIError(plain error) = true, want false")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("prompt", "cannot be empty")

	if !strings.Contains(err.Error(), `"prompt"`) {
		t.Errorf("Error() = %q, want field name quoted", err.Error())
	}
	if err.IsRetryable() {
		t.Error("IsRetryable() = true, want false")
	}
	if err.Code() != ErrCodeValidation {
		t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeValidation)
	}

	cause := errors.New("underlying")
	withCause := NewValidationErrorWithCause("score", "out of range", cause)
	if !errors.Is(withCause, cause) {
		t.Error("errors.Is(withCause, cause) = false, want unwrapping")
	}

	wrapped := fmt.Errorf("build failed: %w", err)
	got, ok := AsValidationError(wrapped)
	if !ok || got.Field != "prompt" {
		t.Errorf("AsValidationError() = (%v, %v), want original error", got, ok)
	}
}

func TestIsRetryableHelper(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", &APIError{StatusCode: 502}, true},
		{"client error", &APIError{StatusCode: 404}, false},
		{"validation error", NewValidationError("prompt", "empty"), false},
		{"wrapped rate limit", fmt.Errorf("x: %w", &APIError{StatusCode: 429}), false},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"unknown", errors.New("something else"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
