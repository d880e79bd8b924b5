package iftracer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFacadeUninitialized(t *testing.T) {
	resetDefault()
	ctx := context.Background()

	if Default() != nil {
		t.Fatal("Default() != nil after reset")
	}

	if _, err := CreateEvaluationRequest("p"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("CreateEvaluationRequest error = %v, want ErrNotInitialized", err)
	}

	resp := EvaluateSafety(ctx, &EvaluationRequest{Prompt: "p"})
	if resp.Success {
		t.Error("EvaluateSafety uninitialized: Success = true, want false")
	}
	if resp.ErrorMessage != ErrNotInitialized.Error() {
		t.Errorf("ErrorMessage = %q, want %q", resp.ErrorMessage, ErrNotInitialized.Error())
	}

	if resp := EvaluateHallucinationBias(ctx, &EvaluationRequest{Prompt: "p", Response: "r"}); resp.Success {
		t.Error("EvaluateHallucinationBias uninitialized: Success = true, want false")
	}
	if resp := EvaluateExternalHallucination(ctx, &EvaluationRequest{Prompt: "p"}); resp.Success {
		t.Error("EvaluateExternalHallucination uninitialized: Success = true, want false")
	}

	if _, err := BatchEvaluateSafety(ctx, []string{"p"}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("BatchEvaluateSafety error = %v, want ErrNotInitialized", err)
	}
	if _, err := BatchEvaluateHallucinationBias(ctx, []string{"p"}, []string{"r"}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("BatchEvaluateHallucinationBias error = %v, want ErrNotInitialized", err)
	}
	if _, err := BatchEvaluateExternalHallucination(ctx, []string{"p"}, []string{"r"}, []string{"e"}, []float64{1}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("BatchEvaluateExternalHallucination error = %v, want ErrNotInitialized", err)
	}

	mixed := BatchEvaluateMixed(ctx, []MixedEvaluation{
		{Type: EvaluationTypeSafety, Request: &EvaluationRequest{Prompt: "p"}},
		{Type: EvaluationTypeSafety, Request: &EvaluationRequest{Prompt: "q"}},
	})
	if len(mixed) != 2 {
		t.Fatalf("BatchEvaluateMixed returned %d responses, want 2", len(mixed))
	}
	for i, resp := range mixed {
		if resp.Success {
			t.Errorf("mixed[%d].Success = true, want false when uninitialized", i)
		}
	}
}

func TestFacadeInitAndEvaluate(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"evaluations":[{"explanation":"ok","score":1,"evaluationType":"SAFETY"}]}`))
	}))
	defer server.Close()

	err := Init("test-key", "test-user",
		WithBaseURL(server.URL),
		WithProjectName("facade-test"),
		WithRetryStrategy(NoRetry{}),
	)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Default() == nil {
		t.Fatal("Default() = nil after Init")
	}

	req, err := CreateEvaluationRequest("hello")
	if err != nil {
		t.Fatalf("CreateEvaluationRequest failed: %v", err)
	}
	if req.ProjectName != "facade-test" {
		t.Errorf("ProjectName = %q, want project from Init options", req.ProjectName)
	}

	resp := EvaluateSafety(context.Background(), req)
	if !resp.Success {
		t.Fatalf("EvaluateSafety failed: %s", resp.ErrorMessage)
	}

	responses, err := BatchEvaluateSafety(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("BatchEvaluateSafety failed: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("len(responses) = %d, want 2", len(responses))
	}
}

func TestFacadeInitValidation(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	if err := Init("", "test-user"); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Init with empty key = %v, want ErrMissingAPIKey", err)
	}
	if Default() != nil {
		t.Error("Default() != nil after failed Init")
	}
}

func TestFacadeInitWithConfig(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	cfg := DefaultConfig("test-key", "test-user")
	cfg.Timeout = 2 * time.Second
	if err := InitWithConfig(cfg); err != nil {
		t.Fatalf("InitWithConfig failed: %v", err)
	}
	if got := Default().Config().Timeout; got != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", got)
	}
}

func TestFacadeInitFromEnv(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)
	clearTracerEnv(t)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvUsername, "env-user")

	if err := InitFromEnv(); err != nil {
		t.Fatalf("InitFromEnv failed: %v", err)
	}
	if got := Default().Config().APIKey; got != "env-key" {
		t.Errorf("APIKey = %q, want value from environment", got)
	}
}

func TestFacadeInitReplacesDefault(t *testing.T) {
	resetDefault()
	t.Cleanup(resetDefault)

	if err := Init("key-one", "user"); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	first := Default()

	if err := Init("key-two", "user"); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if Default() == first {
		t.Error("Default() unchanged after second Init, want replacement")
	}
	if got := Default().Config().APIKey; got != "key-two" {
		t.Errorf("APIKey = %q, want %q", got, "key-two")
	}
}
