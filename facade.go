package iftracer

import (
	"context"
	"sync"
)

// The package-level facade holds one process-wide Evaluator for callers who
// don't want to thread an instance through their application. Explicit
// Evaluator instances remain the primary API; the facade is a thin
// convenience for the outermost application boundary and must be
// initialized explicitly with Init before use.

var (
	defaultMu        sync.RWMutex
	defaultEvaluator *Evaluator
)

// Init constructs the process-wide default Evaluator.
// Calling Init again replaces the previous default.
func Init(apiKey, username string, opts ...Option) error {
	evaluator, err := NewEvaluator(apiKey, username, opts...)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defaultEvaluator = evaluator
	defaultMu.Unlock()
	return nil
}

// InitWithConfig constructs the process-wide default Evaluator from a Config.
func InitWithConfig(cfg *Config) error {
	evaluator, err := NewEvaluatorWithConfig(cfg)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defaultEvaluator = evaluator
	defaultMu.Unlock()
	return nil
}

// InitFromEnv constructs the process-wide default Evaluator from
// environment variables.
func InitFromEnv(opts ...Option) error {
	evaluator, err := NewFromEnv(opts...)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defaultEvaluator = evaluator
	defaultMu.Unlock()
	return nil
}

// Default returns the process-wide default Evaluator, or nil when Init has
// not been called.
func Default() *Evaluator {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultEvaluator
}

// resetDefault clears the process-wide default. Used by tests.
func resetDefault() {
	defaultMu.Lock()
	defaultEvaluator = nil
	defaultMu.Unlock()
}

// CreateEvaluationRequest builds a request using the default Evaluator.
// Returns ErrNotInitialized when Init has not been called.
func CreateEvaluationRequest(prompt string, opts ...RequestOption) (*EvaluationRequest, error) {
	evaluator := Default()
	if evaluator == nil {
		return nil, ErrNotInitialized
	}
	return evaluator.CreateEvaluationRequest(prompt, opts...)
}

// EvaluateSafety evaluates a prompt using the default Evaluator.
func EvaluateSafety(ctx context.Context, req *EvaluationRequest) *EvaluationResponse {
	evaluator := Default()
	if evaluator == nil {
		return errorResponse(ErrNotInitialized.Error(), 0, 0)
	}
	return evaluator.EvaluateSafety(ctx, req)
}

// EvaluateHallucinationBias evaluates a prompt/response pair using the
// default Evaluator.
func EvaluateHallucinationBias(ctx context.Context, req *EvaluationRequest) *EvaluationResponse {
	evaluator := Default()
	if evaluator == nil {
		return errorResponse(ErrNotInitialized.Error(), 0, 0)
	}
	return evaluator.EvaluateHallucinationBias(ctx, req)
}

// EvaluateExternalHallucination records an external judgment using the
// default Evaluator.
func EvaluateExternalHallucination(ctx context.Context, req *EvaluationRequest) *EvaluationResponse {
	evaluator := Default()
	if evaluator == nil {
		return errorResponse(ErrNotInitialized.Error(), 0, 0)
	}
	return evaluator.EvaluateExternalHallucination(ctx, req)
}

// BatchEvaluateSafety evaluates prompts using the default Evaluator.
func BatchEvaluateSafety(ctx context.Context, prompts []string) ([]*EvaluationResponse, error) {
	evaluator := Default()
	if evaluator == nil {
		return nil, ErrNotInitialized
	}
	return evaluator.BatchEvaluateSafety(ctx, prompts)
}

// BatchEvaluateHallucinationBias evaluates prompt/response pairs using the
// default Evaluator.
func BatchEvaluateHallucinationBias(ctx context.Context, prompts, responses []string) ([]*EvaluationResponse, error) {
	evaluator := Default()
	if evaluator == nil {
		return nil, ErrNotInitialized
	}
	return evaluator.BatchEvaluateHallucinationBias(ctx, prompts, responses)
}

// BatchEvaluateExternalHallucination records external judgments using the
// default Evaluator.
func BatchEvaluateExternalHallucination(ctx context.Context, prompts, responses, explanations []string, scores []float64) ([]*EvaluationResponse, error) {
	evaluator := Default()
	if evaluator == nil {
		return nil, ErrNotInitialized
	}
	return evaluator.BatchEvaluateExternalHallucination(ctx, prompts, responses, explanations, scores)
}

// BatchEvaluateMixed evaluates mixed-type entries using the default
// Evaluator. When Init has not been called, every entry is a failed
// response.
func BatchEvaluateMixed(ctx context.Context, entries []MixedEvaluation) []*EvaluationResponse {
	evaluator := Default()
	if evaluator == nil {
		results := make([]*EvaluationResponse, len(entries))
		for i := range results {
			results[i] = errorResponse(ErrNotInitialized.Error(), 0, 0)
		}
		return results
	}
	return evaluator.BatchEvaluateMixed(ctx, entries)
}
