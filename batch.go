package iftracer

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Batch operations fan out one evaluation per input element, capped at the
// configured MaxConcurrency, and always return a full-length result slice
// whose i-th entry corresponds to the i-th input regardless of completion
// order. Per-item failures are isolated: a failed element becomes a failed
// EvaluationResponse at its index and never aborts the batch.

// BatchEvaluateSafety evaluates each prompt for safety issues.
func (e *Evaluator) BatchEvaluateSafety(ctx context.Context, prompts []string) ([]*EvaluationResponse, error) {
	return e.runBatch(ctx, len(prompts), func(ctx context.Context, i int) *EvaluationResponse {
		return e.EvaluateSafety(ctx, &EvaluationRequest{Prompt: prompts[i]})
	}), nil
}

// BatchEvaluateHallucinationBias evaluates prompt/response pairs, paired
// positionally. Returns a ValidationError before any network call when the
// two slices differ in length.
func (e *Evaluator) BatchEvaluateHallucinationBias(ctx context.Context, prompts, responses []string) ([]*EvaluationResponse, error) {
	if len(prompts) != len(responses) {
		return nil, NewValidationError("responses",
			fmt.Sprintf("length %d does not match prompts length %d", len(responses), len(prompts)))
	}

	return e.runBatch(ctx, len(prompts), func(ctx context.Context, i int) *EvaluationResponse {
		return e.EvaluateHallucinationBias(ctx, &EvaluationRequest{
			Prompt:   prompts[i],
			Response: responses[i],
		})
	}), nil
}

// BatchEvaluateExternalHallucination records externally computed judgments,
// paired positionally across all four slices. Returns a ValidationError
// before any network call when the slices differ in length.
func (e *Evaluator) BatchEvaluateExternalHallucination(ctx context.Context, prompts, responses, explanations []string, scores []float64) ([]*EvaluationResponse, error) {
	n := len(prompts)
	if len(responses) != n {
		return nil, NewValidationError("responses",
			fmt.Sprintf("length %d does not match prompts length %d", len(responses), n))
	}
	if len(explanations) != n {
		return nil, NewValidationError("explanations",
			fmt.Sprintf("length %d does not match prompts length %d", len(explanations), n))
	}
	if len(scores) != n {
		return nil, NewValidationError("scores",
			fmt.Sprintf("length %d does not match prompts length %d", len(scores), n))
	}

	return e.runBatch(ctx, n, func(ctx context.Context, i int) *EvaluationResponse {
		score := scores[i]
		return e.EvaluateExternalHallucination(ctx, &EvaluationRequest{
			Prompt:      prompts[i],
			Response:    responses[i],
			Explanation: explanations[i],
			Score:       &score,
		})
	}), nil
}

// BatchEvaluateMixed evaluates entries of possibly different types.
// An entry with an unknown type or a nil request yields a failed response
// at its index only; the rest of the batch proceeds.
func (e *Evaluator) BatchEvaluateMixed(ctx context.Context, entries []MixedEvaluation) []*EvaluationResponse {
	return e.runBatch(ctx, len(entries), func(ctx context.Context, i int) *EvaluationResponse {
		return e.Evaluate(ctx, entries[i].Type, entries[i].Request)
	})
}

// runBatch executes fn for each index concurrently, bounded by
// MaxConcurrency, and collects results index-for-index.
func (e *Evaluator) runBatch(ctx context.Context, n int, fn func(ctx context.Context, i int) *EvaluationResponse) []*EvaluationResponse {
	results := make([]*EvaluationResponse, n)
	if n == 0 {
		return results
	}

	start := time.Now()
	e.http.metrics.IncrementCounter(metricBatchSize, int64(n))

	sem := make(chan struct{}, e.config.MaxConcurrency)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			// Stop issuing new requests once the batch is cancelled.
			// In-flight requests observe the same context and drain on
			// their own.
			results[i] = errorResponse(fmt.Sprintf("batch cancelled: %v", ctx.Err()), 0, 0)
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					results[i] = errorResponse(fmt.Sprintf("evaluation panicked: %v", r), 0, 0)
				}
			}()

			results[i] = fn(ctx, i)
		}(i)
	}

	wg.Wait()
	e.http.metrics.RecordDuration(metricBatchDuration, time.Since(start))

	return results
}
