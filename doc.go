// Package iftracer provides a Go SDK for the InsightFinder AI evaluation
// service. It submits prompt/response pairs for safety, hallucination/bias,
// and external-hallucination scoring.
//
// # Quick Start
//
// Create an evaluator and submit a prompt:
//
//	evaluator, err := iftracer.NewEvaluator(
//	    os.Getenv("IFTRACER_API_KEY"),
//	    os.Getenv("IFTRACER_USER_NAME"),
//	    iftracer.WithProjectName("my-project"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	req, err := evaluator.CreateEvaluationRequest("How do I cook pasta?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp := evaluator.EvaluateSafety(ctx, req)
//	if resp.Success {
//	    for _, eval := range resp.Data {
//	        fmt.Printf("%s: %.2f (%s)\n", eval.EvaluationType, eval.Score, eval.Explanation)
//	    }
//	}
//
// # Failure Contract
//
// Evaluate operations never return an error and never panic. Transport
// failures, non-2xx statuses, and malformed response bodies all surface as
// an EvaluationResponse with Success=false, a descriptive ErrorMessage, and
// the attempt count. The only operations that return errors are request
// construction and batch argument validation, which fail before any network
// call is made.
//
// # Batching
//
// Batch operations evaluate many inputs concurrently, bounded by the
// configured MaxConcurrency, and return one response per input in input
// order:
//
//	responses, err := evaluator.BatchEvaluateSafety(ctx, prompts)
//	for i, resp := range responses {
//	    if !resp.Success {
//	        log.Printf("prompt %d failed: %s", i, resp.ErrorMessage)
//	    }
//	}
//
// Mixed-type batches dispatch each entry by its evaluation type; a
// malformed entry fails only its own index.
//
// # Retries
//
// Transient failures (connection errors, timeouts, and 5xx statuses) are
// retried with exponential backoff up to the configured MaxRetries. 4xx
// statuses, 429 included, are permanent client errors and are never
// retried. The retry policy is pluggable via WithRetryStrategy.
//
// # Thread Safety
//
// An Evaluator is immutable after construction and safe for concurrent
// use. Batch operations share no mutable state beyond their result slice,
// which is written index-for-index.
package iftracer
