package iftracer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// endpoints holds the fixed evaluation service paths.
var endpoints = struct {
	Safety                string
	HallucinationBias     string
	ExternalHallucination string
}{
	Safety:                "/api/external/v1/evaluation/safety",
	HallucinationBias:     "/api/external/v1/evaluation/bias-hallu",
	ExternalHallucination: "/api/external/v1/evaluation/exter-hallu",
}

// Evaluator submits evaluation requests to the remote service.
//
// All Evaluate methods share one contract: they always return a non-nil
// EvaluationResponse and never return an error. Transport failures, non-2xx
// statuses, and malformed response bodies are normalized into responses
// with Success=false and a descriptive ErrorMessage. The only operation
// that returns an error is request construction, which can fail validation
// before any network call.
//
// An Evaluator is safe for concurrent use.
type Evaluator struct {
	config *Config
	http   *httpClient
}

// NewEvaluator creates a new Evaluator.
//
// Example:
//
//	evaluator, err := iftracer.NewEvaluator(apiKey, username,
//	    iftracer.WithProjectName("my-project"),
//	    iftracer.WithMaxRetries(5),
//	)
func NewEvaluator(apiKey, username string, opts ...Option) (*Evaluator, error) {
	cfg := &Config{
		APIKey:   apiKey,
		Username: username,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return NewEvaluatorWithConfig(cfg)
}

// NewEvaluatorWithConfig creates a new Evaluator from a Config struct.
// The config is copied; later mutation of the argument has no effect on
// the Evaluator.
func NewEvaluatorWithConfig(cfg *Config) (*Evaluator, error) {
	if cfg == nil {
		return nil, ErrNilRequest
	}

	cfgCopy := *cfg
	cfgCopy.applyDefaults()

	if err := cfgCopy.validate(); err != nil {
		return nil, err
	}

	return &Evaluator{
		config: &cfgCopy,
		http:   newHTTPClient(&cfgCopy),
	}, nil
}

// Config returns a copy of the evaluator's effective configuration.
func (e *Evaluator) Config() Config {
	return *e.config
}

// ============================================================================
// Request Construction
// ============================================================================

// RequestOption configures an EvaluationRequest under construction.
type RequestOption func(*EvaluationRequest)

// WithResponse sets the model response to evaluate.
func WithResponse(response string) RequestOption {
	return func(r *EvaluationRequest) {
		r.Response = response
	}
}

// WithExplanation sets the externally computed judgment text.
func WithExplanation(explanation string) RequestOption {
	return func(r *EvaluationRequest) {
		r.Explanation = explanation
	}
}

// WithScore sets the externally computed score.
func WithScore(score float64) RequestOption {
	return func(r *EvaluationRequest) {
		r.Score = &score
	}
}

// WithTraceID sets an explicit trace ID instead of a generated one.
func WithTraceID(traceID string) RequestOption {
	return func(r *EvaluationRequest) {
		r.TraceID = traceID
	}
}

// WithTimestamp sets an explicit timestamp (unix milliseconds).
func WithTimestamp(timestamp int64) RequestOption {
	return func(r *EvaluationRequest) {
		r.Timestamp = timestamp
	}
}

// WithRequestProjectName overrides the evaluator's project name for one
// request.
func WithRequestProjectName(name string) RequestOption {
	return func(r *EvaluationRequest) {
		r.ProjectName = name
	}
}

// CreateEvaluationRequest builds an EvaluationRequest for the given prompt.
// TraceID and Timestamp are generated when not supplied via options.
// Returns a ValidationError when the prompt is empty. The call is pure:
// it performs no network I/O.
func (e *Evaluator) CreateEvaluationRequest(prompt string, opts ...RequestOption) (*EvaluationRequest, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, NewValidationError("prompt", "is required")
	}

	req := &EvaluationRequest{
		Prompt:      prompt,
		ProjectName: e.config.ProjectName,
	}

	for _, opt := range opts {
		opt(req)
	}

	if req.TraceID == "" {
		req.TraceID = NewTraceID()
	}
	if req.Timestamp == 0 {
		req.Timestamp = nowMillis()
	}

	return req, nil
}

// normalize returns a copy of the request with evaluator-level defaults
// applied. The caller's request is never mutated.
func (e *Evaluator) normalize(req *EvaluationRequest) EvaluationRequest {
	r := *req
	if r.ProjectName == "" {
		r.ProjectName = e.config.ProjectName
	}
	if r.TraceID == "" {
		r.TraceID = NewTraceID()
	}
	if r.Timestamp == 0 {
		r.Timestamp = nowMillis()
	}
	return r
}

// ============================================================================
// Single Evaluations
// ============================================================================

// EvaluateSafety evaluates a prompt for safety issues.
func (e *Evaluator) EvaluateSafety(ctx context.Context, req *EvaluationRequest) *EvaluationResponse {
	if req == nil {
		return errorResponse(ErrNilRequest.Error(), 0, 0)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return errorResponse("prompt is required for safety evaluation", 0, 0)
	}

	r := e.normalize(req)
	return e.postEvaluation(ctx, EvaluationTypeSafety, endpoints.Safety, safetyPayload{
		ProjectName: r.ProjectName,
		TraceID:     r.TraceID,
		Prompt:      r.Prompt,
		Timestamp:   r.Timestamp,
	})
}

// EvaluateHallucinationBias evaluates a prompt/response pair for
// hallucination and bias. The request must carry a Response.
func (e *Evaluator) EvaluateHallucinationBias(ctx context.Context, req *EvaluationRequest) *EvaluationResponse {
	if req == nil {
		return errorResponse(ErrNilRequest.Error(), 0, 0)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return errorResponse("prompt is required for hallucination/bias evaluation", 0, 0)
	}
	if req.Response == "" {
		return errorResponse("response is required for hallucination/bias evaluation", 0, 0)
	}

	r := e.normalize(req)
	return e.postEvaluation(ctx, EvaluationTypeHallucinationBias, endpoints.HallucinationBias, halluBiasPayload{
		ProjectName: r.ProjectName,
		TraceID:     r.TraceID,
		Prompt:      r.Prompt,
		Response:    r.Response,
		Timestamp:   r.Timestamp,
	})
}

// EvaluateExternalHallucination records an externally computed hallucination
// judgment. The request must carry Response, Explanation, and Score.
func (e *Evaluator) EvaluateExternalHallucination(ctx context.Context, req *EvaluationRequest) *EvaluationResponse {
	if req == nil {
		return errorResponse(ErrNilRequest.Error(), 0, 0)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return errorResponse("prompt is required for external hallucination evaluation", 0, 0)
	}
	if req.Response == "" {
		return errorResponse("response is required for external hallucination evaluation", 0, 0)
	}
	if req.Explanation == "" || req.Score == nil {
		return errorResponse("explanation and score are required for external hallucination evaluation", 0, 0)
	}

	r := e.normalize(req)
	return e.postEvaluation(ctx, EvaluationTypeExternalHallucination, endpoints.ExternalHallucination, exterHalluPayload{
		ProjectName:      r.ProjectName,
		TraceID:          r.TraceID,
		Prompt:           r.Prompt,
		Response:         r.Response,
		Timestamp:        r.Timestamp,
		EvaluationResult: r.Explanation,
		Score:            *r.Score,
	})
}

// Evaluate dispatches a request to the evaluation selected by typ.
// An unknown type yields a failed response, not a fault.
func (e *Evaluator) Evaluate(ctx context.Context, typ EvaluationType, req *EvaluationRequest) *EvaluationResponse {
	switch typ {
	case EvaluationTypeSafety:
		return e.EvaluateSafety(ctx, req)
	case EvaluationTypeHallucinationBias:
		return e.EvaluateHallucinationBias(ctx, req)
	case EvaluationTypeExternalHallucination:
		return e.EvaluateExternalHallucination(ctx, req)
	default:
		return errorResponse(fmt.Sprintf("unsupported evaluation type %q", string(typ)), 0, 0)
	}
}

// ============================================================================
// Transport Normalization
// ============================================================================

// postEvaluation sends one evaluation payload and normalizes every outcome
// into an EvaluationResponse.
func (e *Evaluator) postEvaluation(ctx context.Context, typ EvaluationType, path string, payload any) *EvaluationResponse {
	start := time.Now()
	e.http.metrics.IncrementCounter(metricEvaluationsTotal, 1)

	result, err := e.http.post(ctx, path, payload)

	resp := e.buildResponse(path, result, err)

	e.http.metrics.RecordDuration(metricEvaluationDuration, time.Since(start))
	if !resp.Success {
		e.http.metrics.IncrementCounter(metricEvaluationsFailed, 1)
		e.http.logger.Warn("evaluation failed",
			"type", typ.String(),
			"status", resp.StatusCode,
			"attempts", resp.Attempts,
			"error", resp.ErrorMessage,
		)
	} else {
		e.http.logger.Debug("evaluation completed",
			"type", typ.String(),
			"evaluations", len(resp.Data),
			"attempts", resp.Attempts,
		)
	}

	return resp
}

// buildResponse converts a transport outcome into an EvaluationResponse.
func (e *Evaluator) buildResponse(path string, result *httpResult, err error) *EvaluationResponse {
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok {
			kind := "client"
			if apiErr.IsServerError() {
				kind = "server"
			}
			msg := fmt.Sprintf("%s error %d from %s after %d attempt(s)", kind, apiErr.StatusCode, path, result.Attempts)
			if apiErr.Message != "" {
				msg += ": " + apiErr.Message
			} else if apiErr.Body != "" {
				msg += ": " + apiErr.Body
			}
			return errorResponse(msg, apiErr.StatusCode, result.Attempts)
		}
		return errorResponse(
			fmt.Sprintf("request to %s failed after %d attempt(s): %v", path, result.Attempts, err),
			result.StatusCode,
			result.Attempts,
		)
	}

	var envelope evaluationsEnvelope
	if jsonErr := json.Unmarshal(result.Body, &envelope); jsonErr != nil || envelope.Evaluations == nil {
		resp := errorResponse(
			fmt.Sprintf("malformed response from %s: body does not contain an evaluations list", path),
			result.StatusCode,
			result.Attempts,
		)
		resp.Raw = json.RawMessage(result.Body)
		return resp
	}

	return successResponse(*envelope.Evaluations, json.RawMessage(result.Body), result.StatusCode, result.Attempts)
}
