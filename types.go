package iftracer

import (
	"encoding/json"
	"fmt"
	"time"
)

// ============================================================================
// Evaluation Types
// ============================================================================

// EvaluationType identifies which evaluation the remote service performs.
type EvaluationType string

// Supported evaluation types.
const (
	// EvaluationTypeSafety scores a prompt for safety issues.
	EvaluationTypeSafety EvaluationType = "safety"

	// EvaluationTypeHallucinationBias scores a prompt/response pair for
	// hallucination and bias.
	EvaluationTypeHallucinationBias EvaluationType = "hallubias"

	// EvaluationTypeExternalHallucination submits an externally computed
	// hallucination judgment (explanation + score) for recording.
	EvaluationTypeExternalHallucination EvaluationType = "exterhallu"
)

// ParseEvaluationType parses a string into an EvaluationType.
// Returns a ValidationError for unknown values.
func ParseEvaluationType(s string) (EvaluationType, error) {
	t := EvaluationType(s)
	if !t.IsValid() {
		return "", NewValidationError("type", fmt.Sprintf("unknown evaluation type %q", s))
	}
	return t, nil
}

// IsValid returns true if the evaluation type is one of the supported values.
func (t EvaluationType) IsValid() bool {
	switch t {
	case EvaluationTypeSafety, EvaluationTypeHallucinationBias, EvaluationTypeExternalHallucination:
		return true
	}
	return false
}

// String returns the wire value of the evaluation type.
func (t EvaluationType) String() string {
	return string(t)
}

// ============================================================================
// Evaluation Request
// ============================================================================

// EvaluationRequest is a single evaluation to be submitted to the service.
// Build requests with Evaluator.CreateEvaluationRequest, which fills in
// generated defaults for TraceID and Timestamp.
type EvaluationRequest struct {
	// ProjectName identifies the project on the evaluation service.
	// Defaults to the Evaluator's configured project name when empty.
	ProjectName string

	// TraceID correlates the evaluation with a trace. Generated when empty.
	TraceID string

	// Prompt is the user prompt to evaluate (required).
	Prompt string

	// Response is the model response. Required for hallucination/bias and
	// external hallucination evaluations.
	Response string

	// Explanation is the externally computed judgment text. Only used for
	// external hallucination evaluations.
	Explanation string

	// Score is the externally computed score. Only used for external
	// hallucination evaluations.
	Score *float64

	// Timestamp is the evaluation time in unix milliseconds.
	// Generated when zero.
	Timestamp int64
}

// safetyPayload is the wire body for the safety endpoint.
type safetyPayload struct {
	ProjectName string `json:"projectName"`
	TraceID     string `json:"traceId"`
	Prompt      string `json:"prompt"`
	Timestamp   int64  `json:"timestamp"`
}

// halluBiasPayload is the wire body for the bias/hallucination endpoint.
type halluBiasPayload struct {
	ProjectName string `json:"projectName"`
	TraceID     string `json:"traceId"`
	Prompt      string `json:"prompt"`
	Response    string `json:"response"`
	Timestamp   int64  `json:"timestamp"`
}

// exterHalluPayload is the wire body for the external hallucination endpoint.
type exterHalluPayload struct {
	ProjectName      string  `json:"projectName"`
	TraceID          string  `json:"traceId"`
	Prompt           string  `json:"prompt"`
	Response         string  `json:"response"`
	Timestamp        int64   `json:"timestamp"`
	EvaluationResult string  `json:"evaluationResult"`
	Score            float64 `json:"score"`
}

// ============================================================================
// Evaluation Response
// ============================================================================

// Evaluation is a single scored judgment returned by the service.
type Evaluation struct {
	Explanation    string  `json:"explanation"`
	Score          float64 `json:"score"`
	EvaluationType string  `json:"evaluationType"`
}

// evaluationsEnvelope is the expected shape of a 2xx response body.
// Evaluations is a pointer so a missing field can be told apart from an
// empty list.
type evaluationsEnvelope struct {
	Evaluations *[]Evaluation `json:"evaluations"`
}

// EvaluationResponse is the outcome of one logical evaluation call.
// Every evaluate operation returns one, for success and failure alike;
// inspect Success and ErrorMessage rather than an error return.
// The value is immutable after construction.
type EvaluationResponse struct {
	// Success reports whether the evaluation completed with a parsed 2xx
	// response. When false, ErrorMessage describes the failure.
	Success bool

	// Data holds the scored judgments on success.
	Data []Evaluation

	// Raw is the unparsed response body, when one was received.
	Raw json.RawMessage

	// ErrorMessage describes the failure. Empty when Success is true.
	ErrorMessage string

	// StatusCode is the HTTP status of the final attempt, when a response
	// was received. Zero when the transport never produced a status.
	StatusCode int

	// Attempts is the number of HTTP calls made for this evaluation.
	Attempts int
}

// successResponse builds a successful EvaluationResponse.
func successResponse(data []Evaluation, raw json.RawMessage, status, attempts int) *EvaluationResponse {
	return &EvaluationResponse{
		Success:    true,
		Data:       data,
		Raw:        raw,
		StatusCode: status,
		Attempts:   attempts,
	}
}

// errorResponse builds a failed EvaluationResponse.
func errorResponse(message string, status, attempts int) *EvaluationResponse {
	return &EvaluationResponse{
		Success:      false,
		ErrorMessage: message,
		StatusCode:   status,
		Attempts:     attempts,
	}
}

// String returns a compact representation for debugging.
func (r *EvaluationResponse) String() string {
	if r.Success {
		return fmt.Sprintf("EvaluationResponse{Success: true, Evaluations: %d, Attempts: %d}", len(r.Data), r.Attempts)
	}
	return fmt.Sprintf("EvaluationResponse{Success: false, Status: %d, Attempts: %d, Error: %q}", r.StatusCode, r.Attempts, r.ErrorMessage)
}

// ============================================================================
// Mixed Batch Entries
// ============================================================================

// MixedEvaluation pairs an evaluation type with its request for use in
// mixed-type batches.
type MixedEvaluation struct {
	Type    EvaluationType
	Request *EvaluationRequest
}

// nowMillis returns the current wall-clock time in unix milliseconds.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}
