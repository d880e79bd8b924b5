package iftracer

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseEvaluationType(t *testing.T) {
	tests := []struct {
		input   string
		want    EvaluationType
		wantErr bool
	}{
		{"safety", EvaluationTypeSafety, false},
		{"hallubias", EvaluationTypeHallucinationBias, false},
		{"exterhallu", EvaluationTypeExternalHallucination, false},
		{"", "", true},
		{"SAFETY", "", true},
		{"hallucination", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEvaluationType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseEvaluationType(%q) = nil error, want ValidationError", tt.input)
				}
				if _, ok := AsValidationError(err); !ok {
					t.Errorf("error = %T, want *ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEvaluationType(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseEvaluationType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluationTypeIsValid(t *testing.T) {
	for _, typ := range []EvaluationType{
		EvaluationTypeSafety,
		EvaluationTypeHallucinationBias,
		EvaluationTypeExternalHallucination,
	} {
		if !typ.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", typ)
		}
	}
	if EvaluationType("bogus").IsValid() {
		t.Error(`EvaluationType("bogus").IsValid() = true, want false`)
	}
}

func TestEnvelopeDistinguishesMissingFromEmpty(t *testing.T) {
	var missing evaluationsEnvelope
	if err := json.Unmarshal([]byte(`{"status":"ok"}`), &missing); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if missing.Evaluations != nil {
		t.Error("Evaluations != nil for body without the field, want nil")
	}

	var empty evaluationsEnvelope
	if err := json.Unmarshal([]byte(`{"evaluations":[]}`), &empty); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if empty.Evaluations == nil {
		t.Fatal("Evaluations = nil for empty list, want non-nil")
	}
	if len(*empty.Evaluations) != 0 {
		t.Errorf("len = %d, want 0", len(*empty.Evaluations))
	}
}

func TestEvaluationResponseString(t *testing.T) {
	success := successResponse([]Evaluation{{Explanation: "ok", Score: 1}}, nil, 200, 1)
	if s := success.String(); !strings.Contains(s, "Success: true") {
		t.Errorf("String() = %q, want success marker", s)
	}

	failure := errorResponse("boom", 500, 3)
	s := failure.String()
	if !strings.Contains(s, "Success: false") || !strings.Contains(s, `"boom"`) {
		t.Errorf("String() = %q, want failure marker and message", s)
	}
}
