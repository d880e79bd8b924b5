package iftracer

import (
	"github.com/google/uuid"
)

// NewTraceID generates a unique trace identifier.
// Trace IDs are UUIDv4 strings, matching what the evaluation service
// records alongside each evaluation.
func NewTraceID() string {
	return uuid.NewString()
}

// IsValidUUID returns true if the string is a valid UUID.
func IsValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
