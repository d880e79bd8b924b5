package iftracer

import "testing"

func TestNewTraceID(t *testing.T) {
	id := NewTraceID()
	if !IsValidUUID(id) {
		t.Errorf("NewTraceID() = %q, want valid UUID", id)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewTraceID()
		if seen[id] {
			t.Fatalf("duplicate trace ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("3b241101-e2bb-4255-8caf-4136c566a962") {
		t.Error("IsValidUUID(valid) = false, want true")
	}
	if IsValidUUID("not-a-uuid") {
		t.Error("IsValidUUID(garbage) = true, want false")
	}
	if IsValidUUID("") {
		t.Error("IsValidUUID(\"\") = true, want false")
	}
}
