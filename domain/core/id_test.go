package core

import (
	"testing"

	"github.com/google/uuid"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id == "" {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestNewIDIsVersion7 checks the time-ordered UUID layout
func TestNewIDIsVersion7(t *testing.T) {
	parsed, err := uuid.Parse(NewDiagnosisID().String())
	if err != nil {
		t.Fatalf("NewDiagnosisID produced an invalid UUID: %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("Expected UUID version 7, got %d", parsed.Version())
	}
}
