package core

import "github.com/google/uuid"

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// Domain-specific ID types
type (
	DiagnosisID ID
	RequestID   ID
)

func (id DiagnosisID) String() string { return ID(id).String() }
func (id RequestID) String() string   { return ID(id).String() }

// NewDiagnosisID returns a fresh diagnosis identifier
func NewDiagnosisID() DiagnosisID { return DiagnosisID(NewID()) }

// NewRequestID returns a fresh request identifier
func NewRequestID() RequestID { return RequestID(NewID()) }
