package uid

import "github.com/google/uuid"

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// UUID generates time-ordered UUIDs (v7), falling back to v4.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
