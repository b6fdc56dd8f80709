// Package idgen issues identifiers for persisted records.
package idgen

import "github.com/google/uuid"

// Generator returns a fresh globally unique identifier on every call.
type Generator interface {
	Generate() string
}

// UUID generates random (version 4) UUID strings.
type UUID struct{}

// Generate returns a 36 character UUIDv4.
func (UUID) Generate() string {
	return uuid.NewString()
}
