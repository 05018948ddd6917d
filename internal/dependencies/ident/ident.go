package ident

import "github.com/google/uuid"

// Generator produces player identifiers and can be mocked for testing
type Generator interface {
	// NewID returns a fresh, globally unique identifier
	NewID() string
}

// UUIDGenerator implements Generator with random (version 4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a new UUID string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
