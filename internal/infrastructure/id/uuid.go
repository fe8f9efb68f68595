package id

import "github.com/google/uuid"

// Generator produces identifiers for payment requests.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// NewUUIDGenerator returns a Generator backed by random UUIDv4 strings.
func NewUUIDGenerator() Generator { return uuidGenerator{} }

func (uuidGenerator) NewID() string { return uuid.NewString() }
