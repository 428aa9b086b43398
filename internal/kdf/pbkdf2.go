package kdf

import (
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// DefaultIterations is the PBKDF2 work factor used when none is configured.
const DefaultIterations = 10000

// PBKDF2 derives bytes with PBKDF2-HMAC-SHA512.
type PBKDF2 struct {
	salt       []byte
	iterations int
}

// NewPBKDF2 creates a PBKDF2 deriver. A zero iteration count selects
// DefaultIterations.
func NewPBKDF2(salt []byte, iterations int) (*PBKDF2, error) {
	if err := CheckSalt(salt); err != nil {
		return nil, err
	}
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if iterations < 0 {
		return nil, fmt.Errorf("pbkdf2 iterations must be positive, got %d", iterations)
	}
	return &PBKDF2{
		salt:       append([]byte(nil), salt...),
		iterations: iterations,
	}, nil
}

// Derive returns the first size bytes of the PBKDF2 stream for seed.
func (p *PBKDF2) Derive(seed []byte, size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return pbkdf2.Key(seed, p.salt, p.iterations, size, sha512.New), nil
}

// Name identifies the backend in logs.
func (p *PBKDF2) Name() string {
	return BackendPBKDF2
}

// Iterations returns the configured work factor.
func (p *PBKDF2) Iterations() int {
	return p.iterations
}
