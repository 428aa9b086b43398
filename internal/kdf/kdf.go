// Package kdf wraps the slow, salted hash functions that turn a seed into
// the raw bytes a password is encoded from.
//
// Every backend reads its output from offset 0 of the derived key stream.
// Changing the backend, its work factor, the salt, or the output size
// changes every derived password.
package kdf

import (
	"fmt"
	"strings"
)

// Backend names accepted by New.
const (
	BackendPBKDF2   = "pbkdf2"
	BackendArgon2id = "argon2id"
)

// Deriver produces size bytes from a seed.
type Deriver interface {
	Derive(seed []byte, size int) ([]byte, error)
	Name() string
}

// Options carries the work factors of every backend; only the selected
// backend's fields are used.
type Options struct {
	Iterations int
	Argon2     Argon2Params
}

// DefaultOptions returns the work factors used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Iterations: DefaultIterations,
		Argon2:     DefaultArgon2Params(),
	}
}

// New builds the named backend. The salt is checked before anything else.
func New(backend string, salt []byte, opts Options) (Deriver, error) {
	switch strings.ToLower(backend) {
	case "", BackendPBKDF2:
		return NewPBKDF2(salt, opts.Iterations)
	case BackendArgon2id:
		return NewArgon2id(salt, opts.Argon2)
	default:
		return nil, fmt.Errorf("unknown kdf backend %q (want %q or %q)", backend, BackendPBKDF2, BackendArgon2id)
	}
}

func checkSize(size int) error {
	if size <= 0 {
		return fmt.Errorf("output size must be positive, got %d", size)
	}
	return nil
}
