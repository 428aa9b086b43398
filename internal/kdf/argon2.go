package kdf

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	minArgon2MemoryKiB uint32 = 8 * 1024
	minArgon2Time      uint32 = 1
	minArgon2Threads   uint8  = 1
)

// Argon2Params are the Argon2id cost parameters.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultArgon2Params returns one pass over 64 MiB with 4 lanes.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:      1,
		MemoryKiB: 64 * 1024,
		Threads:   4,
	}
}

func (p Argon2Params) validate() error {
	if p.Time < minArgon2Time {
		return fmt.Errorf("argon2 time must be at least %d", minArgon2Time)
	}
	if p.MemoryKiB < minArgon2MemoryKiB {
		return fmt.Errorf("argon2 memory must be at least %d KiB", minArgon2MemoryKiB)
	}
	if p.Threads < minArgon2Threads {
		return fmt.Errorf("argon2 threads must be at least %d", minArgon2Threads)
	}
	return nil
}

// Argon2id derives bytes with Argon2id.
type Argon2id struct {
	salt   []byte
	params Argon2Params
}

// NewArgon2id creates an Argon2id deriver.
func NewArgon2id(salt []byte, params Argon2Params) (*Argon2id, error) {
	if err := CheckSalt(salt); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Argon2id{
		salt:   append([]byte(nil), salt...),
		params: params,
	}, nil
}

// Derive returns size bytes of Argon2id output for seed.
func (a *Argon2id) Derive(seed []byte, size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return argon2.IDKey(seed, a.salt, a.params.Time, a.params.MemoryKiB, a.params.Threads, uint32(size)), nil
}

// Name identifies the backend in logs.
func (a *Argon2id) Name() string {
	return BackendArgon2id
}
