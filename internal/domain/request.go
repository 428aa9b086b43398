package domain

import (
	"strings"
	"time"
)

// SeedFiller is appended to the seed each time a candidate is rejected.
const SeedFiller = "*"

// Request carries the inputs of a single password derivation.
type Request struct {
	Name       string
	Passphrase string
	Length     int
}

// Validate checks that the request carries a name and a passphrase.
// Length bounds are enforced by the derivation service, which knows the
// encoder's limits.
func (r Request) Validate() error {
	if r.Name == "" {
		return ErrEmptyName
	}
	if r.Passphrase == "" {
		return ErrEmptyPassphrase
	}
	return nil
}

// Seed returns the KDF input for the given retry attempt: the service name
// followed by the passphrase and one filler per earlier rejection.
func (r Request) Seed(attempt int) string {
	return r.Name + r.Passphrase + strings.Repeat(SeedFiller, attempt)
}

// Result is an accepted password together with derivation diagnostics.
type Result struct {
	Password string
	Attempts int
	Elapsed  time.Duration
}
