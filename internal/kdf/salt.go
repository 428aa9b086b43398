package kdf

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"passwd/internal/domain"
)

// PlaceholderSalt is the value shipped in source before an installation
// generates its own salt.
const PlaceholderSalt = "$SALT"

// MinSaltLength is the shortest salt accepted, in bytes.
const MinSaltLength = 8

// ErrSalt marks a salt that was never set up. It is a domain.ErrConfiguration.
var ErrSalt = fmt.Errorf("%w: invalid salt", domain.ErrConfiguration)

// CheckSalt reports a configuration error for a salt that was never set.
func CheckSalt(salt []byte) error {
	switch {
	case len(salt) == 0:
		return fmt.Errorf("%w: empty", ErrSalt)
	case bytes.Equal(salt, []byte(PlaceholderSalt)):
		return fmt.Errorf("%w: still the placeholder %q", ErrSalt, PlaceholderSalt)
	case len(salt) < MinSaltLength:
		return fmt.Errorf("%w: must be at least %d bytes, got %d", ErrSalt, MinSaltLength, len(salt))
	}
	return nil
}

// GenerateSalt returns size random bytes, hex encoded.
func GenerateSalt(size int) (string, error) {
	if size < MinSaltLength {
		return "", fmt.Errorf("salt size must be at least %d bytes, got %d", MinSaltLength, size)
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
