package domain

import "errors"

var (
	// ErrConfiguration indicates the installation is not usable yet,
	// most commonly because the salt was never set.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvalidLength indicates the requested password length cannot be produced.
	ErrInvalidLength = errors.New("invalid password length")

	// ErrDerivationExhausted indicates the retry bound was reached before a
	// candidate satisfied the complexity check.
	ErrDerivationExhausted = errors.New("derivation exhausted")

	// ErrClipboardUnavailable indicates the system clipboard could not be written.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// ErrEmptyName indicates the service name is missing.
	ErrEmptyName = errors.New("service name is required")

	// ErrEmptyPassphrase indicates the master passphrase is missing.
	ErrEmptyPassphrase = errors.New("master passphrase is required")
)
