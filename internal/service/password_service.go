package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"passwd/internal/codec"
	"passwd/internal/complexity"
	"passwd/internal/domain"
)

const (
	// DefaultMaxAttempts bounds the seed-mutation retries.
	DefaultMaxAttempts = 10000

	// DerivedSize is the number of KDF bytes fed to the codec per attempt.
	DerivedSize = 64

	// MaxLength is the longest password accepted. 64 derived bytes usually
	// spell about 160 decimal digits, around 90 symbols; a shorter encoding
	// is still caught on each attempt.
	MaxLength = 64
)

// Deriver defines the slow hash used for each attempt.
type Deriver interface {
	Derive(seed []byte, size int) ([]byte, error)
	Name() string
}

// Option configures a PasswordService.
type Option func(*PasswordService)

// WithMaxAttempts overrides DefaultMaxAttempts. Non-positive values are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *PasswordService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithClock sets the time source used for Result.Elapsed.
func WithClock(c domain.Clock) Option {
	return func(s *PasswordService) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger. The passphrase, seed and password are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *PasswordService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNormalization makes the service NFC-normalise the name and passphrase
// before building the seed, so composed and decomposed input agree.
func WithNormalization(enabled bool) Option {
	return func(s *PasswordService) {
		s.normalize = enabled
	}
}

// PasswordService runs the derive, encode, truncate, check loop.
type PasswordService struct {
	deriver     Deriver
	codec       *codec.Codec
	clock       domain.Clock
	logger      *slog.Logger
	maxAttempts int
	normalize   bool
}

// NewPasswordService creates a PasswordService over the given deriver.
func NewPasswordService(deriver Deriver, opts ...Option) *PasswordService {
	s := &PasswordService{
		deriver:     deriver,
		codec:       codec.New(),
		clock:       domain.RealClock{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Derive returns the password for req. The same request, salt and backend
// settings always yield the same password.
//
// Each rejected candidate appends domain.SeedFiller to the seed and the
// longer seed is hashed again. Returns domain.ErrInvalidLength when the
// length can never be satisfied and domain.ErrDerivationExhausted when the
// attempt bound is reached.
func (s *PasswordService) Derive(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateLength(req.Length); err != nil {
		return nil, err
	}

	if s.normalize {
		req.Name = norm.NFC.String(req.Name)
		req.Passphrase = norm.NFC.String(req.Passphrase)
	}

	start := s.clock.Now()

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		candidate, err := s.candidate(req.Seed(attempt), req.Length)
		if err != nil {
			return nil, err
		}

		if complexity.IsSecure(candidate) {
			result := &domain.Result{
				Password: candidate,
				Attempts: attempt + 1,
				Elapsed:  s.clock.Now().Sub(start),
			}
			s.logger.Debug("password derived",
				"kdf", s.deriver.Name(),
				"attempts", result.Attempts,
				"elapsed", result.Elapsed,
			)
			return result, nil
		}

		s.logger.Debug("candidate rejected", "attempt", attempt+1)
	}

	return nil, fmt.Errorf("%w: no candidate passed the complexity check after %d attempts", domain.ErrDerivationExhausted, s.maxAttempts)
}

// ValidateLength reports domain.ErrInvalidLength for lengths that can never
// be produced: shorter than one character per class, or longer than MaxLength.
func ValidateLength(n int) error {
	if n < complexity.MinLength || n > MaxLength {
		return fmt.Errorf("%w: %d is outside [%d, %d]", domain.ErrInvalidLength, n, complexity.MinLength, MaxLength)
	}
	return nil
}

func (s *PasswordService) candidate(seed string, length int) (string, error) {
	raw, err := s.deriver.Derive([]byte(seed), DerivedSize)
	if err != nil {
		return "", fmt.Errorf("deriving key: %w", err)
	}

	encoded, err := s.codec.EncodeBytes(raw)
	if err != nil {
		return "", fmt.Errorf("encoding key: %w", err)
	}

	if len(encoded) < length {
		return "", fmt.Errorf("%w: encoded key has %d symbols, need %d", domain.ErrInvalidLength, len(encoded), length)
	}
	return encoded[:length], nil
}
