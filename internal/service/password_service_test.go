package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"passwd/internal/codec"
	"passwd/internal/complexity"
	"passwd/internal/domain"
	"passwd/internal/kdf"
	"passwd/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSalt = []byte("0123456789abcdef")

// scriptedDeriver returns prepared outputs in order, repeating the last one,
// and records every seed it was asked to hash.
type scriptedDeriver struct {
	t       *testing.T
	outputs [][]byte
	seeds   []string
	err     error
}

func (d *scriptedDeriver) Derive(seed []byte, size int) ([]byte, error) {
	assert.Equal(d.t, service.DerivedSize, size)
	d.seeds = append(d.seeds, string(seed))
	if d.err != nil {
		return nil, d.err
	}
	i := len(d.seeds) - 1
	if i >= len(d.outputs) {
		i = len(d.outputs) - 1
	}
	return d.outputs[i], nil
}

func (d *scriptedDeriver) Name() string { return "scripted" }

// bytesFor returns KDF output that the codec turns into exactly target:
// one byte per decimal digit of the target's integer value.
func bytesFor(t *testing.T, target string) []byte {
	t.Helper()
	v, err := codec.New().DecodeInt(target)
	require.NoError(t, err)

	digits := v.String()
	out := make([]byte, len(digits))
	for i := range digits {
		out[i] = digits[i] - '0'
	}
	return out
}

func newPBKDF2(t *testing.T, salt []byte) *kdf.PBKDF2 {
	t.Helper()
	d, err := kdf.NewPBKDF2(salt, 10)
	require.NoError(t, err)
	return d
}

func req(name, pass string, n int) domain.Request {
	return domain.Request{Name: name, Passphrase: pass, Length: n}
}

func TestPasswordService_Derive_AcceptsFirstSecureCandidate(t *testing.T) {
	d := &scriptedDeriver{t: t, outputs: [][]byte{bytesFor(t, "Ab1%cdefghijXYZ")}}
	svc := service.NewPasswordService(d)

	result, err := svc.Derive(context.Background(), req("github", "hunter2", 12))
	require.NoError(t, err)

	assert.Equal(t, "Ab1%cdefghij", result.Password)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, []string{"githubhunter2"}, d.seeds)
}

func TestPasswordService_Derive_RetriesWithMutatedSeed(t *testing.T) {
	d := &scriptedDeriver{t: t, outputs: [][]byte{
		bytesFor(t, "abcdefghijkmnop"),
		bytesFor(t, "ABCDEFGHJKLMNP"),
		bytesFor(t, "Zz9*abcdefghijk"),
	}}
	svc := service.NewPasswordService(d)

	result, err := svc.Derive(context.Background(), req("mail", "pw", 12))
	require.NoError(t, err)

	assert.Equal(t, "Zz9*abcdefgh", result.Password)
	assert.Equal(t, 3, result.Attempts)
	assert.Equal(t, []string{"mailpw", "mailpw*", "mailpw**"}, d.seeds)
}

func TestPasswordService_Derive_ExhaustsAttempts(t *testing.T) {
	d := &scriptedDeriver{t: t, outputs: [][]byte{bytesFor(t, "abcdefghijkmnop")}}
	svc := service.NewPasswordService(d, service.WithMaxAttempts(5))

	_, err := svc.Derive(context.Background(), req("mail", "pw", 12))
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrDerivationExhausted)
	assert.Contains(t, err.Error(), "5 attempts")
	require.Len(t, d.seeds, 5)
	assert.Equal(t, "mailpw****", d.seeds[4])
}

func TestPasswordService_Derive_RejectsLengthOutOfRange(t *testing.T) {
	for _, n := range []int{0, 1, 3, service.MaxLength + 1} {
		d := &scriptedDeriver{t: t, outputs: [][]byte{bytesFor(t, "Ab1%cdefghij")}}
		svc := service.NewPasswordService(d)

		_, err := svc.Derive(context.Background(), req("a", "b", n))
		assert.ErrorIs(t, err, domain.ErrInvalidLength, "n=%d", n)
		assert.Empty(t, d.seeds, "no hashing for n=%d", n)
	}
}

func TestPasswordService_Derive_ShortEncodingIsInvalidLength(t *testing.T) {
	d := &scriptedDeriver{t: t, outputs: [][]byte{bytesFor(t, "Ab1%c")}}
	svc := service.NewPasswordService(d)

	_, err := svc.Derive(context.Background(), req("a", "b", 12))
	assert.ErrorIs(t, err, domain.ErrInvalidLength)
}

func TestPasswordService_Derive_RequiresNameAndPassphrase(t *testing.T) {
	svc := service.NewPasswordService(&scriptedDeriver{t: t})

	_, err := svc.Derive(context.Background(), req("", "pw", 12))
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.Derive(context.Background(), req("name", "", 12))
	assert.ErrorIs(t, err, domain.ErrEmptyPassphrase)
}

func TestPasswordService_Derive_PropagatesDeriverError(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewPasswordService(&scriptedDeriver{t: t, err: boom})

	_, err := svc.Derive(context.Background(), req("a", "b", 12))
	assert.ErrorIs(t, err, boom)
}

func TestPasswordService_Derive_StopsOnCancelledContext(t *testing.T) {
	d := &scriptedDeriver{t: t, outputs: [][]byte{bytesFor(t, "Ab1%cdefghij")}}
	svc := service.NewPasswordService(d)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Derive(ctx, req("a", "b", 12))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, d.seeds)
}

func TestPasswordService_Derive_ReportsElapsed(t *testing.T) {
	d := &scriptedDeriver{t: t, outputs: [][]byte{bytesFor(t, "Ab1%cdefghij")}}
	clock := domain.NewSteppingClock(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), 120*time.Millisecond)
	svc := service.NewPasswordService(d, service.WithClock(clock))

	result, err := svc.Derive(context.Background(), req("a", "b", 12))
	require.NoError(t, err)
	assert.Equal(t, 120*time.Millisecond, result.Elapsed)
}

func TestPasswordService_Derive_KnownVectors(t *testing.T) {
	// PBKDF2-HMAC-SHA512, 100 iterations, 64 bytes from offset 0, decimal
	// concatenation, truncation, '*' per rejected attempt.
	d, err := kdf.NewPBKDF2(testSalt, 100)
	require.NoError(t, err)
	svc := service.NewPasswordService(d)

	tests := []struct {
		name     string
		length   int
		want     string
		attempts int
	}{
		{"github", 12, ":E@7P3eqvH6g", 1},
		{"bank", 12, "1DyRYAu%Mgv9", 5},
		{"example.com", 12, "g@ex%HY3VLBm", 3},
		// ':' is the only digit-class character here.
		{"router", 4, "@nS:", 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Derive(context.Background(), req(tt.name, "correct horse battery staple", tt.length))
			require.NoError(t, err)

			assert.Equal(t, tt.want, result.Password)
			assert.Equal(t, tt.attempts, result.Attempts)
		})
	}
}

func TestPasswordService_Derive_IsDeterministic(t *testing.T) {
	svc := service.NewPasswordService(newPBKDF2(t, testSalt))

	first, err := svc.Derive(context.Background(), req("github", "correct horse", 12))
	require.NoError(t, err)
	second, err := svc.Derive(context.Background(), req("github", "correct horse", 12))
	require.NoError(t, err)

	assert.Equal(t, first.Password, second.Password)
	assert.True(t, complexity.IsSecure(first.Password))
}

func TestPasswordService_Derive_IsSensitiveToEveryInput(t *testing.T) {
	base := service.NewPasswordService(newPBKDF2(t, testSalt))
	otherSalt := service.NewPasswordService(newPBKDF2(t, []byte("fedcba9876543210")))
	ctx := context.Background()

	ref, err := base.Derive(ctx, req("github", "correct horse", 16))
	require.NoError(t, err)

	variants := map[string]func() (*domain.Result, error){
		"name":       func() (*domain.Result, error) { return base.Derive(ctx, req("gitlab", "correct horse", 16)) },
		"passphrase": func() (*domain.Result, error) { return base.Derive(ctx, req("github", "correct horsf", 16)) },
		"salt":       func() (*domain.Result, error) { return otherSalt.Derive(ctx, req("github", "correct horse", 16)) },
	}

	for name, derive := range variants {
		t.Run(name, func(t *testing.T) {
			got, err := derive()
			require.NoError(t, err)
			assert.NotEqual(t, ref.Password, got.Password)
		})
	}
}

func TestPasswordService_Derive_OutputLengthMatchesRequest(t *testing.T) {
	svc := service.NewPasswordService(newPBKDF2(t, testSalt))

	for n := complexity.MinLength; n <= 24; n++ {
		result, err := svc.Derive(context.Background(), req("service", "pass", n))
		require.NoError(t, err, "n=%d", n)
		assert.Len(t, result.Password, n)
		assert.True(t, complexity.IsSecure(result.Password))
	}
}

func TestPasswordService_Derive_Normalization(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	ctx := context.Background()

	plain := service.NewPasswordService(newPBKDF2(t, testSalt))
	a, err := plain.Derive(ctx, req("site", composed, 12))
	require.NoError(t, err)
	b, err := plain.Derive(ctx, req("site", decomposed, 12))
	require.NoError(t, err)
	assert.NotEqual(t, a.Password, b.Password)

	normalized := service.NewPasswordService(newPBKDF2(t, testSalt), service.WithNormalization(true))
	a, err = normalized.Derive(ctx, req("site", composed, 12))
	require.NoError(t, err)
	b, err = normalized.Derive(ctx, req("site", decomposed, 12))
	require.NoError(t, err)
	assert.Equal(t, a.Password, b.Password)
}

func TestPasswordService_Derive_DoesNotLogSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d := &scriptedDeriver{t: t, outputs: [][]byte{
		bytesFor(t, "abcdefghijkmnop"),
		bytesFor(t, "Ab1%cdefghijXYZ"),
	}}
	svc := service.NewPasswordService(d, service.WithLogger(logger))

	result, err := svc.Derive(context.Background(), req("github", "s3cr3t-passphrase", 12))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "password derived")
	assert.False(t, strings.Contains(out, "s3cr3t-passphrase"))
	assert.False(t, strings.Contains(out, result.Password))
}
