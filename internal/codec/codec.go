// Package codec writes non-negative integers in a positional numeral system
// whose digits are the symbols of an alphabet.
package codec

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"passwd/internal/alphabet"
)

var (
	// ErrEmptyInput is returned when there is nothing to encode or decode.
	ErrEmptyInput = errors.New("codec: empty input")

	// ErrInvalidSymbol is returned when decoding meets a character outside the alphabet.
	ErrInvalidSymbol = errors.New("codec: invalid symbol")

	// ErrNegative is returned when asked to encode a negative integer.
	ErrNegative = errors.New("codec: negative value")
)

// Codec converts between integers and strings over a fixed alphabet.
type Codec struct {
	symbols string
	base    *big.Int
	indexOf func(rune) (int, bool)
}

// New creates a Codec over the password alphabet.
func New() *Codec {
	return &Codec{
		symbols: alphabet.Symbols(),
		base:    big.NewInt(alphabet.Size),
		indexOf: alphabet.IndexOf,
	}
}

// NewWithSymbols creates a Codec over an arbitrary set of single-byte symbols.
// The first symbol is digit zero.
func NewWithSymbols(symbols string) *Codec {
	index := make(map[rune]int, len(symbols))
	for i := 0; i < len(symbols); i++ {
		index[rune(symbols[i])] = i
	}
	return &Codec{
		symbols: symbols,
		base:    big.NewInt(int64(len(symbols))),
		indexOf: func(r rune) (int, bool) {
			i, ok := index[r]
			return i, ok
		},
	}
}

// Base returns the numeral base.
func (c *Codec) Base() int {
	return len(c.symbols)
}

// EncodeInt writes v most-significant digit first. Zero encodes as the
// first symbol.
func (c *Codec) EncodeInt(v *big.Int) (string, error) {
	if v.Sign() < 0 {
		return "", ErrNegative
	}

	q := new(big.Int).Set(v)
	m := new(big.Int)
	var digits []byte
	for {
		q.QuoRem(q, c.base, m)
		digits = append(digits, c.symbols[m.Int64()])
		if q.Sign() == 0 {
			break
		}
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits), nil
}

// DecodeInt parses s back into the integer EncodeInt produced it from.
func (c *Codec) DecodeInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, ErrEmptyInput
	}

	v := new(big.Int)
	d := new(big.Int)
	for i := 0; i < len(s); i++ {
		digit, ok := c.indexOf(rune(s[i]))
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidSymbol, s[i], i)
		}
		v.Mul(v, c.base)
		v.Add(v, d.SetInt64(int64(digit)))
	}
	return v, nil
}

// EncodeBytes encodes raw KDF output. The bytes are not read as a big-endian
// integer: the decimal form of every byte is concatenated and the resulting
// digit string is parsed as one base-10 integer (see DigitsInt). Previously
// derived passwords depend on this exact mapping.
func (c *Codec) EncodeBytes(b []byte) (string, error) {
	if len(b) == 0 {
		return "", ErrEmptyInput
	}
	return c.EncodeInt(DigitsInt(b))
}

// DigitsInt returns the integer spelled by the decimal forms of b's bytes
// written one after another, e.g. {1, 20, 255} -> 120255.
func DigitsInt(b []byte) *big.Int {
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for _, x := range b {
		sb.WriteString(strconv.Itoa(int(x)))
	}

	v, ok := new(big.Int).SetString(sb.String(), 10)
	if !ok {
		// The builder only ever holds ASCII digits.
		panic("codec: unparsable digit string")
	}
	return v
}
