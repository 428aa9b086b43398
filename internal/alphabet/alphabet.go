// Package alphabet defines the ordered 64-symbol set that derived passwords
// are written in. A symbol's position is its digit value in the base-64
// numeral system used by the codec, so the order must never change.
package alphabet

import (
	"fmt"
	"strings"
)

// Size is the number of symbols, and therefore the numeral base.
const Size = 64

// Range is an inclusive span of ASCII code points. A singleton has Lo == Hi.
type Range struct {
	Lo, Hi byte
}

// Single returns a one-character Range.
func Single(c byte) Range {
	return Range{Lo: c, Hi: c}
}

// Spec lists the code points that make up the alphabet, in digit order:
// "#$%", "*", "0-9:", "@A-H", "J-N", "P", "R-Z", "a-k", "m-z".
var Spec = []Range{
	{35, 37},
	Single(42),
	{48, 58},
	{64, 72},
	{74, 78},
	Single(80),
	{82, 90},
	{97, 107},
	{109, 122},
}

var symbols = mustExpand(Spec)

// Symbols returns the alphabet. Index 0 is the lowest-value digit.
func Symbols() string {
	return symbols
}

// IndexOf returns the digit value of r.
func IndexOf(r rune) (int, bool) {
	if r < 0 || r > 127 {
		return 0, false
	}
	i := strings.IndexByte(symbols, byte(r))
	return i, i >= 0
}

// Expand flattens ranges into a string of symbols in ascending order.
// It rejects inverted ranges and any overlap or out-of-order span, since
// either would make digit values ambiguous.
func Expand(spec []Range) (string, error) {
	var b strings.Builder
	last := -1
	for _, r := range spec {
		if r.Hi < r.Lo {
			return "", fmt.Errorf("range %d-%d is inverted", r.Lo, r.Hi)
		}
		if int(r.Lo) <= last {
			return "", fmt.Errorf("range %d-%d overlaps or precedes code point %d", r.Lo, r.Hi, last)
		}
		for c := int(r.Lo); c <= int(r.Hi); c++ {
			b.WriteByte(byte(c))
		}
		last = int(r.Hi)
	}
	return b.String(), nil
}

func mustExpand(spec []Range) string {
	s, err := Expand(spec)
	if err != nil {
		panic("alphabet: " + err.Error())
	}
	if len(s) != Size {
		panic(fmt.Sprintf("alphabet: expanded to %d symbols, want %d", len(s), Size))
	}
	return s
}
