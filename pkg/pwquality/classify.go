// pkg/pwquality/classify.go

package pwquality

import "unicode"

// Class is a character category used by credits and class rules.
type Class int

const (
	ClassDigit Class = iota
	ClassUpper
	ClassLower
	ClassOther
)

// NumClasses is the number of distinct character classes.
const NumClasses = 4

func (c Class) String() string {
	switch c {
	case ClassDigit:
		return "digit"
	case ClassUpper:
		return "upper"
	case ClassLower:
		return "lower"
	default:
		return "other"
	}
}

// Classify places r in exactly one class. Classification is Unicode aware:
// any decimal digit is a digit and any cased letter is upper or lower.
// Everything else, including uncased letters and U+FFFD produced by
// invalid UTF-8, is other.
func Classify(r rune) Class {
	switch {
	case unicode.IsDigit(r):
		return ClassDigit
	case unicode.IsUpper(r):
		return ClassUpper
	case unicode.IsLower(r):
		return ClassLower
	default:
		return ClassOther
	}
}

// ClassCounts holds per-class character counts of one password.
type ClassCounts [NumClasses]int

// CountClasses tallies the classes of every rune in s.
func CountClasses(s string) ClassCounts {
	var counts ClassCounts
	for _, r := range s {
		counts[Classify(r)]++
	}
	return counts
}

// Present returns how many classes occur at least once.
func (c ClassCounts) Present() int {
	n := 0
	for _, v := range c {
		if v > 0 {
			n++
		}
	}
	return n
}
