// pkg/pwquality/similarity.go

package pwquality

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Distance is the case-insensitive edit distance between two passwords,
// counted in runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(fold(a), fold(b))
}

// tooSimilar reports whether password stays within min_diff edits of old.
// A password at least twice as long as the old one always passes.
func tooSimilar(p Policy, password, old string) bool {
	if p.MinDiff <= 0 {
		return false
	}
	// libpwquality's similar() exempts a new password of at least twice the
	// old length regardless of distance; kept for compatible verdicts.
	if utf8.RuneCountInString(password) >= 2*utf8.RuneCountInString(old) {
		return false
	}
	return Distance(password, old) < p.MinDiff
}
