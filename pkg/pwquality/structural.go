// pkg/pwquality/structural.go

package pwquality

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the case-folded form of s. A Caser keeps state, so each
// call builds its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func reverseRunes(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// compareOld runs the checks that need a reference password. The caller
// has already rejected an exact match. Case-only changes are tested first:
// a case-changed palindromic old password is CaseChangesOnly, not
// Palindrome.
func compareOld(password, old string) Reason {
	newFold, oldFold := fold(password), fold(old)
	newRunes, oldRunes := []rune(newFold), []rune(oldFold)

	if len([]rune(password)) == len([]rune(old)) && newFold == oldFold {
		return ErrCaseChangesOnly
	}
	if len(newRunes) > 1 && reverseRunes(newFold) == oldFold {
		return ErrPalindrome
	}
	if len(newRunes) == len(oldRunes) && strings.Contains(oldFold+oldFold, newFold) {
		return ErrRotated
	}
	return 0
}

// longestRun returns the length of the longest run of consecutive runes for
// which same(prev, cur) holds. Single runes count as runs of one.
func longestRun(s string, same func(prev, cur rune) bool) int {
	longest, current := 0, 0
	var prev rune
	for i, r := range []rune(s) {
		if i > 0 && same(prev, r) {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
		prev = r
	}
	return longest
}

// MaxRepeatRun is the longest run of one identical character.
func MaxRepeatRun(s string) int {
	return longestRun(s, func(prev, cur rune) bool { return prev == cur })
}

// MaxClassRun is the longest run of characters sharing a class.
func MaxClassRun(s string) int {
	return longestRun(s, func(prev, cur rune) bool { return Classify(prev) == Classify(cur) })
}

// MaxSequenceRun is the longest monotonic run with a step of exactly +1 or
// exactly -1 code point. A run cannot change direction.
func MaxSequenceRun(s string) int {
	up := longestRun(s, func(prev, cur rune) bool { return cur == prev+1 })
	down := longestRun(s, func(prev, cur rune) bool { return cur == prev-1 })
	return max(up, down)
}

// checkRuns applies the repeat, class repeat and sequence limits in order.
func checkRuns(p Policy, password string) Reason {
	if p.MaxRepeat > 0 && MaxRepeatRun(password) > p.MaxRepeat {
		return ErrMaxConsecutive
	}
	if p.MaxClassRepeat > 0 && MaxClassRun(password) > p.MaxClassRepeat {
		return ErrMaxClassRepeat
	}
	if p.MaxSequence > 0 && MaxSequenceRun(password) > p.MaxSequence {
		return ErrMaxSequence
	}
	return 0
}
