package pwquality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareOld(t *testing.T) {
	tests := []struct {
		name     string
		password string
		old      string
		want     Reason
	}{
		{"reversed", "4321dcba", "abcd1234", ErrPalindrome},
		{"reversed with case change", "4321DCBA", "abcd1234", ErrPalindrome},
		{"single rune is not a palindrome", "A", "a", ErrCaseChangesOnly},
		{"case-changed palindrome", "ABA", "aba", ErrCaseChangesOnly},
		{"case-changed palindrome, mixed", "XaBCBaX", "xAbcbAx", ErrCaseChangesOnly},
		{"case only", "ABCD1234", "abcd1234", ErrCaseChangesOnly},
		{"rotation", "1234abcd", "abcd1234", ErrRotated},
		{"rotation with case change", "1234ABCD", "abcd1234", ErrRotated},
		{"unrelated", "zyxw9876", "abcd1234", 0},
		{"different length", "abcd12345", "abcd1234", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareOld(tt.password, tt.old))
		})
	}
}

func TestRunLengths(t *testing.T) {
	tests := []struct {
		in       string
		repeat   int
		class    int
		sequence int
	}{
		{"", 0, 0, 0},
		{"a", 1, 1, 1},
		{"aaab", 3, 4, 2},
		{"abcdE", 1, 4, 4},
		{"9876x", 1, 4, 4},
		{"abcba", 1, 5, 3},
		{"aA1!", 1, 1, 1},
		{"12345xyz", 1, 5, 5},
		{"AAbb11!!", 2, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.repeat, MaxRepeatRun(tt.in), "repeat")
			assert.Equal(t, tt.class, MaxClassRun(tt.in), "class")
			assert.Equal(t, tt.sequence, MaxSequenceRun(tt.in), "sequence")
		})
	}
}

func TestCheckRunsDisabledAtZero(t *testing.T) {
	p := NewSettings().Snapshot()
	assert.Equal(t, Reason(0), checkRuns(p, "aaaaaaaaabcdefghijk"))

	p.MaxRepeat = 2
	p.MaxClassRepeat = 2
	p.MaxSequence = 2
	// Repeat is reported first even though every limit is exceeded.
	assert.Equal(t, ErrMaxConsecutive, checkRuns(p, "aaabcd"))
	assert.Equal(t, ErrMaxClassRepeat, checkRuns(p, "aXbYcdeF"))
	assert.Equal(t, ErrMaxSequence, checkRuns(p, "a89:b"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "strasse", fold("STRASSE"))
	assert.Equal(t, fold("Straße"), fold("STRASSE"))
	assert.Equal(t, "cba", reverseRunes("abc"))
	assert.Equal(t, "éa", reverseRunes("aé"))
}
