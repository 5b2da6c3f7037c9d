// pkg/pwquality/generator.go

package pwquality

import (
	"context"
	"math"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/crypto"
	"go.uber.org/zap"
)

// Entropy bounds applied by Generate.
const (
	MinEntropyBits = 56
	MaxEntropyBits = 256
)

// maxGenerateAttempts bounds how many candidates Generate tries.
const maxGenerateAttempts = 10

// Generator alphabet. Symbols are limited to characters that are safe in
// shells and configuration files.
const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%&*?"
	alphabet    = lowerChars + upperChars + digitChars + symbolChars
)

var classChars = [NumClasses]string{
	ClassDigit: digitChars,
	ClassUpper: upperChars,
	ClassLower: lowerChars,
	ClassOther: symbolChars,
}

// classFillOrder is the order in which classes are added when min_classes
// asks for more classes than the credits require.
var classFillOrder = []Class{ClassLower, ClassUpper, ClassDigit, ClassOther}

// ClampEntropy limits bits to [MinEntropyBits, MaxEntropyBits].
func ClampEntropy(bits int) int {
	return min(max(bits, MinEntropyBits), MaxEntropyBits)
}

// EntropyLength is the number of alphabet characters needed to carry bits
// of entropy, after clamping.
func EntropyLength(bits int) int {
	perChar := math.Log2(float64(len(alphabet)))
	return int(math.Ceil(float64(ClampEntropy(bits)) / perChar))
}

// plan returns the per-class minimum counts and the length for a candidate.
func plan(p Policy, bits int) ([NumClasses]int, int) {
	var need [NumClasses]int
	classes := 0
	for c := Class(0); c < NumClasses; c++ {
		if cr := p.credit(c); cr < 0 {
			need[c] = -cr
			classes++
		}
	}
	for _, c := range classFillOrder {
		if classes >= p.MinClasses {
			break
		}
		if need[c] == 0 {
			need[c] = 1
			classes++
		}
	}
	total := 0
	for _, n := range need {
		total += n
	}
	length := max(EntropyLength(bits), p.MinLength, total)
	return need, length
}

// Generate returns a random password carrying at least bits of entropy
// that passes Check under the current settings.
func (c *Checker) Generate(ctx context.Context, bits int) (string, error) {
	p := c.settings.Snapshot()
	need, length := plan(p, bits)

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		candidate, err := c.candidate(need, length)
		if err != nil {
			return "", &PolicyError{Reason: ErrRng, Enforcing: p.Enforcing, Cause: err}
		}
		res, cause := c.evaluate(ctx, p, Request{Password: candidate})
		if res.Accepted() {
			c.log.Debug("Password generated",
				zap.Int("entropy_bits", ClampEntropy(bits)),
				zap.Int("length", length),
				zap.Int("attempt", attempt))
			return candidate, nil
		}
		if res.Reason == ErrFatalFailure {
			return "", &PolicyError{Reason: ErrFatalFailure, Enforcing: p.Enforcing, Cause: cause}
		}
		c.log.Debug("Generated candidate rejected",
			zap.Int("attempt", attempt),
			zap.Stringer("reason", res.Reason))
	}
	return "", &PolicyError{Reason: ErrGenerationFailed, Enforcing: p.Enforcing}
}

func (c *Checker) candidate(need [NumClasses]int, length int) (string, error) {
	buf := make([]byte, 0, length)
	for cls, n := range need {
		for i := 0; i < n; i++ {
			ch, err := crypto.RandomChar(c.random, classChars[cls])
			if err != nil {
				return "", err
			}
			buf = append(buf, ch)
		}
	}
	for len(buf) < length {
		ch, err := crypto.RandomChar(c.random, alphabet)
		if err != nil {
			return "", err
		}
		buf = append(buf, ch)
	}
	if err := crypto.Shuffle(c.random, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
