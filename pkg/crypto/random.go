/* pkg/crypto/random.go */

package crypto

import (
	"crypto/rand"
	"io"
	"math/big"
)

// Reader is the default source of randomness.
var Reader io.Reader = rand.Reader

// RandomIndex returns a uniform integer in [0, n) drawn from r.
func RandomIndex(r io.Reader, n int) (int, error) {
	if r == nil {
		r = Reader
	}
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// RandomChar picks one byte of charset uniformly.
func RandomChar(r io.Reader, charset string) (byte, error) {
	i, err := RandomIndex(r, len(charset))
	if err != nil {
		return 0, err
	}
	return charset[i], nil
}

// Shuffle permutes b in place (Fisher-Yates).
func Shuffle(r io.Reader, b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := RandomIndex(r, i+1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}
