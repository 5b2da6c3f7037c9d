package pwquality

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestClampEntropy(t *testing.T) {
	assert.Equal(t, MinEntropyBits, ClampEntropy(0))
	assert.Equal(t, MinEntropyBits, ClampEntropy(-10))
	assert.Equal(t, 128, ClampEntropy(128))
	assert.Equal(t, MaxEntropyBits, ClampEntropy(10000))
}

func TestEntropyLength(t *testing.T) {
	// log2(70) is a little over 6.12 bits per character.
	assert.Equal(t, 10, EntropyLength(56))
	assert.Equal(t, 21, EntropyLength(128))
	assert.Equal(t, 42, EntropyLength(256))
	assert.Equal(t, EntropyLength(256), EntropyLength(4096))
}

func TestPlan(t *testing.T) {
	s := NewSettings()
	s.SetDigitCredit(-3)
	s.SetMinClasses(3)
	need, length := plan(s.Snapshot(), 56)
	assert.Equal(t, [NumClasses]int{3, 1, 1, 0}, need)
	assert.Equal(t, 10, length)

	s = NewSettings()
	s.SetMinLength(32)
	_, length = plan(s.Snapshot(), 56)
	assert.Equal(t, 32, length)

	s = NewSettings()
	s.SetOtherCredit(-20)
	_, length = plan(s.Snapshot(), 56)
	assert.Equal(t, 20, length)
}

func TestGeneratePassesCheck(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Settings)
		bits  int
	}{
		{name: "defaults", bits: 0},
		{name: "long", bits: 256},
		{
			name: "strict",
			setup: func(s *Settings) {
				s.SetMinLength(16)
				s.SetMinClasses(4)
				s.SetDigitCredit(-2)
				s.SetOtherCredit(-2)
				s.SetMaxRepeat(3)
			},
			bits: 80,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings()
			if tt.setup != nil {
				tt.setup(s)
			}
			c := New(s,
				WithLogger(zaptest.NewLogger(t)),
				WithDictionary(dictionary.NewWordList("password")))

			for i := 0; i < 20; i++ {
				pw, err := c.Generate(context.Background(), tt.bits)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, utf8.RuneCountInString(pw), EntropyLength(tt.bits))
				assert.GreaterOrEqual(t, len(pw), s.MinLength())
				assert.GreaterOrEqual(t, CountClasses(pw).Present(), s.MinClasses())

				_, err = c.Check(context.Background(), Request{Password: pw})
				assert.NoError(t, err, pw)
			}
		})
	}
}

func TestGenerateHonoursNegativeCredits(t *testing.T) {
	s := NewSettings()
	s.SetDigitCredit(-4)
	s.SetUpperCredit(-2)
	c := New(s, WithDictionary(dictionary.NewWordList()))

	pw, err := c.Generate(context.Background(), 64)
	require.NoError(t, err)
	counts := CountClasses(pw)
	assert.GreaterOrEqual(t, counts[ClassDigit], 4)
	assert.GreaterOrEqual(t, counts[ClassUpper], 2)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy pool empty") }

func TestGenerateRngFailure(t *testing.T) {
	c := New(NewSettings(), WithRandom(failingReader{}), WithDictionary(dictionary.NewWordList()))
	_, err := c.Generate(context.Background(), 64)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRng)
	assert.True(t, IsFatal(err))
}

func TestGenerateImpossiblePolicy(t *testing.T) {
	s := NewSettings()
	s.SetMinClasses(5)
	s.SetEnforcing(false)
	c := New(s, WithDictionary(dictionary.NewWordList()))

	_, err := c.Generate(context.Background(), 64)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.True(t, IsFatal(err))
}

func TestGenerateDictionaryFailure(t *testing.T) {
	backendErr := errors.New("no backend")
	c := New(NewSettings(), WithDictionaryOpener(func(string) (Dictionary, error) {
		return nil, backendErr
	}))
	_, err := c.Generate(context.Background(), 64)
	assert.ErrorIs(t, err, ErrFatalFailure)
	assert.ErrorIs(t, err, backendErr)
}
