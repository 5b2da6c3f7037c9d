package pwquality

import (
	"errors"
	"fmt"
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasonRoundTrip(t *testing.T) {
	all := AllReasons()
	require.Len(t, all, 29)

	seen := make(map[int]Reason)
	names := make(map[string]bool)
	for _, r := range all {
		code := r.Code()
		assert.Less(t, code, 0, "%s must have a negative code", r)
		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %d", code)
		seen[code] = r

		assert.Equal(t, r, FromCode(code))
		assert.True(t, r.Known())
		assert.NotContains(t, r.String(), "UnknownError")
		assert.False(t, names[r.String()], "duplicate name %s", r)
		names[r.String()] = true
	}
}

func TestReasonNames(t *testing.T) {
	assert.Equal(t, "FatalFailure", ErrFatalFailure.String())
	assert.Equal(t, "MinLength", ErrMinLength.String())
	assert.Equal(t, "MaxSequence", ErrMaxSequence.String())
	assert.Equal(t, -14, ErrMinLength.Code())
	assert.Equal(t, -22, ErrCracklibCheck.Code())
}

func TestUnknownReason(t *testing.T) {
	r := FromCode(-99)
	assert.False(t, r.Known())
	assert.Equal(t, "UnknownError(-99)", r.String())
	assert.Equal(t, -99, r.Code())
	assert.Contains(t, r.Error(), "-99")
}

func TestPolicyErrorMatching(t *testing.T) {
	err := &PolicyError{Reason: ErrMinLength, Enforcing: true}
	wrapped := fmt.Errorf("set password: %w", err)

	assert.ErrorIs(t, wrapped, ErrMinLength)
	assert.NotErrorIs(t, wrapped, ErrMinClasses)
	assert.True(t, cerr.Is(cerr.Wrap(err, "outer"), ErrMinLength))
	assert.Equal(t, ErrMinLength, ReasonOf(wrapped))

	var pe *PolicyError
	require.True(t, errors.As(wrapped, &pe))
	assert.True(t, pe.Enforcing)
}

func TestPolicyErrorCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PolicyError{Reason: ErrFatalFailure, Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrFatalFailure)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"enforced rejection", &PolicyError{Reason: ErrMinLength, Enforcing: true}, true},
		{"advisory rejection", &PolicyError{Reason: ErrMinLength, Enforcing: false}, false},
		{"advisory backend failure", &PolicyError{Reason: ErrFatalFailure, Enforcing: false}, true},
		{"advisory generation failure", &PolicyError{Reason: ErrGenerationFailed}, true},
		{"bare reason", ErrUnknownSetting, true},
		{"foreign error", errors.New("boom"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFatal(tt.err))
		})
	}
}

func TestReasonOf(t *testing.T) {
	assert.Equal(t, Reason(0), ReasonOf(nil))
	assert.Equal(t, ErrNonIntSetting, ReasonOf(ErrNonIntSetting))
	assert.Equal(t, ErrFatalFailure, ReasonOf(errors.New("other")))
}

func TestReasonOfThroughWrappers(t *testing.T) {
	pe := &PolicyError{Reason: ErrBadWords, Enforcing: true}
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"stack", cerr.WithStack(pe), ErrBadWords},
		{"hint", cerr.WithHint(cerr.Wrap(pe, "check"), "pick another"), ErrBadWords},
		{"fmt wrap", fmt.Errorf("outer: %w", pe), ErrBadWords},
		{"bare reason wrapped", cerr.Wrapf(ErrInteger, "option %q", "minlen"), ErrInteger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReasonOf(tt.err))
			assert.True(t, IsFatal(tt.err))
		})
	}
}
