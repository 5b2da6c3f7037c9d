package pwq_err

import (
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
	}{
		{name: "simple_error", err: errors.New("validation failed")},
		{name: "nil_error", err: nil},
		{name: "complex_error", err: errors.New("field 'minlen' must be an integer")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapValidationError(tt.err)

			if tt.err == nil {
				if wrapped != nil {
					t.Error("WrapValidationError(nil) should return nil")
				}
				return
			}
			if !errors.Is(wrapped, tt.err) {
				t.Error("wrapped error should preserve the original error")
			}
			hints := cerr.GetAllHints(wrapped)
			if len(hints) == 0 || hints[0] != "run 'pwquality settings' to see option names and current values" {
				t.Errorf("unexpected hints: %v", hints)
			}
		})
	}
}

func TestWrapConfigError(t *testing.T) {
	t.Parallel()
	if WrapConfigError(nil, "/etc/security/pwquality.conf") != nil {
		t.Fatal("WrapConfigError(nil) should return nil")
	}
	base := errors.New("unknown key")
	wrapped := WrapConfigError(base, "/etc/security/pwquality.conf")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should preserve the original error")
	}
	hints := cerr.GetAllHints(wrapped)
	if len(hints) != 1 || hints[0] != "check the configuration in /etc/security/pwquality.conf" {
		t.Errorf("unexpected hints: %v", hints)
	}
}

func TestHints(t *testing.T) {
	assert.Nil(t, Hints(nil))
	err := ClassifyPolicyError(WrapConfigError(pwquality.ErrConfigOpen, "/tmp/x.conf"), "load")
	assert.Contains(t, Hints(err), "check the configuration in /tmp/x.conf")
}
