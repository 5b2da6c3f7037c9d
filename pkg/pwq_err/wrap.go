// pkg/pwq_err/wrap.go

package pwq_err

import (
	cerr "github.com/cockroachdb/errors"
)

// WrapValidationError marks err as a bad option value supplied by the user.
func WrapValidationError(err error) error {
	return cerr.WithHint(cerr.WithStack(err), "run 'pwquality settings' to see option names and current values")
}

func WrapConfigError(err error, path string) error {
	return cerr.WithHintf(cerr.WithStack(err), "check the configuration in %s", path)
}

// Hints returns the user-facing hints attached anywhere in err's chain.
func Hints(err error) []string {
	if err == nil {
		return nil
	}
	return cerr.GetAllHints(err)
}
