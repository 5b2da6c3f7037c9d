// pkg/pwquality/reason.go

package pwquality

import (
	"fmt"

	cerr "github.com/cockroachdb/errors"
)

// Reason is a negative result code. Every rejection and every failure of
// the engine maps to exactly one Reason, and the numeric values are stable.
type Reason int

const (
	ErrFatalFailure     Reason = -1
	ErrInteger          Reason = -2
	ErrConfigOpen       Reason = -3
	ErrConfigMalformed  Reason = -4
	ErrUnknownSetting   Reason = -5
	ErrNonIntSetting    Reason = -6
	ErrNonStrSetting    Reason = -7
	ErrMemAlloc         Reason = -8
	ErrTooSimilar       Reason = -9
	ErrMinDigits        Reason = -10
	ErrMinUppers        Reason = -11
	ErrMinLowers        Reason = -12
	ErrMinOthers        Reason = -13
	ErrMinLength        Reason = -14
	ErrPalindrome       Reason = -15
	ErrCaseChangesOnly  Reason = -16
	ErrRotated          Reason = -17
	ErrMinClasses       Reason = -18
	ErrMaxConsecutive   Reason = -19
	ErrEmptyPassword    Reason = -20
	ErrSamePassword     Reason = -21
	ErrCracklibCheck    Reason = -22
	ErrRng              Reason = -23
	ErrGenerationFailed Reason = -24
	ErrUserCheck        Reason = -25
	ErrGecosCheck       Reason = -26
	ErrMaxClassRepeat   Reason = -27
	ErrBadWords         Reason = -28
	ErrMaxSequence      Reason = -29
)

type reasonInfo struct {
	name    string
	message string
}

var reasons = map[Reason]reasonInfo{
	ErrFatalFailure:     {"FatalFailure", "fatal failure"},
	ErrInteger:          {"Integer", "setting is not a valid integer"},
	ErrConfigOpen:       {"ConfigOpen", "cannot open configuration file"},
	ErrConfigMalformed:  {"ConfigMalformed", "configuration file is malformed"},
	ErrUnknownSetting:   {"UnknownSetting", "unknown setting"},
	ErrNonIntSetting:    {"NonIntSetting", "setting is not an integer setting"},
	ErrNonStrSetting:    {"NonStrSetting", "setting is not a string setting"},
	ErrMemAlloc:         {"MemAlloc", "memory allocation error"},
	ErrTooSimilar:       {"TooSimilar", "the password is too similar to the old one"},
	ErrMinDigits:        {"MinDigits", "the password contains too few digits"},
	ErrMinUppers:        {"MinUppers", "the password contains too few uppercase letters"},
	ErrMinLowers:        {"MinLowers", "the password contains too few lowercase letters"},
	ErrMinOthers:        {"MinOthers", "the password contains too few non-alphanumeric characters"},
	ErrMinLength:        {"MinLength", "the password is too short"},
	ErrPalindrome:       {"Palindrome", "the password is the old one reversed"},
	ErrCaseChangesOnly:  {"CaseChangesOnly", "the password differs from the old one only by case"},
	ErrRotated:          {"Rotated", "the password is a rotation of the old one"},
	ErrMinClasses:       {"MinClasses", "the password contains too few character classes"},
	ErrMaxConsecutive:   {"MaxConsecutive", "the password contains too many same characters consecutively"},
	ErrEmptyPassword:    {"EmptyPassword", "no password supplied"},
	ErrSamePassword:     {"SamePassword", "the password is the same as the old one"},
	ErrCracklibCheck:    {"CracklibCheck", "the password fails the dictionary check"},
	ErrRng:              {"Rng", "cannot obtain random numbers"},
	ErrGenerationFailed: {"GenerationFailed", "password generation failed"},
	ErrUserCheck:        {"UserCheck", "the password contains the user name in some form"},
	ErrGecosCheck:       {"GecosCheck", "the password contains words from the real name of the user in some form"},
	ErrMaxClassRepeat:   {"MaxClassRepeat", "the password contains too many same characters of the same class consecutively"},
	ErrBadWords:         {"BadWords", "the password contains forbidden words in some form"},
	ErrMaxSequence:      {"MaxSequence", "the password contains too long of a monotonic character sequence"},
}

// FromCode converts a numeric result code back into a Reason. Codes outside
// the known taxonomy are preserved and report themselves as unknown.
func FromCode(code int) Reason {
	return Reason(code)
}

// Code returns the numeric value of r.
func (r Reason) Code() int {
	return int(r)
}

// Known reports whether r belongs to the documented taxonomy.
func (r Reason) Known() bool {
	_, ok := reasons[r]
	return ok
}

// String returns the symbolic name, e.g. "MinLength" or "UnknownError(-99)".
func (r Reason) String() string {
	if info, ok := reasons[r]; ok {
		return info.name
	}
	return fmt.Sprintf("UnknownError(%d)", int(r))
}

// Error implements error so a Reason can be used as a sentinel with errors.Is.
func (r Reason) Error() string {
	if info, ok := reasons[r]; ok {
		return info.message
	}
	return fmt.Sprintf("unknown error (code %d)", int(r))
}

// AllReasons returns the documented reasons ordered by code, -1 first.
func AllReasons() []Reason {
	out := make([]Reason, 0, len(reasons))
	for code := -1; code >= int(ErrMaxSequence); code-- {
		out = append(out, Reason(code))
	}
	return out
}

// PolicyError is returned when a check or a generation does not succeed.
// Enforcing records whether the settings asked for rejections to be fatal.
type PolicyError struct {
	Reason    Reason
	Enforcing bool
	Cause     error
}

func (e *PolicyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Reason.Error(), e.Cause)
	}
	return e.Reason.Error()
}

// Unwrap exposes the backend error, if any.
func (e *PolicyError) Unwrap() error {
	return e.Cause
}

// Is matches a PolicyError against a Reason sentinel.
func (e *PolicyError) Is(target error) bool {
	r, ok := target.(Reason)
	return ok && r == e.Reason
}

// Fatal reports whether the caller should treat the error as a hard failure.
// Password rejections are advisory when enforcing is off; engine failures
// (backend, rng, generation, settings misuse) are always fatal.
func (e *PolicyError) Fatal() bool {
	if e.Enforcing {
		return true
	}
	return !e.Reason.isRejection()
}

func (r Reason) isRejection() bool {
	switch r {
	case ErrTooSimilar, ErrMinDigits, ErrMinUppers, ErrMinLowers, ErrMinOthers,
		ErrMinLength, ErrPalindrome, ErrCaseChangesOnly, ErrRotated, ErrMinClasses,
		ErrMaxConsecutive, ErrEmptyPassword, ErrSamePassword, ErrCracklibCheck,
		ErrUserCheck, ErrGecosCheck, ErrMaxClassRepeat, ErrBadWords, ErrMaxSequence:
		return true
	}
	return false
}

// ReasonOf extracts the Reason carried by err. It returns 0 for nil and
// ErrFatalFailure for errors that do not carry a Reason.
func ReasonOf(err error) Reason {
	if err == nil {
		return 0
	}
	var pe *PolicyError
	if cerr.As(err, &pe) {
		return pe.Reason
	}
	var r Reason
	if cerr.As(err, &r) {
		return r
	}
	return ErrFatalFailure
}

// IsFatal reports whether err must stop the caller. Advisory rejections
// produced with enforcing disabled are not fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var pe *PolicyError
	if cerr.As(err, &pe) {
		return pe.Fatal()
	}
	return true
}
