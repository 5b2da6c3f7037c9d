// pkg/pwq_err/classification.go
//
// Error classification with exit codes for the pwquality command.

package pwq_err

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	cerr "github.com/cockroachdb/errors"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - bad flags, settings or configuration (exit 2)
	CategoryValidation
	// CategoryPolicy - password rejected while enforcing (exit 2)
	CategoryPolicy
	// CategoryUser - user cancelled/interrupted (exit 130)
	CategoryUser
	// CategoryInternal - bugs in pwquality itself (exit 3)
	CategoryInternal
	// CategoryDependency - dictionary backend or randomness unavailable (exit 1)
	CategoryDependency
)

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}
	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}
	return sb.String()
}

// Unwrap returns the underlying error
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryUser:
		return 130 // Standard for SIGINT (Ctrl-C)
	case CategoryValidation, CategoryPolicy:
		return 2
	case CategoryInternal:
		return 3
	default:
		return 1
	}
}

// UserError marks an expected outcome that should be reported but must
// not fail the program, such as an advisory rejection.
type UserError struct {
	cause error
}

func (e *UserError) Error() string { return e.cause.Error() }
func (e *UserError) Unwrap() error { return e.cause }

// NewExpectedError wraps err as an expected user error.
func NewExpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsExpectedUserError reports whether err is an expected user error.
func IsExpectedUserError(err error) bool {
	var ue *UserError
	return cerr.As(err, &ue)
}

// GetExitCode extracts exit code from any error
// Returns 0 for nil, appropriate code for classified errors, 1 for others
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}
	var classified *ClassifiedError
	if cerr.As(err, &classified) {
		return classified.ExitCode()
	}
	if IsExpectedUserError(err) {
		return 0
	}
	return 1
}

// NewValidationError creates an error for input validation failures
func NewValidationError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Remediation: remediation,
	}
}

// NewPolicyError creates an error for an enforced password rejection
func NewPolicyError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryPolicy,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewDependencyError creates an error for an unavailable backend
func NewDependencyError(dependency, operation string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryDependency,
		Message:     fmt.Sprintf("%s is required for %s but is unavailable", dependency, operation),
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewFilesystemError creates an error for filesystem issues
func NewFilesystemError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategorySystem,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInternalError creates an error for pwquality bugs
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in pwquality",
			"Include this error message and steps to reproduce when reporting it",
		},
	}
}

// NewUserCancelledError creates an error for user-initiated cancellation
func NewUserCancelledError(operation string) error {
	return &ClassifiedError{
		Category:    CategoryUser,
		Message:     fmt.Sprintf("Operation cancelled by user: %s", operation),
		Remediation: []string{"Run the command again to retry"},
	}
}

var remediations = map[pwquality.Reason]string{
	pwquality.ErrTooSimilar:      "Change more characters relative to the old password",
	pwquality.ErrMinDigits:       "Add more digits",
	pwquality.ErrMinUppers:       "Add more uppercase letters",
	pwquality.ErrMinLowers:       "Add more lowercase letters",
	pwquality.ErrMinOthers:       "Add more symbols",
	pwquality.ErrMinLength:       "Use a longer password",
	pwquality.ErrPalindrome:      "Do not reuse the old password backwards",
	pwquality.ErrCaseChangesOnly: "Change more than the letter case of the old password",
	pwquality.ErrRotated:         "Do not rotate the old password",
	pwquality.ErrMinClasses:      "Mix digits, uppercase, lowercase and symbols",
	pwquality.ErrMaxConsecutive:  "Avoid repeating the same character",
	pwquality.ErrEmptyPassword:   "Enter a password",
	pwquality.ErrSamePassword:    "Choose a password different from the old one",
	pwquality.ErrCracklibCheck:   "Avoid dictionary words and common passwords",
	pwquality.ErrUserCheck:       "Do not include the user name",
	pwquality.ErrGecosCheck:      "Do not include your real name",
	pwquality.ErrMaxClassRepeat:  "Break up long runs of one kind of character",
	pwquality.ErrBadWords:        "Do not include forbidden words",
	pwquality.ErrMaxSequence:     "Avoid sequences such as 1234 or abcd",
}

// ClassifyPolicyError maps a pwquality error to an exit-code bearing error.
// Rejections are CategoryPolicy when enforcing and expected user errors
// otherwise; configuration and settings misuse are validation errors;
// everything else means a backend could not serve the request.
func ClassifyPolicyError(err error, operation string) error {
	if err == nil {
		return nil
	}
	var classified *ClassifiedError
	if cerr.As(err, &classified) {
		return err
	}

	reason := pwquality.ReasonOf(err)
	switch reason {
	case pwquality.ErrConfigOpen, pwquality.ErrConfigMalformed, pwquality.ErrInteger,
		pwquality.ErrUnknownSetting, pwquality.ErrNonIntSetting, pwquality.ErrNonStrSetting:
		return &ClassifiedError{
			Category:    CategoryValidation,
			Message:     fmt.Sprintf("%s: invalid configuration", operation),
			Cause:       err,
			Remediation: []string{"Check the configuration file and --set options", "Run 'pwquality settings' to see the effective values"},
		}
	case pwquality.ErrRng:
		return NewDependencyError("a random number source", operation, err)
	case pwquality.ErrGenerationFailed:
		return &ClassifiedError{
			Category:    CategoryValidation,
			Message:     fmt.Sprintf("%s: no password satisfies the current settings", operation),
			Cause:       err,
			Remediation: []string{"Relax min_classes or the negative credits"},
		}
	case pwquality.ErrFatalFailure:
		return NewDependencyError("the dictionary backend", operation, err,
			"Check that dictpath names a readable word list or a reachable redis server")
	}

	if !pwquality.IsFatal(err) {
		return NewExpectedError(err)
	}
	var hints []string
	if hint, ok := remediations[reason]; ok {
		hints = append(hints, hint)
	}
	return NewPolicyError(fmt.Sprintf("%s: password rejected (%s)", operation, reason), err, hints...)
}
