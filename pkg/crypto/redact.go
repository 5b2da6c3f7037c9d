// pkg/crypto/redact.go

package crypto

import "strings"

// Redact masks a secret for logging. The mask has a fixed width so the
// length of the secret is not disclosed.
func Redact(s string) string {
	if s == "" {
		return "(empty)"
	}
	return strings.Repeat("*", 8)
}
