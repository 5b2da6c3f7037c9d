// pkg/pwquality/wordcheck.go

package pwquality

import (
	"os/user"
	"strings"
	"unicode"
	"unicode/utf8"

	cerr "github.com/cockroachdb/errors"
)

// minWordLen is the length a GECOS or bad word must exceed to be checked.
const minWordLen = 3

// GecosLookup returns the GECOS words of a user. Implementations return an
// empty slice, not an error, for users they do not know.
type GecosLookup interface {
	Gecos(username string) ([]string, error)
}

// GecosFunc adapts a function to GecosLookup.
type GecosFunc func(username string) ([]string, error)

func (f GecosFunc) Gecos(username string) ([]string, error) { return f(username) }

// SystemGecos reads the real-name field of the local account database.
type SystemGecos struct{}

func (SystemGecos) Gecos(username string) ([]string, error) {
	u, err := user.Lookup(username)
	if err != nil {
		var unknown user.UnknownUserError
		if cerr.As(err, &unknown) {
			return nil, nil
		}
		return nil, err
	}
	return SplitGecos(u.Name), nil
}

// SplitGecos splits a GECOS field on whitespace and the comma separators
// used between its subfields.
func SplitGecos(field string) []string {
	return strings.FieldsFunc(field, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// containsWord reports whether the folded password contains word, or word
// reversed. Words of minWordLen runes or fewer are ignored.
func containsWord(foldedPassword, word string) bool {
	if utf8.RuneCountInString(word) <= minWordLen {
		return false
	}
	w := fold(word)
	return strings.Contains(foldedPassword, w) || strings.Contains(foldedPassword, reverseRunes(w))
}

func containsAnyWord(foldedPassword string, words []string) bool {
	for _, w := range words {
		if containsWord(foldedPassword, w) {
			return true
		}
	}
	return false
}

// containsUser matches the user name, forwards or reversed, with no length
// threshold.
func containsUser(foldedPassword, username string) bool {
	u := fold(username)
	if u == "" {
		return false
	}
	return strings.Contains(foldedPassword, u) || strings.Contains(foldedPassword, reverseRunes(u))
}
