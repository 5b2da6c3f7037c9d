// pkg/dictionary/backend.go

// Package dictionary provides the word-list backends behind the
// dictionary check: an embedded default list, plain word-list files and a
// redis set.
package dictionary

import (
	"context"
	"strings"
	"unicode"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Backend answers whether a password is, or is based on, a dictionary word.
type Backend interface {
	Contains(ctx context.Context, password string) (bool, error)
}

// Closer is implemented by backends holding external resources.
type Closer interface {
	Close() error
}

// Open resolves a dictionary path to a backend. An empty path selects the
// embedded default list, redis:// and rediss:// URLs select a redis set,
// anything else is read as a word-list file.
func Open(path string, log *zap.Logger) (Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch {
	case path == "":
		return Default(), nil
	case strings.HasPrefix(path, "redis://"), strings.HasPrefix(path, "rediss://"):
		b, err := NewRedis(path, log)
		if err != nil {
			return nil, cerr.Wrap(err, "open redis dictionary")
		}
		return b, nil
	default:
		wl, err := LoadFile(path)
		if err != nil {
			return nil, cerr.WithHint(cerr.Wrapf(err, "open dictionary %s", path),
				"set dictpath to a readable word list, one word per line")
		}
		log.Debug("Dictionary loaded", zap.String("path", path), zap.Int("words", wl.Len()))
		return wl, nil
	}
}

// Candidates returns the lookup keys derived from a password: the
// lowercased password and, when it differs and keeps at least four
// characters, the password stripped of leading and trailing digits and
// punctuation ("Password123!" -> "password").
func Candidates(password string) []string {
	lower := strings.ToLower(password)
	out := []string{lower}
	stripped := strings.TrimFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if stripped != lower && len([]rune(stripped)) >= 4 {
		out = append(out, stripped)
	}
	return out
}
