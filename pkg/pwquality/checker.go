// pkg/pwquality/checker.go

package pwquality

import (
	"context"
	"io"
	"sync"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/crypto"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/dictionary"
	"go.uber.org/zap"
)

// Dictionary is the lookup service behind the dictionary check.
type Dictionary interface {
	Contains(ctx context.Context, password string) (bool, error)
}

// DictionaryOpener resolves the dictionary_path setting to a Dictionary.
// An empty path asks for the default backend.
type DictionaryOpener func(path string) (Dictionary, error)

// Request is one password to evaluate. Empty OldPassword and Username mean
// "not supplied". Gecos, when set, replaces the GECOS lookup for Username.
type Request struct {
	Password    string
	OldPassword string
	Username    string
	Gecos       []string
}

// Result is the outcome of a check. Reason is zero when the password was
// accepted; Score is only meaningful in that case.
type Result struct {
	Score     int
	Reason    Reason
	Enforcing bool
	Credits   CreditReport
}

// Accepted reports whether the password passed every check.
func (r Result) Accepted() bool {
	return r.Reason == 0
}

// Checker evaluates and generates passwords against a settings store.
// It is safe for concurrent use; each call works on a fresh snapshot of
// the settings.
type Checker struct {
	settings *Settings
	log      *zap.Logger
	gecos    GecosLookup
	opener   DictionaryOpener
	random   io.Reader

	mu    sync.Mutex
	dicts map[string]Dictionary
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for decision tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Checker) {
		if log != nil {
			c.log = log
		}
	}
}

// WithGecosLookup replaces the local account database lookup.
func WithGecosLookup(g GecosLookup) Option {
	return func(c *Checker) { c.gecos = g }
}

// WithDictionary uses d for every dictionary check, ignoring dictionary_path.
func WithDictionary(d Dictionary) Option {
	return func(c *Checker) {
		c.opener = func(string) (Dictionary, error) { return d, nil }
	}
}

// WithDictionaryOpener sets how dictionary_path values are opened.
func WithDictionaryOpener(open DictionaryOpener) Option {
	return func(c *Checker) { c.opener = open }
}

// WithRandom sets the random source used by Generate.
func WithRandom(r io.Reader) Option {
	return func(c *Checker) { c.random = r }
}

// New returns a Checker bound to settings. A nil store means defaults.
func New(settings *Settings, opts ...Option) *Checker {
	if settings == nil {
		settings = NewSettings()
	}
	c := &Checker{
		settings: settings,
		log:      zap.NewNop(),
		gecos:    SystemGecos{},
		random:   crypto.Reader,
		dicts:    make(map[string]Dictionary),
	}
	c.opener = func(path string) (Dictionary, error) {
		return dictionary.Open(path, c.log)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Settings returns the store the checker reads from.
func (c *Checker) Settings() *Settings {
	return c.settings
}

// Check evaluates req. On rejection it returns the Result together with a
// *PolicyError carrying the reason and the enforcing flag.
func (c *Checker) Check(ctx context.Context, req Request) (Result, error) {
	p := c.settings.Snapshot()
	res, cause := c.evaluate(ctx, p, req)
	if res.Accepted() {
		c.log.Debug("Password accepted",
			zap.String("password", crypto.Redact(req.Password)),
			zap.Int("score", res.Score))
		return res, nil
	}
	c.log.Debug("Password rejected",
		zap.String("password", crypto.Redact(req.Password)),
		zap.Stringer("reason", res.Reason),
		zap.Bool("enforcing", res.Enforcing),
		zap.Error(cause))
	return res, &PolicyError{Reason: res.Reason, Enforcing: res.Enforcing, Cause: cause}
}

// CheckPassword is the positional form of Check. It returns the score on
// acceptance.
func (c *Checker) CheckPassword(ctx context.Context, password, oldPassword, username string) (int, error) {
	res, err := c.Check(ctx, Request{Password: password, OldPassword: oldPassword, Username: username})
	return res.Score, err
}

// evaluate runs every check in order and stops at the first failure. The
// returned error is the backend cause of ErrFatalFailure, if any.
func (c *Checker) evaluate(ctx context.Context, p Policy, req Request) (Result, error) {
	res := Result{Enforcing: p.Enforcing}
	reject := func(r Reason) Result {
		res.Reason = r
		return res
	}

	pw, old := req.Password, req.OldPassword
	if pw == "" {
		return reject(ErrEmptyPassword), nil
	}
	if old != "" {
		if pw == old {
			return reject(ErrSamePassword), nil
		}
		if r := compareOld(pw, old); r != 0 {
			return reject(r), nil
		}
	}
	if r := checkRuns(p, pw); r != 0 {
		return reject(r), nil
	}

	res.Credits = Credits(p, pw)
	if r := checkCredits(p, res.Credits); r != 0 {
		return reject(r), nil
	}
	// Distance below min_diff, except for passwords at least twice the old
	// length (libpwquality's similar() rule).
	if old != "" && tooSimilar(p, pw, old) {
		return reject(ErrTooSimilar), nil
	}

	folded := fold(pw)
	if p.GecosCheck && containsAnyWord(folded, c.gecosWords(req)) {
		return reject(ErrGecosCheck), nil
	}
	if containsAnyWord(folded, p.BadWords) {
		return reject(ErrBadWords), nil
	}
	if p.UserCheck && req.Username != "" && containsUser(folded, req.Username) {
		return reject(ErrUserCheck), nil
	}
	if p.DictCheck {
		found, err := c.lookup(ctx, p.DictPath, pw)
		if err != nil {
			return reject(ErrFatalFailure), err
		}
		if found {
			return reject(ErrCracklibCheck), nil
		}
	}

	res.Score = Score(res.Credits)
	return res, nil
}

func (c *Checker) gecosWords(req Request) []string {
	if len(req.Gecos) > 0 {
		var words []string
		for _, g := range req.Gecos {
			words = append(words, SplitGecos(g)...)
		}
		return words
	}
	if req.Username == "" || c.gecos == nil {
		return nil
	}
	words, err := c.gecos.Gecos(req.Username)
	if err != nil {
		c.log.Warn("GECOS lookup failed", zap.String("user", req.Username), zap.Error(err))
		return nil
	}
	return words
}

func (c *Checker) lookup(ctx context.Context, path, password string) (bool, error) {
	d, err := c.dictionary(path)
	if err != nil {
		return false, err
	}
	return d.Contains(ctx, password)
}

// dictionary opens path once and caches the backend; failed opens are
// retried on the next call.
func (c *Checker) dictionary(path string) (Dictionary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.dicts[path]; ok {
		return d, nil
	}
	d, err := c.opener(path)
	if err != nil {
		return nil, err
	}
	c.dicts[path] = d
	return d, nil
}

// Close releases dictionary backends that hold external resources.
func (c *Checker) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var first error
	for path, d := range c.dicts {
		if cl, ok := d.(dictionary.Closer); ok {
			if err := cl.Close(); err != nil && first == nil {
				first = err
			}
		}
		delete(c.dicts, path)
	}
	return first
}
