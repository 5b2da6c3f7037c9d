// pkg/pwq_io/secure_input.go

package pwq_io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"golang.org/x/term"
)

// MaxInputLength bounds one line of password input.
const MaxInputLength = 4096

// ErrNoInput is returned when the input ends before a line was read.
var ErrNoInput = cerr.New("no input received")

// SecretReader reads passwords one after another from the same input.
type SecretReader struct {
	in  io.Reader
	out io.Writer
	sc  *bufio.Scanner
}

// NewSecretReader prompts on out when in is a terminal.
func NewSecretReader(in io.Reader, out io.Writer) *SecretReader {
	return &SecretReader{in: in, out: out}
}

// ReadSecret reads a single password from in. See SecretReader.Read.
func ReadSecret(rc *RuntimeContext, in io.Reader, out io.Writer, prompt string) (string, error) {
	return NewSecretReader(in, out).Read(rc, prompt)
}

// Read reads one password. On a terminal it prompts and reads without
// echo; otherwise it reads the next line. The value is returned as typed,
// apart from the line terminator.
func (r *SecretReader) Read(rc *RuntimeContext, prompt string) (string, error) {
	logger := otelzap.Ctx(rc.Ctx)

	// ASSESS - terminal or pipe
	if f, ok := r.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logger.Debug("Reading password from terminal")
		_, _ = fmt.Fprint(r.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(r.out)
		if err != nil {
			return "", cerr.Wrap(err, "failed to read password")
		}
		return string(b), nil
	}

	// INTERVENE - read the next line
	logger.Debug("Reading password from stdin")
	if r.sc == nil {
		r.sc = newScanner(r.in)
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", cerr.Wrap(err, "failed to read input")
		}
		return "", ErrNoInput
	}
	return trimEOL(r.sc.Text()), nil
}

// ReadLines calls fn with every line of in until fn fails or in ends.
func ReadLines(in io.Reader, fn func(line string) error) error {
	sc := newScanner(in)
	for sc.Scan() {
		if err := fn(trimEOL(sc.Text())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return cerr.Wrap(err, "failed to read input")
	}
	return nil
}

func newScanner(in io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 256), MaxInputLength)
	return sc
}

func trimEOL(s string) string {
	return strings.TrimSuffix(s, "\r")
}
