// cmd/check/check.go

package check

import (
	"fmt"
	"io"
	"os"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/config_loader"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_io"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CheckCmd scores one password, or every line of stdin with --batch.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a password against the quality policy",
	Long: `Reads a password (prompting without echo on a terminal, otherwise one line
from stdin) and prints its score, or the reason it was rejected.

Exit status is 0 when the password is accepted or enforcing is off, 2 when
it is rejected, and 1 when a backend such as the dictionary fails.

With --old-stdin the old password is read first. With --batch every stdin
line is checked; --watch then reloads the configuration while reading.`,
	Args: cobra.NoArgs,
	RunE: cli.Wrap(runCheck),
}

func init() {
	cli.AddStringFlag(CheckCmd, "user", "u", "", "user name to check against", false)
	cli.AddStringSliceFlag(CheckCmd, "gecos", "", nil, "GECOS text to check against instead of the user's entry (repeatable)")
	cli.AddBoolFlag(CheckCmd, "old-stdin", "", false, "read the old password before the new one")
	cli.AddBoolFlag(CheckCmd, "batch", "", false, "check every line of stdin")
	cli.AddBoolFlag(CheckCmd, "watch", "", false, "with --batch, reload the configuration when it changes")
}

func runCheck(rc *pwq_io.RuntimeContext, cmd *cobra.Command, _ []string) error {
	log := otelzap.Ctx(rc.Ctx)

	v, err := cli.NewViper(cmd)
	if err != nil {
		return err
	}
	src := cli.SourceFromFlags(cmd, v)
	s, err := cli.LoadSettings(rc, src)
	if err != nil {
		return err
	}
	checker := cli.NewChecker(rc, s)

	gecos, _ := cmd.Flags().GetStringArray("gecos")
	base := pwquality.Request{Username: v.GetString("user"), Gecos: gecos}
	rc.Span.SetAttributes(attribute.Bool("user_given", base.Username != ""))

	in := cmd.InOrStdin()

	if v.GetBool("batch") {
		if v.GetBool("watch") {
			if err := watch(rc, src, s); err != nil {
				return pwq_err.ClassifyPolicyError(err, "watch configuration")
			}
		}
		return checkBatch(rc, checker, base, in)
	}

	secrets := pwq_io.NewSecretReader(in, cmd.ErrOrStderr())
	if v.GetBool("old-stdin") {
		old, err := secrets.Read(rc, "Old password: ")
		if err != nil {
			return readError(err, "read old password")
		}
		base.OldPassword = old
	}
	pw, err := secrets.Read(rc, "Password: ")
	if err != nil {
		return readError(err, "read password")
	}
	base.Password = pw

	log.Debug("Checking password", zap.String("user", base.Username), zap.Bool("old_given", base.OldPassword != ""))
	res, checkErr := checker.Check(rc.Ctx, base)
	if line := resultLine(res, checkErr); line != "" {
		logger.Terminalf(rc.Log, "%s", line)
	}
	return pwq_err.ClassifyPolicyError(checkErr, "check password")
}

func readError(err error, op string) error {
	if cerr.Is(err, pwq_io.ErrNoInput) {
		return pwq_err.NewUserCancelledError(op)
	}
	return pwq_err.NewFilesystemError(op, err)
}

// checkBatch checks each line separately. Lines are never echoed; results
// are numbered instead.
func checkBatch(rc *pwq_io.RuntimeContext, c *pwquality.Checker, base pwquality.Request, in io.Reader) error {
	log := otelzap.Ctx(rc.Ctx)
	var n, rejected, enforced int
	err := pwq_io.ReadLines(in, func(line string) error {
		if err := rc.Ctx.Err(); err != nil {
			return err
		}
		n++
		req := base
		req.Password = line
		res, checkErr := c.Check(rc.Ctx, req)
		if pwquality.ReasonOf(checkErr) == pwquality.ErrFatalFailure {
			return checkErr
		}
		logger.Terminalf(rc.Log, "%d: %s", n, resultLine(res, checkErr))
		if checkErr != nil {
			rejected++
			if res.Enforcing {
				enforced++
			}
		}
		return nil
	})
	log.Info("Batch check finished", zap.Int("checked", n), zap.Int("rejected", rejected))
	if err != nil {
		return pwq_err.ClassifyPolicyError(err, "check passwords")
	}
	if enforced > 0 {
		return pwq_err.NewPolicyError(fmt.Sprintf("%d of %d passwords rejected", enforced, n), nil)
	}
	return nil
}

// resultLine renders a check outcome. Backend failures render empty; they
// are reported with the command error.
func resultLine(res pwquality.Result, err error) string {
	switch {
	case res.Reason == pwquality.ErrFatalFailure:
		return ""
	case err == nil:
		return fmt.Sprintf("score: %d", res.Score)
	case pwquality.IsFatal(err):
		return fmt.Sprintf("rejected: %s", res.Reason)
	default:
		return fmt.Sprintf("warning: %s", res.Reason)
	}
}

// watch reloads the configuration into s while a batch runs and puts the
// --set overrides back on top after every reload.
func watch(rc *pwq_io.RuntimeContext, src cli.PolicySource, s *pwquality.Settings) error {
	log := otelzap.Ctx(rc.Ctx)
	return config_loader.Watch(rc.Ctx, src.Path, s, func(err error) {
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "configuration reload failed:", err)
			return
		}
		if err := src.Apply(s); err != nil {
			log.Warn("Reapplying overrides failed", zap.Error(err))
		}
	})
}
