// pkg/cli/wrap.go

package cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunFunc is the body of a wrapped command.
type RunFunc func(rc *pwq_io.RuntimeContext, cmd *cobra.Command, args []string) error

// Wrap sets up logging, the runtime context, signal handling and panic
// recovery around fn. Errors that are not expected user errors get a
// stack attached.
func Wrap(fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.SetTerminalOutput(cmd.OutOrStdout())
		logger.InitializeWithFallback(flagValue(cmd, FlagLogLevel))
		done := logger.LogCommandLifecycle(cmd.CommandPath())
		defer done(&err)

		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}
		sig := NewSignalHandler(parent)
		defer sig.Stop()

		rc := pwq_io.NewContext(sig.Context(), cmd.Name())
		rc.Cleanup = sig.RegisterCleanup
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		rc.Log.Debug("Running command", zap.String("path", cmd.CommandPath()), zap.Int("args", len(args)))

		err = fn(rc, cmd, args)
		if err != nil && !pwq_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}

func flagValue(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}
