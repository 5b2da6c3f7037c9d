/* cmd/root.go */

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/CodeMonkeyCybersecurity/pwquality/cmd/check"
	"github.com/CodeMonkeyCybersecurity/pwquality/cmd/dictionary"
	"github.com/CodeMonkeyCybersecurity/pwquality/cmd/generate"
	"github.com/CodeMonkeyCybersecurity/pwquality/cmd/settings"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the base command for pwquality.
var RootCmd = &cobra.Command{
	Use:   "pwquality",
	Short: "Check and generate passwords against a quality policy",
	Long: `pwquality checks candidate passwords against a configurable quality policy
(length credits, character classes, repetition, similarity to the old password,
user names and dictionary words) and generates random passwords that pass it.

Settings are read from /etc/security/pwquality.conf and its .d directory,
or from --config, and can be overridden with --set name=value.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: cli.Wrap(func(rc *pwq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}),
}

// HelpCmd wraps help so that it can be invoked like a normal command.
var HelpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Help about any command",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RootCmd.Help()
		}
		c, _, err := RootCmd.Find(args)
		if err != nil || c == nil {
			return fmt.Errorf("command not found: %s", strings.Join(args, " "))
		}
		return c.Help()
	},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.String(cli.FlagConfig, "", "configuration file (default /etc/security/pwquality.conf)")
	pf.StringArray(cli.FlagSet, nil, "override a setting, as name=value (repeatable)")
	pf.String(cli.FlagLogLevel, "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.SetHelpCommand(HelpCmd)
	for _, sub := range []*cobra.Command{
		check.CheckCmd,
		dictionary.DictionaryCmd,
		generate.GenerateCmd,
		settings.SettingsCmd,
	} {
		if !hasCommand(RootCmd, sub) {
			RootCmd.AddCommand(sub)
		}
	}
}

func hasCommand(parent, c *cobra.Command) bool {
	for _, existing := range parent.Commands() {
		if existing == c {
			return true
		}
	}
	return false
}

// Execute runs the root command and returns the exit status its error
// maps to. Advisory rejections exit 0.
func Execute() int {
	RegisterCommands()

	err := RootCmd.Execute()
	code := pwq_err.GetExitCode(err)
	switch {
	case err == nil:
	case pwq_err.IsExpectedUserError(err):
		logger.L().Debug("Completed with advisory result", zap.Error(err))
	default:
		logger.L().Debug("Command failed", zap.Error(err), zap.Int("exit_code", code))
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range pwq_err.Hints(err) {
			fmt.Fprintln(os.Stderr, "  hint:", hint)
		}
	}
	logger.Sync()
	return code
}
