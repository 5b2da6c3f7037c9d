// cmd/settings/settings.go

package settings

import (
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/config_loader"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_io"
	"github.com/spf13/cobra"
)

// SettingsCmd prints the effective settings in pwquality.conf syntax.
var SettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective settings",
	Long: `Prints every setting after the configuration file, its drop-ins and any
--set overrides have been applied. The output is valid pwquality.conf.`,
	Args: cobra.NoArgs,
	RunE: cli.Wrap(func(rc *pwq_io.RuntimeContext, cmd *cobra.Command, _ []string) error {
		v, err := cli.NewViper(cmd)
		if err != nil {
			return err
		}
		s, err := cli.LoadSettings(rc, cli.SourceFromFlags(cmd, v))
		if err != nil {
			return err
		}
		if err := config_loader.Write(cmd.OutOrStdout(), s); err != nil {
			return pwq_err.NewInternalError("write settings", err)
		}
		return nil
	}),
}
