// pkg/cli/cli.go
//
// Flag helpers and the Viper binding shared by every pwquality command.
// Flags, PWQ_* environment variables and defaults resolve through Viper
// once BindFlagsToViper has run.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variables read through Viper.
const EnvPrefix = "PWQ"

// AddStringFlag adds a string flag and optionally marks it required.
func AddStringFlag(cmd *cobra.Command, name, shorthand, def, help string, required bool) {
	cmd.Flags().StringP(name, shorthand, def, help)
	if required {
		if err := cmd.MarkFlagRequired(name); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to mark flag %s as required: %v\n", name, err)
		}
	}
}

// AddBoolFlag adds a boolean flag.
func AddBoolFlag(cmd *cobra.Command, name, shorthand string, def bool, help string) {
	cmd.Flags().BoolP(name, shorthand, def, help)
}

// AddIntFlag adds an int flag.
func AddIntFlag(cmd *cobra.Command, name, shorthand string, def int, help string) {
	cmd.Flags().IntP(name, shorthand, def, help)
}

// AddStringSliceFlag adds a repeatable string flag. Values are not split
// on commas, since option values such as badwords may contain them.
func AddStringSliceFlag(cmd *cobra.Command, name, shorthand string, def []string, help string) {
	cmd.Flags().StringArrayP(name, shorthand, def, help)
}

// BindFlagsToViper binds all flags on a command, persistent ones included,
// to a Viper instance.
func BindFlagsToViper(cmd *cobra.Command, v *viper.Viper) error {
	var result error
	bind := func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	return result
}

// SetViperEnvPrefix lets Viper read PREFIX_FLAG_NAME variables.
func SetViperEnvPrefix(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

// NewViper returns a Viper bound to cmd's flags and the PWQ_ environment.
func NewViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	SetViperEnvPrefix(v, EnvPrefix)
	if err := BindFlagsToViper(cmd, v); err != nil {
		return nil, err
	}
	return v, nil
}
