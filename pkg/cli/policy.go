// pkg/cli/policy.go

package cli

import (
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/config_loader"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_io"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Global flag names shared by the commands.
const (
	FlagConfig   = "config"
	FlagSet      = "set"
	FlagLogLevel = "log-level"
)

// PolicySource is where a command's settings come from: a configuration
// file plus name=value overrides applied on top.
type PolicySource struct {
	Path      string
	Overrides []string
}

// SourceFromFlags reads --config (or PWQ_CONFIG) and every --set.
func SourceFromFlags(cmd *cobra.Command, v *viper.Viper) PolicySource {
	src := PolicySource{Path: v.GetString(FlagConfig)}
	// Read --set from pflag directly, Viper splits array values on commas.
	if f := cmd.Flag(FlagSet); f != nil {
		if vals, err := cmd.Flags().GetStringArray(FlagSet); err == nil {
			src.Overrides = vals
		}
	}
	return src
}

// Apply applies the overrides to s, reporting every bad option.
func (p PolicySource) Apply(s *pwquality.Settings) error {
	var result error
	for _, o := range p.Overrides {
		if err := config_loader.ParseOption(s, o); err != nil {
			result = multierror.Append(result, pwq_err.WrapValidationError(err))
		}
	}
	return result
}

// LoadSettings reads the configuration and applies the overrides.
func LoadSettings(rc *pwq_io.RuntimeContext, src PolicySource) (*pwquality.Settings, error) {
	logger := otelzap.Ctx(rc.Ctx)

	s, err := config_loader.Read(rc.Ctx, src.Path)
	if err != nil {
		shown := src.Path
		if shown == "" {
			shown = config_loader.DefaultPath
		}
		return nil, pwq_err.ClassifyPolicyError(pwq_err.WrapConfigError(err, shown), "load configuration")
	}
	if err := src.Apply(s); err != nil {
		return nil, pwq_err.ClassifyPolicyError(err, "apply --set")
	}
	logger.Debug("Settings loaded",
		zap.String("config_file", src.Path),
		zap.Int("overrides", len(src.Overrides)),
		zap.Int("minlen", s.MinLength()),
		zap.Bool("enforcing", s.Enforcing()))
	return s, nil
}

// NewChecker builds a checker logging through rc and closes it when the
// command exits.
func NewChecker(rc *pwq_io.RuntimeContext, s *pwquality.Settings) *pwquality.Checker {
	c := pwquality.New(s, pwquality.WithLogger(rc.Log.Named("pwquality")))
	rc.OnExit(c.Close)
	return c
}
