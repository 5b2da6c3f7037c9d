// cmd/generate/generate.go

package generate

import (
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_io"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultEntropy is used when --entropy is not given.
const DefaultEntropy = 64

// GenerateCmd prints random passwords that pass the current policy.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate passwords that pass the quality policy",
	Long: `Generates random passwords with the requested entropy (clamped to 56..256
bits) that satisfy the configured credits and pass every check.`,
	Args: cobra.NoArgs,
	RunE: cli.Wrap(runGenerate),
}

func init() {
	cli.AddIntFlag(GenerateCmd, "entropy", "e", DefaultEntropy, "entropy in bits")
	cli.AddIntFlag(GenerateCmd, "count", "n", 1, "number of passwords to print")
}

func runGenerate(rc *pwq_io.RuntimeContext, cmd *cobra.Command, _ []string) error {
	log := otelzap.Ctx(rc.Ctx)

	v, err := cli.NewViper(cmd)
	if err != nil {
		return err
	}
	count := v.GetInt("count")
	if count < 1 {
		return pwq_err.NewValidationError("--count must be at least 1")
	}
	bits := v.GetInt("entropy")

	s, err := cli.LoadSettings(rc, cli.SourceFromFlags(cmd, v))
	if err != nil {
		return err
	}
	checker := cli.NewChecker(rc, s)

	rc.Span.SetAttributes(
		attribute.Int("entropy_bits", pwquality.ClampEntropy(bits)),
		attribute.Int("count", count))
	log.Debug("Generating passwords",
		zap.Int("entropy_bits", bits),
		zap.Int("length", pwquality.EntropyLength(bits)),
		zap.Int("count", count))

	for i := 0; i < count; i++ {
		pw, err := checker.Generate(rc.Ctx, bits)
		if err != nil {
			return pwq_err.ClassifyPolicyError(err, "generate password")
		}
		logger.Terminalf(rc.Log, "%s", pw)
	}
	return nil
}
