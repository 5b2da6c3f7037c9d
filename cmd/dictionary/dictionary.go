// cmd/dictionary/dictionary.go

package dictionary

import (
	"io"
	"strings"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/dictionary"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_err"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwq_io"
	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DictionaryCmd groups commands that maintain the dictionary backend.
var DictionaryCmd = &cobra.Command{
	Use:   "dictionary",
	Short: "Maintain the dictionary backend",
}

// AddCmd fills a redis dictionary set.
var AddCmd = &cobra.Command{
	Use:   "add [word...]",
	Short: "Add words to a redis dictionary",
	Long: `Adds words to the redis set named by dictpath (or --url). Words are taken
from the arguments or, when none are given, from standard input one per line.
Blank lines and lines starting with '#' are skipped.`,
	RunE: cli.Wrap(runAdd),
}

func init() {
	cli.AddStringFlag(AddCmd, "url", "u", "", "redis URL, e.g. redis://localhost:6379/0?key=pwquality:dictionary (default dictpath)", false)
	DictionaryCmd.AddCommand(AddCmd)
}

func runAdd(rc *pwq_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)

	v, err := cli.NewViper(cmd)
	if err != nil {
		return err
	}
	target := v.GetString("url")
	if target == "" {
		s, err := cli.LoadSettings(rc, cli.SourceFromFlags(cmd, v))
		if err != nil {
			return err
		}
		target, _, _ = s.GetStr(pwquality.SettingDictPath)
	}
	if !isRedisURL(target) {
		return pwq_err.NewValidationError("dictionary add needs a redis dictionary",
			"pass --url redis://host:port/db or set dictpath to a redis:// URL")
	}

	words, err := readWords(args, cmd.InOrStdin())
	if err != nil {
		return pwq_err.NewFilesystemError("read words", err)
	}
	if len(words) == 0 {
		return pwq_err.NewValidationError("no words to add")
	}

	r, err := dictionary.NewRedis(target, rc.Log)
	if err != nil {
		return pwq_err.NewValidationError(err.Error(), "check the redis URL")
	}
	rc.OnExit(r.Close)

	rc.Span.SetAttributes(attribute.String("key", r.Key()), attribute.Int("words", len(words)))
	added, err := r.Add(rc.Ctx, words...)
	if err != nil {
		return pwq_err.NewDependencyError("the dictionary backend", "add words", err,
			"check that the redis server is reachable")
	}
	log.Info("Dictionary updated",
		zap.String("key", r.Key()),
		zap.Int("words", len(words)),
		zap.Int64("added", added))
	logger.Terminalf(rc.Log, "added %d of %d words to %s", added, len(words), r.Key())
	return nil
}

func isRedisURL(s string) bool {
	return strings.HasPrefix(s, "redis://") || strings.HasPrefix(s, "rediss://")
}

// readWords returns args when given, else the word list read from in.
func readWords(args []string, in io.Reader) ([]string, error) {
	if len(args) > 0 {
		return dictionary.NewWordList(args...).Words(), nil
	}
	wl, err := dictionary.Read(in)
	if err != nil {
		return nil, err
	}
	return wl.Words(), nil
}
