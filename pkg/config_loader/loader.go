// pkg/config_loader/loader.go
//
// Loading of pwquality.conf style configuration into a settings store.

package config_loader

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// DefaultPath is read when no configuration file is named.
const DefaultPath = "/etc/security/pwquality.conf"

// DropInSuffix names the directory of drop-in files next to a config file.
const DropInSuffix = ".d"

// Read returns a store holding the defaults overridden by path.
func Read(ctx context.Context, path string) (*pwquality.Settings, error) {
	s := pwquality.NewSettings()
	if err := Load(ctx, s, path); err != nil {
		return nil, err
	}
	return s, nil
}

// Load applies the configuration at path to s. An empty path reads
// DefaultPath and tolerates its absence. Files in <path>.d/*.conf are
// applied after the main file in lexical order. Either every option is
// applied or, on error, s is left untouched.
func Load(ctx context.Context, s *pwquality.Settings, path string) error {
	logger := otelzap.Ctx(ctx)

	// ASSESS - resolve the files to read
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	files, err := resolveFiles(path, explicit)
	if err != nil {
		return err
	}
	logger.Debug("Assessing configuration",
		zap.String("config_file", path),
		zap.Strings("files", files))

	// INTERVENE - parse every file into a staging copy
	stage := s.Clone()
	applied := 0
	for _, f := range files {
		n, err := loadFile(stage, f)
		if err != nil {
			logger.Warn("Configuration rejected", zap.String("file", f), zap.Error(err))
			return err
		}
		applied += n
	}

	// EVALUATE - publish the staged settings in one step
	s.Replace(stage)
	logger.Debug("Configuration loaded",
		zap.String("config_file", path),
		zap.Int("files", len(files)),
		zap.Int("options", applied))
	return nil
}

// resolveFiles lists the main file (when present) followed by drop-ins.
func resolveFiles(path string, explicit bool) ([]string, error) {
	var files []string
	if _, err := os.Stat(path); err == nil {
		files = append(files, path)
	} else if explicit || !cerr.Is(err, fs.ErrNotExist) {
		return nil, configOpenError(path, err)
	}

	dropIns, err := filepath.Glob(filepath.Join(path+DropInSuffix, "*.conf"))
	if err != nil {
		return nil, configOpenError(path+DropInSuffix, err)
	}
	sort.Strings(dropIns)
	return append(files, dropIns...), nil
}

func loadFile(stage *pwquality.Settings, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, configOpenError(path, err)
	}

	var entries []entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		entries, err = parseYAML(data)
	default:
		entries, err = parseConf(data)
	}
	if err != nil {
		return 0, &pwquality.PolicyError{
			Reason: pwquality.ErrConfigMalformed,
			Cause:  cerr.WithHintf(cerr.Wrapf(err, "parse %s", path), "use 'name = value' lines in %s", path),
		}
	}
	if err := applyEntries(stage, path, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func configOpenError(path string, err error) error {
	return &pwquality.PolicyError{
		Reason: pwquality.ErrConfigOpen,
		Cause:  cerr.WithHint(cerr.Wrapf(err, "open %s", path), "pass --config with a readable pwquality.conf"),
	}
}
