// pkg/config_loader/watch.go

package config_loader

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/pwquality"
	cerr "github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Watch reloads path into target whenever the file or one of its drop-ins
// changes, until ctx is cancelled. Each reload starts from the defaults,
// so removing an option from the file restores its default. A reload that
// fails leaves target unchanged; onReload, when set, sees every outcome.
// Watch returns once the watcher is running.
func Watch(ctx context.Context, path string, target *pwquality.Settings, onReload func(error)) error {
	resolved := path
	if resolved == "" {
		resolved = DefaultPath
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return cerr.Wrap(err, "create config watcher")
	}
	// Editors replace files by rename, so watch the directories.
	dirs := []string{filepath.Dir(resolved), resolved + DropInSuffix}
	watched := 0
	for _, d := range dirs {
		if err := w.Add(d); err == nil {
			watched++
		}
	}
	if watched == 0 {
		_ = w.Close()
		return configOpenError(resolved, cerr.New("no watchable directory"))
	}

	go runWatcher(ctx, w, path, resolved, target, onReload)
	return nil
}

func runWatcher(ctx context.Context, w *fsnotify.Watcher, path, resolved string, target *pwquality.Settings, onReload func(error)) {
	logger := otelzap.Ctx(ctx)
	defer func() { _ = w.Close() }()
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !relevant(ev, resolved) {
				continue
			}
			err := reload(ctx, path, target)
			if err != nil {
				logger.Warn("Configuration reload failed, keeping previous settings",
					zap.String("config_file", resolved), zap.Error(err))
			} else {
				logger.Info("Configuration reloaded",
					zap.String("config_file", resolved), zap.String("trigger", ev.Name))
			}
			if onReload != nil {
				onReload(err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watcher error", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}

func relevant(ev fsnotify.Event, path string) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	if name == filepath.Clean(path) {
		return true
	}
	return filepath.Dir(name) == filepath.Clean(path+DropInSuffix) && strings.HasSuffix(name, ".conf")
}

func reload(ctx context.Context, path string, target *pwquality.Settings) error {
	fresh := pwquality.NewSettings()
	if err := Load(ctx, fresh, path); err != nil {
		return err
	}
	target.Replace(fresh)
	return nil
}
