/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/CodeMonkeyCybersecurity/pwquality/pkg/xdg"
)

const (
	appID       = "pwquality"
	logFileName = "pwquality.log"
)

// PlatformLogPaths returns fallback log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			xdg.XDGStatePath(appID, logFileName),
			filepath.Join(os.TempDir(), appID, logFileName),
		}
	case "linux":
		return []string{
			filepath.Join("/var/log", appID, logFileName), // writable when run as root
			xdg.XDGStatePath(appID, logFileName),          // e.g. ~/.local/state/pwquality/pwquality.log
			filepath.Join(os.TempDir(), appID, logFileName),
		}
	case "windows":
		return []string{
			filepath.Join(os.Getenv("LOCALAPPDATA"), appID, logFileName),
			filepath.Join(os.TempDir(), appID, logFileName),
		}
	default:
		return []string{filepath.Join(os.TempDir(), appID, logFileName)}
	}
}
