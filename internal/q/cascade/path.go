package cascade

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExpandPath expands a leading "~" to the home directory and makes path absolute. "" stays "". If the home directory is unknown, "~" is left alone.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if home, _ := os.UserHomeDir(); home != "" {
		switch {
		case path == "~" || path == "~/" || path == `~\`:
			path = home
		case strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`):
			path = filepath.Join(home, path[2:])
		}
	}

	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// InUserConfigDirectory returns the absolute path of subPath inside the user's config location: the home directory, or AppData\Local on Windows.
// Ex: InUserConfigDirectory(".colordiff/config.json") -> "/home/me/.colordiff/config.json".
func InUserConfigDirectory(subPath string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(ExpandPath("~/AppData/Local"), subPath)
	}
	return filepath.Join(ExpandPath("~"), subPath)
}
