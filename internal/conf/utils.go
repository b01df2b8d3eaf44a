package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tphakala/weatherdash/internal/errors"
)

const (
	appName   = "weatherdash"
	osWindows = "windows"
)

// ConfigSearchPaths returns the directories searched for config.yaml, in order.
func ConfigSearchPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "get-home-directory").
			Build()
	}

	if runtime.GOOS == osWindows {
		return []string{
			".",
			filepath.Join(homeDir, "AppData", "Roaming", appName),
		}, nil
	}
	return []string{
		".",
		filepath.Join(homeDir, ".config", appName),
		filepath.Join("/etc", appName),
	}, nil
}

// DefaultConfigPath returns where `config init` writes when no path is given.
func DefaultConfigPath() (string, error) {
	paths, err := ConfigSearchPaths()
	if err != nil {
		return "", err
	}
	return filepath.Join(paths[1], "config.yaml"), nil
}
