package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file, following
// the XDG Base Directory Specification:
// - Linux: ~/.config/relkit/config.yml
// - macOS: ~/Library/Application Support/relkit/config.yml
// - Windows: %APPDATA%\relkit\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "relkit", "config.yml"), nil
}

// ProjectConfigNames returns the project config file names searched in the
// project directory, in priority order.
func ProjectConfigNames() []string {
	return []string{".relkit.yml", ".relkit.yaml", ".relkit.toml", ".relkit.json"}
}
