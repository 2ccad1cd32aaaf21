package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	settingsFileName = "config.yaml"
	aliasesFileName  = "aliases.json"
)

// Dir returns the directory holding bippi's persisted state. An explicit
// override wins over the XDG config home.
func Dir(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// SettingsPath returns the config file inside dir.
func SettingsPath(dir string) string {
	return filepath.Join(dir, settingsFileName)
}

// AliasesPath returns the alias store file inside dir.
func AliasesPath(dir string) string {
	return filepath.Join(dir, aliasesFileName)
}
