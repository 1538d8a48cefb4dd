// Package paths resolves the configuration directory and config-relative
// files of the power command.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user configuration directory.
const AppName = "power"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "POWER_CONFIG_DIR"

// Env is what directory resolution reads from the host.
type Env struct {
	GOOS          string
	Getenv        func(key string) string
	HomeDir       func() (string, error)
	UserConfigDir func() (string, error)
	Abs           func(path string) (string, error)
}

// Host returns the Env of the running process.
func Host() Env {
	return Env{
		GOOS:          runtime.GOOS,
		Getenv:        os.Getenv,
		HomeDir:       os.UserHomeDir,
		UserConfigDir: os.UserConfigDir,
		Abs:           filepath.Abs,
	}
}

// ConfigDir picks the configuration directory: flag, then POWER_CONFIG_DIR,
// then the platform default. An explicit choice is made absolute.
func (e Env) ConfigDir(flag string) (string, error) {
	explicit := flag
	if explicit == "" {
		explicit = e.Getenv(EnvConfigDir)
	}
	if explicit != "" {
		return e.Abs(explicit)
	}
	return e.platformConfigDir()
}

// platformConfigDir is $XDG_CONFIG_HOME/power or ~/.config/power on Linux
// and the OS user config directory plus "power" elsewhere.
func (e Env) platformConfigDir() (string, error) {
	if e.GOOS != "linux" {
		base, err := e.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("user config dir: %w", err)
		}
		return filepath.Join(base, AppName), nil
	}
	if xdg := e.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := e.HomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// ResolveConfigDir resolves the configuration directory against the host.
func ResolveConfigDir(flag string) (string, error) {
	return Host().ConfigDir(flag)
}

// ResolveFile returns the path of a file named in the configuration, such
// as the board description or the log file. Relative values are taken
// relative to configDir; an empty value stays empty.
func ResolveFile(configDir, value string) string {
	if value == "" || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(configDir, value)
}
