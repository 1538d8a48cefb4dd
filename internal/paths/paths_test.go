package paths

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv is a goos host with the given variables, home /home/op and
// working directory /work.
func fakeEnv(goos string, vars map[string]string) Env {
	return Env{
		GOOS:          goos,
		Getenv:        func(key string) string { return vars[key] },
		HomeDir:       func() (string, error) { return "/home/op", nil },
		UserConfigDir: func() (string, error) { return "/Users/op/Library/Application Support", nil },
		Abs: func(path string) (string, error) {
			if filepath.IsAbs(path) {
				return path, nil
			}
			return filepath.Join("/work", path), nil
		},
	}
}

func TestConfigDir(t *testing.T) {
	tests := []struct {
		name string
		goos string
		vars map[string]string
		flag string
		want string
	}{
		{"flag wins over env", "linux", map[string]string{EnvConfigDir: "/env/config"}, "/explicit", "/explicit"},
		{"env when no flag", "linux", map[string]string{EnvConfigDir: "/env/config"}, "", "/env/config"},
		{"relative flag made absolute", "linux", nil, "conf", "/work/conf"},
		{"relative env made absolute", "linux", map[string]string{EnvConfigDir: "conf"}, "", "/work/conf"},
		{"xdg on linux", "linux", map[string]string{"XDG_CONFIG_HOME": "/xdg"}, "", "/xdg/power"},
		{"home fallback on linux", "linux", nil, "", "/home/op/.config/power"},
		{"user config dir elsewhere", "darwin", map[string]string{"XDG_CONFIG_HOME": "/xdg"}, "", "/Users/op/Library/Application Support/power"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fakeEnv(tt.goos, tt.vars).ConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestConfigDirLookupFailures(t *testing.T) {
	noHome := errors.New("no home")

	linux := fakeEnv("linux", nil)
	linux.HomeDir = func() (string, error) { return "", noHome }
	_, err := linux.ConfigDir("")
	assert.ErrorIs(t, err, noHome)

	darwin := fakeEnv("darwin", nil)
	darwin.UserConfigDir = func() (string, error) { return "", noHome }
	_, err = darwin.ConfigDir("")
	assert.ErrorIs(t, err, noHome)

	// An explicit directory never consults the platform lookups.
	got, err := linux.ConfigDir("/explicit")
	require.NoError(t, err)
	assert.Equal(t, "/explicit", got)
}

func TestResolveConfigDirUsesHost(t *testing.T) {
	t.Setenv(EnvConfigDir, "relative/env")
	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	assert.Equal(t, "env", filepath.Base(got))
}

func TestResolveFile(t *testing.T) {
	assert.Equal(t, "", ResolveFile("/etc/power", ""))
	assert.Equal(t, "/boards/ara.yaml", ResolveFile("/etc/power", "/boards/ara.yaml"))
	assert.Equal(t, filepath.Join("/etc/power", "boards", "ara.yaml"), ResolveFile("/etc/power", "boards/ara.yaml"))
}
