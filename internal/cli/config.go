package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/power/internal/command"
	"github.com/mesh-intelligence/power/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "POWER"

	cfgKeyBoard         = "board"
	cfgKeyLogLevel      = "log_level"
	cfgKeyLogOutput     = "log_output"
	cfgKeyLogFile       = "log_file"
	cfgKeyWakeoutLength = "wakeout_length"
)

// config is the effective configuration of one invocation.
type config struct {
	ConfigDir     string
	BoardFile     string
	LogLevel      string
	LogOutput     string
	LogFile       string
	WakeoutLength int
}

// loadConfig reads config.yaml from the resolved config directory using Viper.
// Precedence per key is flag > POWER_* environment > config.yaml > default.
// A missing config.yaml is not an error, and nothing is ever written.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyWakeoutLength, command.HardwareDefaultLength)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlag(cfgKeyLogLevel, cmd.Flags().Lookup("log-level")); err != nil {
		return config{}, fmt.Errorf("bind flag: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := config{
		ConfigDir:     configDir,
		BoardFile:     paths.ResolveFile(configDir, v.GetString(cfgKeyBoard)),
		LogLevel:      v.GetString(cfgKeyLogLevel),
		LogOutput:     v.GetString(cfgKeyLogOutput),
		LogFile:       paths.ResolveFile(configDir, v.GetString(cfgKeyLogFile)),
		WakeoutLength: v.GetInt(cfgKeyWakeoutLength),
	}

	// A --board flag is relative to the working directory, not the config dir.
	if flags.board != "" {
		if cfg.BoardFile, err = filepath.Abs(flags.board); err != nil {
			return config{}, fmt.Errorf("resolve board file: %w", err)
		}
	}
	return cfg, nil
}
