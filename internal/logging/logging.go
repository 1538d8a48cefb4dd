// Package logging provides structured logging for the power command using
// zerolog. Operator-facing output goes to stdout through the command layer;
// everything logged here goes to stderr unless configured otherwise.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultLevel keeps the operator's terminal quiet unless something fails.
const DefaultLevel = "warn"

// Output destinations.
const (
	OutputStderr  = "stderr"
	OutputStdout  = "stdout"
	OutputFile    = "file"
	OutputDiscard = "discard"
)

// Rotation limits for file output.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

// Config selects the level and destination of log output.
type Config struct {
	Level  string `yaml:"level"`
	Output string `yaml:"output"`
	File   string `yaml:"file"` // used when Output is "file"
}

var globalLogger = zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()

// Init replaces the global logger. An empty level means DefaultLevel and an
// empty output means stderr. The stdout and stderr outputs write to the
// given writers.
func Init(cfg Config, stdout, stderr io.Writer) error {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}
	zerolog.TimeFieldFormat = time.RFC3339

	globalLogger = New(writerFor(cfg, stdout, stderr), level)
	return nil
}

// New builds a timestamped logger writing to w at level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return globalLogger
}

// WithComponent returns a child of the global logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		s = DefaultLevel
	}
	return zerolog.ParseLevel(strings.ToLower(s))
}

// writerFor maps cfg to a destination. File output without a path, and any
// unrecognised output, fall back to stderr.
func writerFor(cfg Config, stdout, stderr io.Writer) io.Writer {
	switch strings.ToLower(cfg.Output) {
	case OutputStdout:
		return stdout
	case OutputDiscard:
		return io.Discard
	case OutputFile:
		if cfg.File == "" {
			return stderr
		}
		return &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
		}
	default:
		return stderr
	}
}
