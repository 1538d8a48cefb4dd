package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.WarnLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud"}, io.Discard, io.Discard))
}

func TestWriterFor(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, io.Writer(&stderr), writerFor(Config{}, &stdout, &stderr))
	assert.Equal(t, io.Writer(&stderr), writerFor(Config{Output: "stderr"}, &stdout, &stderr))
	assert.Equal(t, io.Writer(&stdout), writerFor(Config{Output: "stdout"}, &stdout, &stderr))
	assert.Equal(t, io.Discard, writerFor(Config{Output: "discard"}, &stdout, &stderr))
	assert.Equal(t, io.Writer(&stderr), writerFor(Config{Output: "file"}, &stdout, &stderr))

	w := writerFor(Config{Output: "FILE", File: "/tmp/power.log"}, &stdout, &stderr)
	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, "/tmp/power.log", lj.Filename)
	assert.Equal(t, fileMaxBackups, lj.MaxBackups)
}

func TestInitStdoutUsesGivenWriter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.NoError(t, Init(Config{Level: "info", Output: "stdout"}, &stdout, &stderr))
	t.Cleanup(func() { _ = Init(Config{}, os.Stdout, os.Stderr) })

	log := WithComponent("cli")
	log.Info().Msg("to stdout")
	assert.Contains(t, stdout.String(), `"message":"to stdout"`)
	assert.Empty(t, stderr.String())
}

func TestInitFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "power.log")
	require.NoError(t, Init(Config{Level: "info", Output: "file", File: path}, io.Discard, io.Discard))
	t.Cleanup(func() { _ = Init(Config{}, os.Stdout, os.Stderr) })

	log := WithComponent("cli")
	log.Info().Msg("started")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"started"`)
}

func TestInitWritesToStderrByDefault(t *testing.T) {
	var stderr bytes.Buffer
	require.NoError(t, Init(Config{Level: "info"}, io.Discard, &stderr))
	t.Cleanup(func() { _ = Init(Config{}, os.Stdout, os.Stderr) })

	log := WithComponent("board")
	log.Info().Msg("loaded")
	assert.Contains(t, stderr.String(), `"component":"board"`)
	assert.Contains(t, stderr.String(), `"message":"loaded"`)
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel)
	log.Debug().Msg("hidden")
	log.Info().Str("iface", "spring1").Msg("powered on")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "powered on", entry["message"])
	assert.Equal(t, "spring1", entry["iface"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestWithComponent(t *testing.T) {
	require.NoError(t, Init(Config{Level: "debug", Output: "discard"}, os.Stdout, os.Stderr))
	t.Cleanup(func() { _ = Init(Config{}, os.Stdout, os.Stderr) })

	log := WithComponent("board")
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
	assert.Equal(t, zerolog.DebugLevel, Logger().GetLevel())
}
