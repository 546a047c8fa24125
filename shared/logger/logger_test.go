package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"rendezvous/config"
	"rendezvous/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configFor(env, level string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "rendezvous"
	cfg.Server.Env = env
	cfg.Server.LogLevel = level

	return cfg
}

func TestInitLogger(t *testing.T) {
	original, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})

	logger.InitLogger()

	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, configFor("Production", "info"))
	l.Info().Int64("booking_id", 7).Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "rendezvous", line["service"])
	assert.Equal(t, "booking created", line["message"])
	assert.InDelta(t, 7, line["booking_id"], 0)
	assert.Contains(t, line, "time")
}

func TestNewDevelopmentWritesConsole(t *testing.T) {
	var buf bytes.Buffer

	l := logger.New(&buf, configFor("local", "debug"))
	l.Warn().Str("plate", "1234-AB-56").Msg("conflict")

	output := buf.String()

	assert.Contains(t, output, "conflict")
	assert.Contains(t, output, "plate=1234-AB-56")
	assert.Contains(t, output, "service=rendezvous")
}

func TestLevel(t *testing.T) {
	tests := []struct {
		configured string
		expected   zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.configured, func(t *testing.T) {
			assert.Equal(t, tt.expected, logger.Level(configFor("", tt.configured)))
		})
	}
}

func TestConfigure(t *testing.T) {
	original, level := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})

	logger.Configure(configFor("production", "error"))

	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("storage unreachable"))

	assert.Contains(t, buf.String(), "storage unreachable")
	assert.Contains(t, buf.String(), `"level":"error"`)
}
