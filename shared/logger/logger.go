package logger

import (
	"io"
	"os"
	"rendezvous/config"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	envProduction = "production"
	fieldService  = "service"
)

// InitLogger installs a console logger at trace level. Configure replaces it once config is loaded.
func InitLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	log.Trace().Msg("Zerolog initialized.")
}

// New builds a logger tagged with the application name. Production writes JSON lines,
// everything else the human readable console format.
func New(out io.Writer, cfg *config.Config) zerolog.Logger {
	if !strings.EqualFold(cfg.Server.Env, envProduction) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(out).With().Timestamp().Str(fieldService, cfg.App.Name).Logger()
}

// Level parses the configured level, falling back to info.
func Level(cfg *config.Config) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Server.LogLevel)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}

// Configure swaps the global logger for the configured one.
func Configure(cfg *config.Config) {
	level := Level(cfg)

	log.Logger = New(os.Stdout, cfg)
	zerolog.SetGlobalLevel(level)

	log.Debug().Str("loglevel", level.String()).Str("env", cfg.Server.Env).Msg("Logger configured.")
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
