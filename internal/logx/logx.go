// Package logx configures the zerolog loggers used across the service.
package logx

import (
	"io"
	"os"

	"tomato-harvest/internal/config"

	"github.com/rs/zerolog"
)

// New returns the root logger for env. Development gets a console writer at
// debug level; everything else logs JSON at info level.
func New(env config.Environment) zerolog.Logger {
	return newWithWriter(env, os.Stdout)
}

func newWithWriter(env config.Environment, w io.Writer) zerolog.Logger {
	if env == config.Development {
		return zerolog.New(zerolog.ConsoleWriter{Out: w}).
			With().Timestamp().Caller().Logger().
			Level(zerolog.DebugLevel)
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// Component derives a child logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// Discard returns a logger that drops everything.
func Discard() zerolog.Logger {
	return zerolog.Nop()
}
