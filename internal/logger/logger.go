package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// InitServerLogger returns the logger used for startup/shutdown messages.
// Always human-readable console output.
func InitServerLogger() *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()
	return &logger
}

// InitHTTPLogger returns the logger used for request logging.
// Console output in dev, JSON otherwise.
func InitHTTPLogger(level zerolog.Level, environment string) *zerolog.Logger {
	var logger zerolog.Logger
	if environment == "dev" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			Level(level).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			Level(level).
			With().
			Timestamp().
			Logger()
	}
	return &logger
}

// ParseLogLevel converts a string log level to a zerolog.Level
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.DebugLevel
	}
}
