package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets the pretty console
// writer; everything else logs JSON to stdout.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	if environment == "development" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(output)
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.With().
		Timestamp().
		Str("service", "history-service").
		Logger()
}
