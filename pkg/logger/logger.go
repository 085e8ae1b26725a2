// Package logger builds the zerolog root logger shared by every process
// of the claims platform. Each binary calls New once at startup and hands
// sub-loggers (With().Str("component", ...)) down to its services.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a root logger tagged with the service name. Non-production
// environments get human-readable console output; everything else emits
// one JSON object per line.
func New(service, env, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if isLocal(env) {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log = zerolog.New(out)
	} else {
		log = zerolog.New(os.Stdout)
	}

	return log.Level(lvl).With().
		Timestamp().
		Str("service", service).
		Logger()
}

func isLocal(env string) bool {
	switch strings.ToLower(env) {
	case "local", "dev", "development":
		return true
	}
	return false
}
