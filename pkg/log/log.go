// Package log is the process-wide logger.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = newLogger(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
)

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetOutput replaces the writer log lines go to.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w).Level(logger.GetLevel())
}

// SetJSON switches to raw JSON lines on stderr.
func SetJSON() {
	SetOutput(os.Stderr)
}

// SetLevel sets the minimum level by name (debug, info, warn, error, ...).
func SetLevel(name string) error {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	logger = logger.Level(lvl)
	return nil
}

// Logger returns the underlying logger for structured fields.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

func Debug(msg string) {
	Logger().Debug().Msg(msg)
}

func Info(msg string) {
	Logger().Info().Msg(msg)
}

func Warn(msg string) {
	Logger().Warn().Msg(msg)
}

func Error(msg string) {
	Logger().Error().Msg(msg)
}

// Fatal logs msg and exits with status 1.
func Fatal(msg string) {
	Logger().Fatal().Msg(msg)
}
