// Package log provides the zerolog-backed logging used across the
// repository.
//
// Application code configures the global logger once via SetupLogger and
// either uses the raw zerolog logger from GetLogger, or obtains a named
// key-value Logger with GetLoggerWithName, the form estimators use for
// their fit/predict progress lines.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the key-value logging interface handed to estimators. Fields
// are alternating key/value pairs, e.g.
//
//	logger.Info("training forest", "samples", n, "trees", 10)
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

var global = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

// SetupLogger configures the global log level. Accepted levels: debug,
// info, warn, error. Unknown levels fall back to info.
func SetupLogger(level string) {
	zerolog.SetGlobalLevel(ToLogLevel(level))
}

// ToLogLevel maps a level name to a zerolog level, defaulting to info.
func ToLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLogger returns the global zerolog logger.
func GetLogger() zerolog.Logger {
	return global
}

// GetLoggerWithName returns a Logger whose events carry the given component
// name.
func GetLoggerWithName(name string) Logger {
	l := global.With().Str("component", name).Logger()
	return &zerologLogger{logger: l}
}

// LogError logs err with a message at error level.
func LogError(err error, msg string) {
	global.Error().Err(err).Msg(msg)
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...interface{}) {
	withFields(z.logger.Debug(), fields).Msg(msg)
}

func (z *zerologLogger) Info(msg string, fields ...interface{}) {
	withFields(z.logger.Info(), fields).Msg(msg)
}

func (z *zerologLogger) Warn(msg string, fields ...interface{}) {
	withFields(z.logger.Warn(), fields).Msg(msg)
}

func (z *zerologLogger) Error(msg string, fields ...interface{}) {
	withFields(z.logger.Error(), fields).Msg(msg)
}

// withFields attaches alternating key/value pairs to an event. A trailing
// key without a value is ignored.
func withFields(e *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, fields[i+1])
	}
	return e
}
