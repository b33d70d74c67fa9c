package log

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/olsstat/pkg/errors"
)

// zerologLogger adapts zerolog.Logger to Logger.
type zerologLogger struct {
	l   zerolog.Logger
	min Level
}

// NewZerologLogger returns a Logger that writes zerolog JSON lines to w,
// dropping records below level.
func NewZerologLogger(w io.Writer, level Level) Logger {
	l := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{l: l, min: level}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (z *zerologLogger) Debug(msg string, fields ...any) {
	z.l.Debug().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Info(msg string, fields ...any) {
	z.l.Info().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Warn(msg string, fields ...any) {
	z.l.Warn().Fields(fields).Msg(msg)
}

func (z *zerologLogger) Error(msg string, fields ...any) {
	ev := z.l.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Err(err)
			fields = fields[1:]
		}
	}
	ev.Fields(fields).Msg(msg)
}

func (z *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{l: z.l.With().Fields(fields).Logger(), min: z.min}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return level >= z.min
}

// RouteWarnings sends every errors.Warn call to logger at warn level.
// Warnings implementing zerolog.LogObjectMarshaler are logged as a
// structured "warning" object.
func RouteWarnings(logger zerolog.Logger) {
	errors.SetZerologWarnFunc(func(w error) {
		ev := logger.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.Object("warning", m)
		}
		ev.Msg(w.Error())
	})
}
