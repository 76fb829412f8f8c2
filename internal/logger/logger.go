package logger

import (
	"context"

	"go.uber.org/zap/zapcore"
)

type runIDKey struct{}

// WithRunID returns a context whose log lines carry the given run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunID returns the run ID stored by WithRunID, or "".
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

func (l *implLogger) shouldLog(level zapcore.Level) bool {
	return l.level.Enabled(level)
}

func (l *implLogger) log(ctx context.Context, level zapcore.Level, msg string, args []interface{}) {
	if !l.shouldLog(level) {
		return
	}
	s := l.sugar
	if id := RunID(ctx); id != "" {
		s = s.With("run_id", id)
	}
	switch level {
	case zapcore.DebugLevel:
		s.Debugf(msg, args...)
	case zapcore.InfoLevel:
		s.Infof(msg, args...)
	case zapcore.WarnLevel:
		s.Warnf(msg, args...)
	default:
		s.Errorf(msg, args...)
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, zapcore.DebugLevel, msg, args)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, zapcore.InfoLevel, msg, args)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, zapcore.WarnLevel, msg, args)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log(ctx, zapcore.ErrorLevel, msg, args)
}
