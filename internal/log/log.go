package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "", "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		// above every level slog emits
		return slog.LevelError + 4
	}
}

// Logger is a printf-style front end over slog.
type Logger struct {
	logger *slog.Logger
	lv     *slog.LevelVar
	level  Level
}

func New(out io.Writer, level Level) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level.slogLevel())
	return &Logger{
		logger: slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lv})),
		lv:     lv,
		level:  level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger { return New(io.Discard, LevelNone) }

func (l *Logger) logf(level slog.Level, format string, v ...interface{}) {
	if l == nil || !l.logger.Enabled(context.Background(), level) {
		return
	}
	l.logger.Log(context.Background(), level, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...interface{}) { l.logf(slog.LevelDebug, format, v...) }

func (l *Logger) Infof(format string, v ...interface{}) { l.logf(slog.LevelInfo, format, v...) }

func (l *Logger) Warnf(format string, v ...interface{}) { l.logf(slog.LevelWarn, format, v...) }

func (l *Logger) Errorf(format string, v ...interface{}) { l.logf(slog.LevelError, format, v...) }

func (l *Logger) SetLevel(level Level) {
	l.level = level
	l.lv.Set(level.slogLevel())
}

func (l *Logger) Level() Level {
	return l.level
}
