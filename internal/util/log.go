package util

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions selects level, console/json rendering and an optional rotated log file.
type LogOptions struct {
	Level  string
	Format string // json|console
	File   string
}

func NewLogger(level string) zerolog.Logger {
	return NewLoggerWithOptions(LogOptions{Level: level})
}

func NewLoggerWithOptions(opts LogOptions) zerolog.Logger {
	return newLogger(os.Stdout, opts)
}

func newLogger(stdout io.Writer, opts LogOptions) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = stdout
	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: stdout, TimeFormat: time.DateTime}
	}
	if opts.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
		})
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}
