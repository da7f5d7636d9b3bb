package logx

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New собирает slog.Logger: tint для консоли, JSON для файла или по
// требованию, ротация файла через lumberjack.
func New(opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)

	var writer io.Writer = os.Stdout

	if opts.File != "" && opts.File != "stdout" {
		writer = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			LocalTime:  true,
		}
	}

	if strings.EqualFold(opts.Format, "json") || opts.File != "" {
		return slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(tint.NewHandler(writer, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
	}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
