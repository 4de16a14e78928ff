package cli

import (
	"cmp"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/kolkov/elvas"
	"github.com/kolkov/elvas/internal/log"
)

// logFormat configures the logger format as a side effect of parsing, so
// that messages logged while the remaining flags are parsed already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))
	return nil
}

// logLevel configures the logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))
	return nil
}

// Flags left empty fall back to the configuration file, then to the
// package defaults.
type logConfig struct {
	Level  logLevel  `default:"" enum:",${logLevels}" help:"Set log level (default: warn)."  placeholder:"LEVEL"`
	Format logFormat `default:"" enum:",text,json"    help:"Set log format (default: text)." placeholder:"FORMAT"`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{"logLevels": strings.Join(log.Levels(), ",")}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

// start configures the package logger, writing to w, and returns it.
func (f *logConfig) start(w io.Writer, file elvas.LogConfig) log.Logger {
	level := cmp.Or(string(f.Level), file.Level, log.DefaultLevel.String())
	format := cmp.Or(string(f.Format), file.Format, log.DefaultFormat.String())

	log.Config(
		log.WithOutput(w),
		log.WithLevel(log.ParseLevel(level)),
		log.WithFormat(log.ParseFormat(format)),
	)

	log.Debug("logger initialized",
		slog.String("level", level),
		slog.String("format", format),
	)
	return log.Default()
}
