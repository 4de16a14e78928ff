// Package log provides the structured logger used by the interpreter and the
// command line, built on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("dataset started", slog.Int("line", 12))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON))
//
// The zero [Logger] discards everything, so components can hold one without
// checking whether logging was configured.
//
// # Package-Level Logger
//
// [Config] replaces the options of the package-level logger returned by
// [Default]; [Debug], [Info], [Warn] and [Error] log through it.
package log
