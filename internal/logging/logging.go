// Package logging sets up the editor's zerolog output: console for
// interactive runs, plus a session log file under the configured logs
// directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("panostudio.%s.log", sessionStart.Format("20060102_150405")),
	)
}

// ParseLevel converts a config string to a zerolog level. Unknown values
// fall back to info.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// Setup creates the root logger. When logsDir is non-empty a session log
// file is opened there; the returned closer flushes and closes it.
func Setup(level, logsDir string) (zerolog.Logger, func() error, error) {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}}
	closer := func() error { return nil }

	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
		file, err := os.OpenFile(
			LogFilePath(logsDir, time.Now()),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0o644,
		)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
		closer = file.Close
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(ParseLevel(level)).
		With().Timestamp().Logger()
	return logger, closer, nil
}
