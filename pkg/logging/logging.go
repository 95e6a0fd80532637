package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// currentLogFile is the file the active invocation appends to. Set by
// SetupLogger and surfaced in the final report so operators can find
// the full detail even in silent mode.
var currentLogFile string

// SetupLogger configures the global logger based on verbosity level.
// It sets up dual output: a pretty console writer on stderr and an
// append-only UTF-8 log file, one line per entry in the form
// [<timestamp>] [<LEVEL>] <message>.
//
// logFile overrides the default per-invocation path in the temp
// directory; pass "" to use the default.
func SetupLogger(verbosity int, logFile string) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    false,
	}

	var writers []io.Writer
	writers = append(writers, consoleWriter)

	if logFile == "" {
		logFile = DefaultLogFilePath(time.Now())
	}
	fileHandle, err := openLogFile(logFile)
	if err == nil {
		writers = append(writers, fileWriter(fileHandle))
		currentLogFile = logFile
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", currentLogFile).Msg("Logger initialized")
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogFilePath returns the path of the active invocation's log file,
// or "" when file logging could not be set up.
func LogFilePath() string {
	return currentLogFile
}

// DefaultLogFilePath names a fresh log file in the temp directory,
// carrying the tool identity and an invocation timestamp.
func DefaultLogFilePath(now time.Time) string {
	name := fmt.Sprintf("benchkit-%s.log", now.Format("20060102-150405"))
	return filepath.Join(os.TempDir(), name)
}

// fileWriter wraps the log file in a console writer that renders the
// documented plain-text line format instead of JSON.
func fileWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:     out,
		NoColor: true,
		FormatTimestamp: func(i interface{}) string {
			return fmt.Sprintf("[%v]", i)
		},
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("[%s]", strings.ToUpper(fmt.Sprint(i)))
		},
	}
}

// openLogFile creates the log file and its parent directories.
func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogCommand logs a command execution with its arguments
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogDuration logs the duration of an operation
func LogDuration(start time.Time, operation string) {
	log.Debug().
		Str("operation", operation).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}
