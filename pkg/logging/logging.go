package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	appDirName  = "vimdot"
	logFileName = "vimdot.log"

	// DryRunField marks every entry written while nothing is mutated
	DryRunField = "dry_run"
)

// Options configures SetupLogger. The zero value logs warnings to stderr.
type Options struct {
	// Verbosity is the -v count
	Verbosity int
	// DryRun tags every entry and prefixes console messages with [dry-run]
	DryRun bool
	// Console receives human-readable output. Defaults to stderr.
	Console io.Writer
	// LogFile overrides the XDG state-home log file. "-" disables it.
	LogFile string
}

// LevelFor maps a -v count to a log level: warnings by default, then info,
// debug and trace.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger installs the global logger: a console writer plus an append-mode
// JSON log file. A log file that cannot be opened is reported and skipped.
func SetupLogger(opts Options) {
	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{newConsoleWriter(console, opts.DryRun)}

	logFile := opts.LogFile
	if logFile == "" {
		logFile = LogFilePath()
	}
	var fileErr error
	if logFile != "-" {
		var handle *os.File
		handle, fileErr = openLogFile(logFile)
		if fileErr == nil {
			writers = append(writers, handle)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.DryRun {
		ctx = ctx.Bool(DryRunField, true)
	}
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Log file unavailable, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// newConsoleWriter renders entries as "15:04 WRN [installer] message key=value".
// The component and dry-run fields move into the message prefix.
func newConsoleWriter(out io.Writer, dryRun bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:           out,
		TimeFormat:    time.Kitchen,
		NoColor:       !colorEnabled(out),
		FieldsExclude: []string{"component", DryRunField},
		FormatPrepare: func(evt map[string]interface{}) error {
			msg, _ := evt[zerolog.MessageFieldName].(string)
			if comp, ok := evt["component"].(string); ok && comp != "" {
				msg = "[" + comp + "] " + msg
			}
			if dryRun {
				msg = "[dry-run] " + msg
			}
			evt[zerolog.MessageFieldName] = msg
			return nil
		},
	}
}

func colorEnabled(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// GetLogger returns a logger tagged with component
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogFilePath returns the path to the log file under the XDG state home
// ($XDG_STATE_HOME/vimdot/vimdot.log, ~/.local/state/vimdot/vimdot.log by default).
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, appDirName, logFileName)
}

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

// LogOperationStart logs the start of a step and returns a func that logs its
// completion with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
