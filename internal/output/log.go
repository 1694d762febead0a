// Package output provides terminal output utilities.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide logger. Replaced by SetupLogging.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	ReportCaller:    false,
})

// LogConfig controls logger construction.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and forces timestamps on.
	Verbose bool

	// Timestamps toggles timestamps. Nil means on.
	Timestamps *bool

	// MessageOnly drops level and timestamp decoration so only the message
	// and its key/value pairs are printed.
	MessageOnly bool

	// Writer overrides the destination. Nil means stderr.
	Writer io.Writer
}

func (c LogConfig) timestamps() bool {
	if c.MessageOnly {
		return false
	}
	if c.Verbose {
		return true
	}
	if c.Timestamps != nil {
		return *c.Timestamps
	}
	return true
}

// SetupLogging configures the logger.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: cfg.timestamps(),
		ReportCaller:    cfg.Verbose && !cfg.MessageOnly,
		TimeFormat:      "15:04:05",
	})
	if cfg.MessageOnly {
		logger.SetStyles(messageOnlyStyles())
	}
}

// messageOnlyStyles hides the level prefix.
func messageOnlyStyles() *log.Styles {
	styles := log.DefaultStyles()
	for lvl := range styles.Levels {
		styles.Levels[lvl] = styles.Levels[lvl].SetString("")
	}
	return styles
}

// StepLogger returns a child logger prefixed with an initialization step name.
func StepLogger(step string) *log.Logger {
	return logger.WithPrefix(StyleNoun.Render(step))
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}
