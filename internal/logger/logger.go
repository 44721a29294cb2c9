// Package logger provides the process-wide structured logger.
// The TUI owns the terminal, so interactive runs log to a rotated file while
// one-shot subcommands log to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger instance.
var Logger *log.Logger

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure replaces the global logger. An empty file keeps stderr.
func Configure(level string, file string) error {
	var output io.Writer = os.Stderr
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o700); err != nil {
			return err
		}
		output = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
		}
	}

	Logger = log.NewWithOptions(output, log.Options{
		ReportTimestamp: file != "",
		TimeFormat:      "2006-01-02 15:04:05",
		Level:           parseLogLevel(level),
	})
	return nil
}

// DefaultFile is where interactive sessions log when no file is configured.
func DefaultFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(os.TempDir(), "jol.log")
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "jol", "jol.log")
}

func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// With returns a child logger tagged with a component prefix.
func With(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}

func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
