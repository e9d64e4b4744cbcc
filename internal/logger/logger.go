package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/neptune-T/OS-Simulation-Platform/config"
)

var (
	Log *logrus.Logger

	mu sync.Mutex
	// file is the log file opened by the last Initialize, nil for stdout/stderr.
	file io.Closer
)

// Initialize replaces the global logger with one built from cfg. It is safe to call again
// on a config reload; the log file of the previous call is closed. Unusable settings fall
// back to info/json/stdout with a warning.
func Initialize(cfg *config.LoggingConfig) {
	l := logrus.New()

	out, closer, outErr := openOutput(cfg.Output)
	l.SetOutput(out)

	f, knownFormat := formatter(cfg.Format)
	l.SetFormatter(f)

	level, levelErr := logrus.ParseLevel(cfg.Level)
	if levelErr != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	mu.Lock()
	previous := file
	Log, file = l, closer
	mu.Unlock()
	if previous != nil {
		_ = previous.Close()
	}

	if outErr != nil {
		l.WithError(outErr).Warnf("cannot open log file %q, logging to stdout", cfg.Output)
	}
	if !knownFormat {
		l.Warnf("unknown log format %q, using json", cfg.Format)
	}
	if levelErr != nil {
		l.Warnf("unknown log level %q, using info", cfg.Level)
	}
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return os.Stdout, nil, err
	}
	return f, f, nil
}

func formatter(format string) (logrus.Formatter, bool) {
	switch format {
	case "json":
		return &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"}, true
	case "text":
		return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}, true
	}
	return &logrus.JSONFormatter{}, false
}

// Close releases the log file, if any, and sends further output to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	if Log != nil {
		Log.SetOutput(os.Stderr)
	}
	err := file.Close()
	file = nil
	return err
}

// GetLogger returns the global logger, creating an info/json one on first use.
func GetLogger() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if Log == nil {
		Log = logrus.New()
		Log.SetLevel(logrus.InfoLevel)
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
	return Log
}
