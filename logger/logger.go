// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. It is usable before Init with logrus defaults
// at warn level, so packages and tests never see a nil logger.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Init configures the shared logger. It is called once from main.
// LOG_LEVEL and LOG_FORMAT, when non-empty, override the given values.
func Init(level, format string) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		format = v
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Game text owns stdout.
	Log.SetOutput(os.Stderr)
}

// SetOutput redirects the shared logger, mostly for tests.
func SetOutput(w io.Writer) {
	Log.SetOutput(w)
}

// Redirect sends log output to w until the returned function is called,
// which puts the previous writer back.
func Redirect(w io.Writer) (restore func()) {
	prev := Log.Out
	Log.SetOutput(w)
	return func() { Log.SetOutput(prev) }
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
