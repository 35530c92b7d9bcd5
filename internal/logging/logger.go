package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type appNameHook struct {
	appName string
}

// Levels implements logrus.Hook.
func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = h.appName
	return nil
}

// New builds the application logger. Unknown levels fall back to info.
func New(appName, level, format string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	if out == nil {
		out = os.Stdout
	}
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		if level != "" {
			logger.Warnf("invalid log level %q, defaulting to info", level)
		}
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if appName != "" {
		logger.AddHook(&appNameHook{appName: appName})
	}
	return logger
}

// Discard returns a logger that writes nowhere; handy in tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
