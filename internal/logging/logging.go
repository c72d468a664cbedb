package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the process logger on stdout.
func SetupLogging(level string) *logrus.Logger {
	return NewLogger(os.Stdout, level)
}

// NewLogger builds the JSON logger used by the server. Unknown levels fall
// back to info.
func NewLogger(out io.Writer, level string) *logrus.Logger {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}

	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   out,
		Hooks: make(logrus.LevelHooks),
		Level: parsed,
	}

	return &logger
}
