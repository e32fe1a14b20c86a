// Package logging builds the process logger and keeps secrets out of it.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logrus logger writing to stderr with the redaction hook installed.
func New(verbose bool, secrets ...string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	logger.AddHook(&RedactHook{Redactor: NewRedactor(secrets...)})
	return logger
}

// Discard returns a logger that drops everything. Used by tests and as a nil default.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return Discard()
	}
	return l
}

// RedactHook rewrites the message and string-like fields of every entry.
type RedactHook struct {
	Redactor *Redactor
}

// Levels implements logrus.Hook.
func (h *RedactHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook.
func (h *RedactHook) Fire(entry *logrus.Entry) error {
	entry.Message = h.Redactor.Redact(entry.Message)
	for k, v := range entry.Data {
		switch val := v.(type) {
		case string:
			entry.Data[k] = h.Redactor.Redact(val)
		case error:
			entry.Data[k] = h.Redactor.Redact(val.Error())
		}
	}
	return nil
}
