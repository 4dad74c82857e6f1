package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/quadrifoglio/lxc-go/internal/log"
)

// NewLogrus returns a new log.Logger for a logrus implementation.
func NewLogrus(l *logrus.Entry) log.Logger {
	return logger{entry: l}
}

type logger struct {
	entry *logrus.Entry
}

func (l logger) Infof(format string, args ...any)    { l.entry.Infof(format, args...) }
func (l logger) Warningf(format string, args ...any) { l.entry.Warningf(format, args...) }
func (l logger) Errorf(format string, args ...any)   { l.entry.Errorf(format, args...) }
func (l logger) Debugf(format string, args ...any)   { l.entry.Debugf(format, args...) }

func (l logger) WithValues(kv map[string]any) log.Logger {
	newLogger := l.entry.WithFields(kv)
	return logger{entry: newLogger}
}
