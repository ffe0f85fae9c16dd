// Package logrus adapts a *logrus.Entry to dictcache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/dictcache"
)

var _ dictcache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f dictcache.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f dictcache.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f dictcache.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f dictcache.Fields) { l.with(f).Error(msg) }

// with maps an "err" field onto logrus' error key.
func (l LogrusLogger) with(f dictcache.Fields) *logrus.Entry {
	e := l.E
	if err, ok := f["err"].(error); ok {
		e = e.WithError(err)
	}
	fields := make(logrus.Fields, len(f))
	for k, v := range f {
		if k == "err" {
			if _, ok := v.(error); ok {
				continue
			}
		}
		fields[k] = v
	}
	return e.WithFields(fields)
}
