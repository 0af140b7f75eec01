package storage

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
)

// badgerLogger adapts logr to badger.Logger.
// Badger is chatty at info level, so info and debug go to V(1) and V(2).
type badgerLogger struct {
	log logr.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(nil, msg(format, args))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Info(msg(format, args), "level", "warning")
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.V(1).Info(msg(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.V(2).Info(msg(format, args))
}

func msg(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}
