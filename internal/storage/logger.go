package storage

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"
)

// Verbosity levels badger messages are logged at. Errors are always logged.
const (
	warningLevel = 0
	infoLevel    = 1
	debugLevel   = 2
)

// badgerLogger routes badger's printf-style logging to a logr.Logger.
type badgerLogger struct {
	log logr.Logger
}

// NewBadgerLogger adapts l to badger's Logger interface.
func NewBadgerLogger(l logr.Logger) badger.Logger {
	return &badgerLogger{log: l.WithName("badger")}
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.log.Error(nil, message(format, args...))
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.log.V(warningLevel).Info(message(format, args...), "level", "warning")
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.log.V(infoLevel).Info(message(format, args...))
}

func (b *badgerLogger) Debugf(format string, args ...interface{}) {
	b.log.V(debugLevel).Info(message(format, args...))
}

// message formats a badger log line; badger terminates most with a newline.
func message(format string, args ...interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
