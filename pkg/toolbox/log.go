package toolbox

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(newDefaultLogger())
}

// newDefaultLogger writes human-readable Info-level lines to stdout.
// Trace output from the generators is logged at Debug and stays hidden
// until a more verbose logger is installed with SetLogger.
func newDefaultLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.OutputPaths = []string{"stdout"}
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Logger returns the logger used by Log, LogOnce and the generator traces.
func Logger() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the package logger. A nil logger silences output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Log is a shortcut for printing a message with one value.
//
//	toolbox.Log("The value is", v)
func Log(msg string, val any) {
	Logger().Info(msg, zap.Any("value", val))
}

// OnceLogger logs only on its first call. The latch is never reset, so a
// OnceLogger fires at most once for its whole lifetime.
type OnceLogger struct {
	once sync.Once
}

// Log writes msg with both values if this is the first call and reports
// whether anything was written.
func (o *OnceLogger) Log(msg string, val1, val2 any) bool {
	fired := false
	o.once.Do(func() {
		Logger().Info(msg, zap.Any("value1", val1), zap.Any("value2", val2))
		fired = true
	})
	return fired
}

var processOnce OnceLogger

// LogOnce logs through a process-wide OnceLogger: only the first call made
// by any caller during the life of the process produces output.
func LogOnce(msg string, val1, val2 any) bool {
	return processOnce.Log(msg, val1, val2)
}
