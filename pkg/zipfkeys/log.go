package zipfkeys

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger replaces the logger used by every package of the engine.
// The default discards everything so embedding hosts stay quiet.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Logger returns the engine logger.
func Logger() *zap.Logger {
	return logger.Load()
}
