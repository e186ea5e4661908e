// Package logging provides the core's single structured logger. Every
// "log and continue" path named in the error-handling design (poller
// fetch failures, subscriber callback panics) logs through here rather
// than through fmt.Println, so a host embedding the core gets one
// consistent, structured stream regardless of which subsystem is
// talking.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.SugaredLogger
)

func init() {
	base, err := zap.NewProduction()
	if err != nil {
		base = zap.NewNop()
	}
	logger = base.Sugar()
}

// L returns the process-wide sugared logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the process-wide logger, e.g. so a host embedding
// the core can route its log stream through its own zap configuration
// or, in tests, through a development/observer core.
func SetLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Component returns a child logger tagged with a "component" field, the
// convention every subsystem uses instead of ad hoc field names.
func Component(name string) *zap.SugaredLogger {
	return L().With("component", name)
}
