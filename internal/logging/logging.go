// Package logging holds the package-wide logr.Logger used by the variant
// runtime.
package logging

import (
	"log"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

var (
	mu     sync.RWMutex
	logger = stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("variant")
)

// Logger returns the current package logger.
func Logger() logr.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger replaces the package logger. A zero logr.Logger discards output.
func SetLogger(l logr.Logger) {
	if l.GetSink() == nil {
		l = logr.Discard()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// SetVerbosity adjusts how much the default standard-library bridge prints.
// It returns the previous verbosity.
func SetVerbosity(v int) int {
	return stdr.SetVerbosity(v)
}
