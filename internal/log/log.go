// Package log wraps zerolog the way gnark's logger package does:
// a package-level default that callers widen with .With() and that
// tests can swap out with Set.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	current = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// Logger returns the current package-level logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the package-level logger. Tests use this to capture
// output into a buffer instead of stderr.
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// SetOutput redirects the package-level logger to w, preserving level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	current = current.Output(w)
}
