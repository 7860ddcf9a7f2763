package dxfpath

import (
	"sync/atomic"

	"github.com/go-logr/logr"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called while other goroutines convert paths.
var loggerPtr atomic.Pointer[logr.Logger]

func init() {
	l := logr.Discard()
	loggerPtr.Store(&l)
}

// SetLogger configures the logger for dxfpath and its sub-packages.
// By default nothing is logged.
//
// Verbosity levels used:
//   - V(1): paths dropped from nesting analysis because their orientation is
//     indeterminate
//   - V(2): per-batch summaries of exporters and bridges
//
// A zero logr.Logger restores the silent default.
func SetLogger(l logr.Logger) {
	if l.GetSink() == nil {
		l = logr.Discard()
	}
	loggerPtr.Store(&l)
}

// Logger returns the current logger. Sub-packages call this to share the
// same configuration.
func Logger() logr.Logger {
	return *loggerPtr.Load()
}
