// Package observability provides hooks for logging and metrics.
//
// Library packages never log. They emit events through the hooks registered
// here, and the application decides what to do with them. The defaults are
// no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlotHooks(&myPlotHooks{})
//	    observability.SetIOHooks(&myIOHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Plot().OnPlotStart("heatmap", n)
//	// ... draw ...
//	observability.Plot().OnPlotComplete("heatmap", time.Since(start), err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Plot Hooks
// =============================================================================

// PlotHooks receives events from the plot entry points and figure encoding.
type PlotHooks interface {
	// Plot events. size is the number of nodes or samples plotted.
	OnPlotStart(kind string, size int)
	OnPlotComplete(kind string, duration time.Duration, err error)

	// Encode events
	OnEncode(format string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// IO Hooks
// =============================================================================

// IOHooks receives events from reading inputs and writing artifacts.
type IOHooks interface {
	// OnRead records an input file being decoded into kind
	// ("matrix", "labels", "table", "model").
	OnRead(path, kind string, err error)

	// OnWrite records an artifact written to disk.
	OnWrite(path string, bytes int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlotHooks is a no-op implementation of PlotHooks.
type NoopPlotHooks struct{}

func (NoopPlotHooks) OnPlotStart(string, int)                     {}
func (NoopPlotHooks) OnPlotComplete(string, time.Duration, error) {}
func (NoopPlotHooks) OnEncode(string, int, time.Duration, error)  {}

// NoopIOHooks is a no-op implementation of IOHooks.
type NoopIOHooks struct{}

func (NoopIOHooks) OnRead(string, string, error) {}
func (NoopIOHooks) OnWrite(string, int, error)   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	plotHooks PlotHooks = NoopPlotHooks{}
	ioHooks   IOHooks   = NoopIOHooks{}
	hooksMu   sync.RWMutex
)

// SetPlotHooks registers custom plot hooks.
// This should be called once at application startup before any plotting.
func SetPlotHooks(h PlotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		plotHooks = h
	}
}

// SetIOHooks registers custom IO hooks.
func SetIOHooks(h IOHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		ioHooks = h
	}
}

// Plot returns the registered plot hooks.
func Plot() PlotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return plotHooks
}

// IO returns the registered IO hooks.
func IO() IOHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return ioHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	plotHooks = NoopPlotHooks{}
	ioHooks = NoopIOHooks{}
}
