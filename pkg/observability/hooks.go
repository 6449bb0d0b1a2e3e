// Package observability lets a host program observe exports and diagram
// renders without the CLI depending on a metrics backend.
//
// Register hooks once at startup:
//
//	observability.SetExportHooks(&myExportHooks{})
//	observability.SetRenderHooks(&myRenderHooks{})
//
// Commands then report through [Export] and [Render]. Both default to no-op
// implementations.
package observability

import (
	"context"
	"sync"
	"time"
)

// ExportHooks receives one event per export run.
type ExportHooks interface {
	// OnExport reports how many nodes were exported and how many of them
	// had no resolvable type.
	OnExport(ctx context.Context, nodes, nulls int, duration time.Duration, err error)
}

// RenderHooks receives diagram render events.
type RenderHooks interface {
	// OnRender reports one rendered diagram. cached is true when the bytes
	// came from the render cache.
	OnRender(ctx context.Context, format string, size int, cached bool, duration time.Duration, err error)
}

// NoopExportHooks discards export events.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExport(context.Context, int, int, time.Duration, error) {}

// NoopRenderHooks discards render events.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRender(context.Context, string, int, bool, time.Duration, error) {}

var (
	exportHooks ExportHooks = NoopExportHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetExportHooks registers export hooks. A nil h is ignored.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetRenderHooks registers render hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	renderHooks = NoopRenderHooks{}
}
