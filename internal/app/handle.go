package app

import (
	"sync"

	"github.com/nvmd-labs/nvmd/internal/logging"
)

// Events emitted to the main window.
const (
	EventMigrationError = "app-migration-error"
	EventProjectsUpdate = "call-projects-update"
)

// Window receives named events without payload.
type Window interface {
	Emit(event string) error
}

// Tray is the system tray menu.
type Tray interface {
	Refresh() error
}

// Handle gives access to the UI surfaces that may or may not exist.
// It is safe for concurrent use.
type Handle struct {
	mu     sync.RWMutex
	window Window
	tray   Tray
	log    logging.Logger
}

func NewHandle(log logging.Logger) *Handle {
	return &Handle{log: log.WithTarget("app")}
}

// AttachWindow sets the main window.
func (h *Handle) AttachWindow(w Window) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.window = w
}

// DetachWindow removes the main window, e.g. when it was closed.
func (h *Handle) DetachWindow() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.window = nil
}

// Window returns the main window, or nil.
func (h *Handle) Window() Window {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.window == nil {
		h.log.Debugf("main window not found")
	}
	return h.window
}

func (h *Handle) AttachTray(t Tray) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tray = t
}

// RefreshTray rebuilds the tray menu. Without a tray it does nothing.
func (h *Handle) RefreshTray() error {
	h.mu.RLock()
	t := h.tray
	h.mu.RUnlock()
	if t == nil {
		return nil
	}
	return t.Refresh()
}

// EmitToWindow sends event to the main window. It reports whether a window
// was attached.
func (h *Handle) EmitToWindow(event string) (bool, error) {
	w := h.Window()
	if w == nil {
		return false, nil
	}
	return true, w.Emit(event)
}
