package app

import (
	"io"
	"sync"

	"github.com/fatih/color"
)

// ConsoleWindow prints events to a terminal. The CLI attaches it in place of
// the desktop window so events are visible.
type ConsoleWindow struct {
	mu  sync.Mutex
	Out io.Writer
}

func (w *ConsoleWindow) Emit(event string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := io.WriteString(w.Out, color.MagentaString("event")+" "+event+"\n")
	return err
}

// RecordingWindow keeps every emitted event in order.
type RecordingWindow struct {
	mu     sync.Mutex
	events []string
}

func (w *RecordingWindow) Emit(event string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, event)
	return nil
}

// Events returns a copy of the events emitted so far.
func (w *RecordingWindow) Events() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.events...)
}
