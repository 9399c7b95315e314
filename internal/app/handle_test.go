package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nvmd-labs/nvmd/internal/logging"
)

type countingTray struct {
	calls int
	err   error
}

func (t *countingTray) Refresh() error {
	t.calls++
	return t.err
}

func TestHandle_NoWindow(t *testing.T) {
	h := NewHandle(logging.Logger{})
	emitted, err := h.EmitToWindow(EventProjectsUpdate)
	if emitted || err != nil {
		t.Errorf("EmitToWindow without window: emitted=%v err=%v", emitted, err)
	}
	if err := h.RefreshTray(); err != nil {
		t.Errorf("RefreshTray without tray: %v", err)
	}
}

func TestHandle_Emit(t *testing.T) {
	h := NewHandle(logging.Logger{})
	w := &RecordingWindow{}
	h.AttachWindow(w)

	if emitted, err := h.EmitToWindow(EventMigrationError); !emitted || err != nil {
		t.Fatalf("emitted=%v err=%v", emitted, err)
	}
	h.DetachWindow()
	if emitted, _ := h.EmitToWindow(EventProjectsUpdate); emitted {
		t.Error("detached window still received events")
	}

	got := w.Events()
	if len(got) != 1 || got[0] != EventMigrationError {
		t.Errorf("events = %v", got)
	}
}

func TestHandle_Tray(t *testing.T) {
	h := NewHandle(logging.Logger{})
	tray := &countingTray{err: errors.New("menu gone")}
	h.AttachTray(tray)

	if err := h.RefreshTray(); err == nil {
		t.Error("expected tray error")
	}
	if tray.calls != 1 {
		t.Errorf("calls = %d", tray.calls)
	}
}

func TestConsoleWindow(t *testing.T) {
	var buf bytes.Buffer
	w := &ConsoleWindow{Out: &buf}
	if err := w.Emit(EventProjectsUpdate); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), EventProjectsUpdate) {
		t.Errorf("output = %q", buf.String())
	}
}
