package store

import (
	"errors"
	"path/filepath"
	"testing"

	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
)

type settings struct {
	Theme  string `json:"theme"`
	Locale string `json:"locale"`
}

func TestValue_Commit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setting.json")
	v := NewValue(path, settings{Theme: "system", Locale: "en"})

	d := v.Draft()
	d.Value.Theme = "dark"
	if got := v.Latest().Theme; got != "system" {
		t.Errorf("draft leaked before commit: %s", got)
	}

	if err := v.Commit(d); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if got := v.Latest().Theme; got != "dark" {
		t.Errorf("Theme = %s, want dark", got)
	}

	var onDisk settings
	if ok, err := ReadJSON(path, &onDisk); err != nil || !ok {
		t.Fatalf("ReadJSON: ok=%v err=%v", ok, err)
	}
	if onDisk.Theme != "dark" || onDisk.Locale != "en" {
		t.Errorf("persisted %+v", onDisk)
	}
}

func TestValue_StaleDraft(t *testing.T) {
	v := NewValue("", settings{})
	a, b := v.Draft(), v.Draft()
	if err := v.Commit(a); err != nil {
		t.Fatal(err)
	}
	if err := v.Commit(b); !errors.Is(err, nerrors.ErrStaleDraft) {
		t.Errorf("expected ErrStaleDraft, got %v", err)
	}
}
