package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvmd-labs/nvmd/internal/dirs"
	"github.com/nvmd-labs/nvmd/internal/logging"
)

func quietLogger() (logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.Logger{Out: &buf, Err: &buf}, &buf
}

func TestTemplate(t *testing.T) {
	home := t.TempDir()
	s := Template(dirs.New(home))

	if *s.Closer != "minimize" || *s.Locale != "en" || *s.Theme != "system" {
		t.Errorf("unexpected template: %+v", s)
	}
	if *s.Mirror != DefaultMirror {
		t.Errorf("Mirror = %s", *s.Mirror)
	}
	if *s.Coder != DefaultCoder() {
		t.Errorf("Coder = %s", *s.Coder)
	}
	if *s.EnableSilentStart || *s.NoProxy {
		t.Error("boolean defaults should be false")
	}
	if want := filepath.Join(home, dirs.InstallDir); *s.Directory != want {
		t.Errorf("Directory = %s, want %s", *s.Directory, want)
	}
	if s.Proxy != nil {
		t.Error("Proxy should be unset")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	paths := dirs.New(t.TempDir())
	log, buf := quietLogger()

	s := Load(paths.Settings(), Template(paths), log)
	if *s.Theme != "system" || *s.Locale != "en" {
		t.Errorf("expected template values, got %+v", s)
	}
	if buf.Len() != 0 {
		t.Errorf("missing file should not log: %s", buf.String())
	}
}

func TestLoad_FileOverridesTemplate(t *testing.T) {
	paths := dirs.New(t.TempDir())
	os.WriteFile(paths.Settings(), []byte(`{
  "theme": "dark",
  "locale": "zh-CN",
  "enable_silent_start": true,
  "proxy": {"ip": "127.0.0.1", "port": "7890"}
}`), 0644)
	log, _ := quietLogger()

	s := Load(paths.Settings(), Template(paths), log)
	if *s.Theme != "dark" || *s.Locale != "zh-CN" {
		t.Errorf("file values not applied: theme=%s locale=%s", *s.Theme, *s.Locale)
	}
	if !*s.EnableSilentStart {
		t.Error("enable_silent_start should be true")
	}
	if s.Proxy == nil || s.Proxy.IP != "127.0.0.1" || s.Proxy.Port != "7890" {
		t.Errorf("Proxy = %+v", s.Proxy)
	}
	// Keys absent from the file keep their template values.
	if *s.Closer != "minimize" {
		t.Errorf("Closer = %s", *s.Closer)
	}
}

func TestLoad_IgnoresEnv(t *testing.T) {
	paths := dirs.New(t.TempDir())
	os.WriteFile(paths.Settings(), []byte(`{"theme": "dark"}`), 0644)
	t.Setenv("NVMD_THEME", "light")
	log, _ := quietLogger()

	s := Load(paths.Settings(), Template(paths), log)
	if *s.Theme != "dark" {
		t.Errorf("Theme = %s, want the file value dark", *s.Theme)
	}
}

func TestApplyEnv(t *testing.T) {
	paths := dirs.New(t.TempDir())
	os.WriteFile(paths.Settings(), []byte(`{"theme": "dark"}`), 0644)
	t.Setenv("NVMD_THEME", "light")
	t.Setenv("NVMD_NO_PROXY", "true")
	t.Setenv("NVMD_PROXY_IP", "10.0.0.1")
	log, _ := quietLogger()

	base := Load(paths.Settings(), Template(paths), log)
	view := ApplyEnv(base, log)

	if *view.Theme != "light" {
		t.Errorf("Theme = %s, want light", *view.Theme)
	}
	if !*view.NoProxy {
		t.Error("NoProxy should be true from env")
	}
	if view.Proxy == nil || view.Proxy.IP != "10.0.0.1" {
		t.Errorf("Proxy = %+v", view.Proxy)
	}
	if *view.Locale != "en" {
		t.Errorf("Locale = %s, want template value", *view.Locale)
	}
	// The base value is untouched.
	if *base.Theme != "dark" || *base.NoProxy || base.Proxy != nil {
		t.Errorf("ApplyEnv modified its input: %+v", base)
	}
}

func TestLoad_CorruptedFallsBack(t *testing.T) {
	paths := dirs.New(t.TempDir())
	os.WriteFile(paths.Settings(), []byte("{not json"), 0644)
	log, buf := quietLogger()

	s := Load(paths.Settings(), Template(paths), log)
	if *s.Theme != "system" {
		t.Errorf("expected template fallback, got theme=%s", *s.Theme)
	}
	if !strings.Contains(buf.String(), "[error]") {
		t.Errorf("expected error log, got %q", buf.String())
	}
}

func TestPatch(t *testing.T) {
	base := Template(dirs.New(t.TempDir()))
	base.Patch(Settings{Theme: ptr("dark"), Proxy: &Proxy{IP: "10.0.0.1", Port: "8080"}})

	if *base.Theme != "dark" {
		t.Errorf("Theme = %s", *base.Theme)
	}
	if base.Proxy.IP != "10.0.0.1" {
		t.Errorf("Proxy = %+v", base.Proxy)
	}
	if *base.Locale != "en" {
		t.Error("unset patch fields must not clear values")
	}
}

func TestClone(t *testing.T) {
	s := Settings{Theme: ptr("dark"), Proxy: &Proxy{IP: "a"}}
	c := s.Clone()
	*c.Theme = "light"
	c.Proxy.IP = "b"
	if *s.Theme != "dark" || s.Proxy.IP != "a" {
		t.Error("Clone shares pointers with the original")
	}
}
