package migrate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/nvmd-labs/nvmd/internal/dirs"
	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
	"github.com/nvmd-labs/nvmd/internal/logging"
	"github.com/nvmd-labs/nvmd/internal/platform"
)

// fakeShims records calls and optionally fails one of them.
type fakeShims struct {
	calls          []string
	materializeErr error
	refreshErr     error
}

func (f *fakeShims) Materialize(string) error {
	f.calls = append(f.calls, "materialize")
	return f.materializeErr
}

func (f *fakeShims) Refresh(string) error {
	f.calls = append(f.calls, "refresh")
	return f.refreshErr
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	at     time.Time
}

func (n *recordingNotifier) EmitToWindow(event string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	n.at = time.Now()
	return true, nil
}

func quiet() logging.Logger {
	var buf bytes.Buffer
	return logging.Logger{Out: &buf, Err: &buf}
}

func writeMarker(t *testing.T, paths *dirs.Paths, content string) {
	t.Helper()
	if err := os.WriteFile(paths.Migration(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readMarker(t *testing.T, paths *dirs.Paths) string {
	t.Helper()
	data, err := os.ReadFile(paths.Migration())
	if err != nil {
		return ""
	}
	return string(data)
}

func TestRun_StepGating(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		want   []string
		to     int16
	}{
		{"fresh install", "", []string{"materialize", "refresh"}, 19},
		{"unparsable marker", "abc", []string{"materialize", "refresh"}, 19},
		{"older schema", "5", []string{"refresh"}, 19},
		{"current", "19", nil, 19},
		{"newer schema untouched", "25", nil, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := dirs.New(t.TempDir())
			if tt.marker != "" {
				writeMarker(t, paths, tt.marker)
			}
			shims := &fakeShims{}

			res, err := New(paths, shims, WithLogger(quiet())).Run(context.Background())
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if !slices.Equal(shims.calls, tt.want) {
				t.Errorf("calls = %v, want %v", shims.calls, tt.want)
			}
			if res.To != tt.to {
				t.Errorf("Result.To = %d, want %d", res.To, tt.to)
			}
		})
	}
}

func TestRun_WritesTarget(t *testing.T) {
	paths := dirs.New(t.TempDir())
	writeMarker(t, paths, "3")

	if _, err := New(paths, &fakeShims{}, WithLogger(quiet())).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := readMarker(t, paths); got != "19" {
		t.Errorf("marker = %q, want 19", got)
	}
}

func TestRun_NeverDecreases(t *testing.T) {
	paths := dirs.New(t.TempDir())
	writeMarker(t, paths, "42")

	if _, err := New(paths, &fakeShims{}, WithLogger(quiet())).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := readMarker(t, paths); got != "42" {
		t.Errorf("marker = %q, want 42", got)
	}
}

func TestRun_StepFailureKeepsMarker(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		shims  *fakeShims
		step   string
	}{
		{"bootstrap fails", "", &fakeShims{materializeErr: errors.New("no resources")}, "bootstrap"},
		{"normalize fails", "7", &fakeShims{refreshErr: errors.New("disk full")}, "normalize"},
		{"normalize fails after bootstrap", "", &fakeShims{refreshErr: errors.New("disk full")}, "normalize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := dirs.New(t.TempDir())
			if tt.marker != "" {
				writeMarker(t, paths, tt.marker)
			}

			_, err := New(paths, tt.shims, WithLogger(quiet())).Run(context.Background())
			if !errors.Is(err, nerrors.ErrMigrationStepFailed) {
				t.Fatalf("expected ErrMigrationStepFailed, got %v", err)
			}
			if !bytes.Contains([]byte(err.Error()), []byte(tt.step)) {
				t.Errorf("error %q does not name step %s", err, tt.step)
			}
			if got := readMarker(t, paths); got != tt.marker {
				t.Errorf("marker = %q, want %q", got, tt.marker)
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	paths := dirs.New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	shims := &fakeShims{}
	if _, err := New(paths, shims, WithLogger(quiet())).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(shims.calls) != 0 || readMarker(t, paths) != "" {
		t.Error("cancelled run must not touch anything")
	}
}

func TestRun_Idempotent(t *testing.T) {
	home := t.TempDir()
	res := filepath.Join(home, "resources")
	os.MkdirAll(res, 0755)
	os.WriteFile(filepath.Join(res, platform.DispatcherName), []byte("#!/bin/sh\n"), 0755)

	paths := dirs.New(home)
	m := New(paths, &platform.LinkShims{ResourcesDir: res}, WithLogger(quiet()))

	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := listBin(t, paths)

	// Force a full rerun over the existing bin directory.
	os.Remove(paths.Migration())
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := listBin(t, paths)

	if !slices.Equal(first, second) {
		t.Errorf("bin changed between runs: %v vs %v", first, second)
	}
	want := []string{"corepack", "node", "npm", "npx", "nvmd"}
	if !slices.Equal(second, want) {
		t.Errorf("bin = %v, want %v", second, want)
	}
	if readMarker(t, paths) != "19" {
		t.Error("marker not written")
	}
}

func TestStart_EmitsAfterDelay(t *testing.T) {
	paths := dirs.New(t.TempDir())
	n := &recordingNotifier{}
	delay := 50 * time.Millisecond

	m := New(paths, &fakeShims{materializeErr: errors.New("boom")}, WithLogger(quiet()), WithErrorDelay(delay))
	started := time.Now()
	done := m.Start(context.Background(), n)

	err := <-done
	if !errors.Is(err, nerrors.ErrMigrationStepFailed) {
		t.Fatalf("expected step failure, got %v", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.events) != 1 || n.events[0] != "app-migration-error" {
		t.Fatalf("events = %v", n.events)
	}
	if n.at.Sub(started) < delay {
		t.Errorf("event emitted after %v, want at least %v", n.at.Sub(started), delay)
	}
}

func TestStart_SuccessEmitsNothing(t *testing.T) {
	n := &recordingNotifier{}
	done := New(dirs.New(t.TempDir()), &fakeShims{}, WithLogger(quiet())).Start(context.Background(), n)

	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if _, open := <-done; open {
		t.Error("channel should be closed after the result")
	}
	if len(n.events) != 0 {
		t.Errorf("events = %v", n.events)
	}
}

func TestStatus(t *testing.T) {
	paths := dirs.New(t.TempDir())
	m := New(paths, &fakeShims{}, WithLogger(quiet()))

	st := m.Status()
	if st.Persisted != 0 || st.Target != CurrentVersion || !slices.Equal(st.Pending, []string{"bootstrap", "normalize"}) {
		t.Errorf("fresh status = %+v", st)
	}

	writeMarker(t, paths, "10")
	if st := m.Status(); !slices.Equal(st.Pending, []string{"normalize"}) {
		t.Errorf("pending = %v", st.Pending)
	}

	m.Run(context.Background())
	if st := m.Status(); !st.UpToDate() {
		t.Errorf("expected up to date, got %+v", st)
	}
}

func listBin(t *testing.T, paths *dirs.Paths) []string {
	t.Helper()
	entries, err := os.ReadDir(paths.Bin())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
