package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// DefaultTarget is used when a Logger has no target set.
const DefaultTarget = "app"

var writeMu sync.Mutex

type Logger struct {
	Verbose bool
	Debug   bool
	Target  string
	Out     io.Writer
	Err     io.Writer
}

// WithTarget returns a copy of the logger tagged with target.
func (l Logger) WithTarget(target string) Logger {
	l.Target = target
	return l
}

func (l Logger) Infof(msg string, args ...any) {
	if l.Verbose || l.Debug {
		l.write(l.stdout(), color.GreenString("[info] "), msg, args...)
	}
}

func (l Logger) Debugf(msg string, args ...any) {
	if l.Debug {
		l.write(l.stdout(), color.CyanString("[debug] "), msg, args...)
	}
}

func (l Logger) Warnf(msg string, args ...any) {
	l.write(l.stderr(), color.YellowString("[warn] "), msg, args...)
}

func (l Logger) Errorf(msg string, args ...any) {
	l.write(l.stderr(), color.RedString("[error] "), msg, args...)
}

func (l Logger) write(w io.Writer, prefix, msg string, args ...any) {
	target := l.Target
	if target == "" {
		target = DefaultTarget
	}
	line := prefix + target + ": " + fmt.Sprintf(msg, args...) + "\n"

	// The migration goroutine and the command share the same writers.
	writeMu.Lock()
	defer writeMu.Unlock()
	io.WriteString(w, line)
}

func (l Logger) stdout() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return os.Stdout
}

func (l Logger) stderr() io.Writer {
	if l.Err != nil {
		return l.Err
	}
	return os.Stderr
}
