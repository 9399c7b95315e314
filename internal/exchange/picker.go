package exchange

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
)

// FileFilter restricts which files a picker offers.
type FileFilter struct {
	Name       string
	Extensions []string
}

// Matches reports whether path has one of the filter's extensions.
func (f FileFilter) Matches(path string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return slices.Contains(f.Extensions, ext)
}

// FileRef is the picker's answer: a local path or a URL.
type FileRef struct {
	Path string
	URL  *url.URL
}

// Picker asks the user for a file. ok is false when the user cancelled.
type Picker interface {
	PickFile(ctx context.Context, filter FileFilter) (ref FileRef, ok bool, err error)
}

// PromptPicker reads a file path from a terminal. An empty answer cancels.
//
// A read still pending when ctx ends stays blocked on In until a line
// arrives; the next PickFile takes that line instead of starting another
// read. A PromptPicker is not safe for concurrent use.
type PromptPicker struct {
	In  io.Reader
	Out io.Writer

	reader  *bufio.Reader
	pending chan promptAnswer
}

type promptAnswer struct {
	line string
	err  error
}

func (p *PromptPicker) PickFile(ctx context.Context, filter FileFilter) (FileRef, bool, error) {
	fmt.Fprintf(p.Out, "%s (*.%s, empty to cancel): ", filter.Name, strings.Join(filter.Extensions, ", *."))

	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	if p.pending == nil {
		ch := make(chan promptAnswer, 1)
		r := p.reader
		go func() {
			line, err := r.ReadString('\n')
			ch <- promptAnswer{line, err}
		}()
		p.pending = ch
	}

	var a promptAnswer
	select {
	case <-ctx.Done():
		return FileRef{}, false, ctx.Err()
	case a = <-p.pending:
		p.pending = nil
	}
	if a.err != nil && a.err != io.EOF {
		return FileRef{}, false, fmt.Errorf("reading answer: %w", a.err)
	}

	input := strings.TrimSpace(a.line)
	if input == "" {
		return FileRef{}, false, nil
	}
	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return FileRef{}, false, fmt.Errorf("%q: %w", input, nerrors.ErrImportSourceInvalid)
		}
		return FileRef{URL: u}, true, nil
	}
	if !filter.Matches(input) {
		return FileRef{}, false, fmt.Errorf("%s is not a %s file: %w", input, filter.Name, nerrors.ErrImportSourceInvalid)
	}
	return FileRef{Path: input}, true, nil
}

// StaticPicker always answers with Ref. A zero Ref means the user cancelled.
type StaticPicker struct {
	Ref FileRef
}

func (p StaticPicker) PickFile(context.Context, FileFilter) (FileRef, bool, error) {
	if p.Ref.Path == "" && p.Ref.URL == nil {
		return FileRef{}, false, nil
	}
	return p.Ref, true, nil
}
