package store

import (
	"fmt"
	"sync"

	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
)

// List is a JSON-array file holding an ordered list of T.
type List[T any] struct {
	mu    sync.RWMutex
	path  string
	items []T
	rev   uint64
}

// NewList returns a List persisted at path holding items. An empty path
// keeps the list in memory only.
func NewList[T any](path string, items []T) *List[T] {
	return &List[T]{path: path, items: clone(items)}
}

// OpenList loads the list stored at path. A missing file yields an empty list.
func OpenList[T any](path string) (*List[T], error) {
	var items []T
	if _, err := ReadJSON(path, &items); err != nil {
		return nil, err
	}
	return NewList(path, items), nil
}

// Path returns the file backing the list.
func (l *List[T]) Path() string { return l.path }

// Latest returns a copy of the committed items.
func (l *List[T]) Latest() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return clone(l.items)
}

// Draft stages a mutation starting from the committed items.
func (l *List[T]) Draft() *ListDraft[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &ListDraft[T]{owner: l, base: l.rev, items: clone(l.items)}
}

// Commit persists the draft and makes it the committed list. On failure
// nothing changes.
func (l *List[T]) Commit(d *ListDraft[T]) error {
	if d == nil || d.owner != l {
		return fmt.Errorf("commit: draft does not belong to %s", l.path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if d.base != l.rev {
		return fmt.Errorf("commit %s: %w", l.path, nerrors.ErrStaleDraft)
	}

	items := d.items
	if items == nil {
		items = []T{}
	}
	if l.path != "" {
		if err := WriteJSON(l.path, items); err != nil {
			return err
		}
	}

	l.items = clone(items)
	l.rev++
	return nil
}

// ListDraft is a staged, uncommitted copy of a List.
type ListDraft[T any] struct {
	owner *List[T]
	base  uint64
	items []T
}

// Items returns the staged items.
func (d *ListDraft[T]) Items() []T { return clone(d.items) }

// Replace stages items as the full new list.
func (d *ListDraft[T]) Replace(items []T) { d.items = clone(items) }

// Append stages items at the end of the list.
func (d *ListDraft[T]) Append(items ...T) { d.items = append(d.items, items...) }

func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
