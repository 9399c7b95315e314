package store

import (
	"fmt"
	"sync"

	nerrors "github.com/nvmd-labs/nvmd/internal/errors"
)

// Value is a JSON-object file holding a single T. Latest returns a shallow
// copy; callers replace pointer fields instead of mutating through them.
type Value[T any] struct {
	mu    sync.RWMutex
	path  string
	value T
	rev   uint64
}

// NewValue returns a Value persisted at path. An empty path keeps it in memory only.
func NewValue[T any](path string, value T) *Value[T] {
	return &Value[T]{path: path, value: value}
}

// Latest returns the committed value.
func (v *Value[T]) Latest() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Draft stages a mutation starting from the committed value.
func (v *Value[T]) Draft() *ValueDraft[T] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return &ValueDraft[T]{owner: v, base: v.rev, Value: v.value}
}

// Commit persists the draft and makes it the committed value.
func (v *Value[T]) Commit(d *ValueDraft[T]) error {
	if d == nil || d.owner != v {
		return fmt.Errorf("commit: draft does not belong to %s", v.path)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if d.base != v.rev {
		return fmt.Errorf("commit %s: %w", v.path, nerrors.ErrStaleDraft)
	}
	if v.path != "" {
		if err := WriteJSON(v.path, d.Value); err != nil {
			return err
		}
	}

	v.value = d.Value
	v.rev++
	return nil
}

// ValueDraft is a staged, uncommitted copy of a Value. Mutate Value directly.
type ValueDraft[T any] struct {
	owner *Value[T]
	base  uint64
	Value T
}
