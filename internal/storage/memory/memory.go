// Package memory provides an in-process ordered table backed by a B-tree.
// It mirrors the pebble table surface and lets tests inject storage faults.
package memory

import (
	"bytes"
	"errors"
	"sync"

	"github.com/google/btree"
)

// ErrInjected is the default error returned by armed fault hooks.
var ErrInjected = errors.New("memory: injected fault")

type item struct {
	key   []byte
	value []byte
}

func lessItem(a, b item) bool { return bytes.Compare(a.key, b.key) < 0 }

// Table is an ordered byte-key table. The zero value is not usable; call New.
type Table struct {
	mu    sync.RWMutex
	tree  *btree.BTreeG[item]
	hooks Hooks

	flushes int
}

// Hooks intercept table operations. A hook returning a non-nil error makes
// the operation fail without side effects.
type Hooks struct {
	Get    func(key []byte) error
	Insert func(key, value []byte) error
	Ascend func() error
	Flush  func() error
}

// New returns an empty table.
func New() *Table {
	return &Table{tree: btree.NewG[item](16, lessItem)}
}

// SetHooks replaces the fault hooks.
func (t *Table) SetHooks(h Hooks) {
	t.mu.Lock()
	t.hooks = h
	t.mu.Unlock()
}

// Get returns a copy of the value under key and whether it was present.
func (t *Table) Get(key []byte) ([]byte, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.hooks.Get != nil {
		if err := t.hooks.Get(key); err != nil {
			return nil, false, err
		}
	}
	it, ok := t.tree.Get(item{key: key})
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(it.value), true, nil
}

// Insert stores value under key and returns the previous value, if any.
func (t *Table) Insert(key, value []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hooks.Insert != nil {
		if err := t.hooks.Insert(key, value); err != nil {
			return nil, err
		}
	}
	prev, ok := t.tree.ReplaceOrInsert(item{key: bytes.Clone(key), value: bytes.Clone(value)})
	if !ok {
		return nil, nil
	}
	return prev.value, nil
}

// Ascend visits keys in ascending byte order until fn returns false.
func (t *Table) Ascend(fn func(key, value []byte) bool) error {
	t.mu.RLock()
	if t.hooks.Ascend != nil {
		if err := t.hooks.Ascend(); err != nil {
			t.mu.RUnlock()
			return err
		}
	}
	items := make([]item, 0, t.tree.Len())
	t.tree.Ascend(func(it item) bool {
		items = append(items, it)
		return true
	})
	t.mu.RUnlock()

	for _, it := range items {
		if !fn(bytes.Clone(it.key), bytes.Clone(it.value)) {
			break
		}
	}
	return nil
}

// Flush counts a successful flush; the table has nothing to persist.
func (t *Table) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.hooks.Flush != nil {
		if err := t.hooks.Flush(); err != nil {
			return err
		}
	}
	t.flushes++
	return nil
}

// Len returns the number of stored keys.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tree.Len()
}

// Flushes returns how many successful Flush calls were made.
func (t *Table) Flushes() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.flushes
}
