// Package refs hands out synthetic object references for hosts whose native
// API has no handle for a concept the session needs (clients, ports).
package refs

import "github.com/leandrodaf/midicc/sdk/contracts"

// Table maps synthetic references to values. References start at base and
// are never reused within a Table. The zero reference is never issued.
type Table[T any] struct {
	base  contracts.ObjectRef
	next  contracts.ObjectRef
	items map[contracts.ObjectRef]T
}

// NewTable returns an empty table issuing references from base upwards.
func NewTable[T any](base contracts.ObjectRef) *Table[T] {
	if base == 0 {
		base = 1
	}
	return &Table[T]{base: base, next: base, items: make(map[contracts.ObjectRef]T)}
}

// Add stores v and returns its reference.
func (t *Table[T]) Add(v T) contracts.ObjectRef {
	ref := t.next
	t.next++
	t.items[ref] = v
	return ref
}

// Get returns the value stored under ref.
func (t *Table[T]) Get(ref contracts.ObjectRef) (T, bool) {
	v, ok := t.items[ref]
	return v, ok
}

// Set replaces the value stored under an existing ref.
func (t *Table[T]) Set(ref contracts.ObjectRef, v T) bool {
	if _, ok := t.items[ref]; !ok {
		return false
	}
	t.items[ref] = v
	return true
}

// Remove deletes ref and returns the value it held.
func (t *Table[T]) Remove(ref contracts.ObjectRef) (T, bool) {
	v, ok := t.items[ref]
	if ok {
		delete(t.items, ref)
	}
	return v, ok
}

// Each calls fn for every live reference.
func (t *Table[T]) Each(fn func(contracts.ObjectRef, T)) {
	for ref, v := range t.items {
		fn(ref, v)
	}
}

// Len returns the number of live references.
func (t *Table[T]) Len() int { return len(t.items) }
