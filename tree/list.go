// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package tree

import (
	"iter"

	"github.com/gviegas/scenetree/sparse"
)

// List is a flat collection of T with stable indices.
// It is a Forest whose only root is a head record and
// whose other records are children of the head.
type List[T any] struct {
	f    Forest[T]
	head Index
}

// NewList creates an initialized list.
func NewList[T any]() *List[T] { return new(List[T]).Init() }

// Init initializes l.
// Any entries l had are discarded.
func (l *List[T]) Init() *List[T] {
	var z T
	l.f = Forest[T]{}
	l.head, _ = l.f.Insert(z, Nil)
	return l
}

// lazy initializes l if needed, so that the zero value
// is usable.
func (l *List[T]) lazy() {
	if l.f.Len() == 0 {
		l.Init()
	}
}

// Head returns the index of the head record.
func (l *List[T]) Head() Index {
	l.lazy()
	return l.head
}

// Insert appends value to l.
func (l *List[T]) Insert(value T) Index {
	l.lazy()
	i, err := l.f.Insert(value, l.head)
	if err != nil {
		// The head is never erased.
		panic(err)
	}
	return i
}

// Erase removes the entry at index i.
// It fails with ErrNotEntry if i is not an entry of l.
func (l *List[T]) Erase(i Index) error {
	if err := l.check("erase", i); err != nil {
		return err
	}
	return l.f.Erase(i)
}

func (l *List[T]) check(op string, i Index) error {
	l.lazy()
	r, err := l.f.v.Get(i)
	switch {
	case err != nil:
		return err
	case r.Parent != l.head:
		return &sparse.IndexError{Op: op, Index: i, Err: ErrNotEntry}
	}
	return nil
}

// Get returns a pointer to the entry at index i.
// The pointer is valid until the next call to Insert.
func (l *List[T]) Get(i Index) (*T, error) {
	if err := l.check("get", i); err != nil {
		return nil, err
	}
	return l.f.Get(i)
}

// At is like Get but panics on failure.
func (l *List[T]) At(i Index) *T {
	p, err := l.Get(i)
	if err != nil {
		panic(err)
	}
	return p
}

// Contains reports whether i is an entry of l.
func (l *List[T]) Contains(i Index) bool { return l.check("contains", i) == nil }

// Len returns the number of entries in l.
func (l *List[T]) Len() int {
	if n := l.f.Count(); n > 0 {
		return n - 1
	}
	return 0
}

// Begin returns an iterator positioned at the first entry.
func (l *List[T]) Begin() Iter[T] {
	l.lazy()
	return l.f.Begin(l.head)
}

// End returns an iterator positioned one past the last
// entry.
func (l *List[T]) End() Iter[T] {
	l.lazy()
	return l.f.End(l.head)
}

// All returns an iterator over the entries of l, in
// insertion order.
func (l *List[T]) All() iter.Seq2[Index, *T] {
	l.lazy()
	return l.f.Children(l.head)
}
