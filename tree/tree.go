// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package tree implements forests of records stored in
// a sparse vector.
//
// Records are addressed by sparse.Index values that stay
// valid until the record itself is erased. Each record
// knows its parent, its first and last children and its
// siblings; children are kept in insertion order.
package tree

import (
	"errors"
	"iter"

	"github.com/gviegas/scenetree/sparse"
)

// Index is an alias for sparse.Index.
type Index = sparse.Index

// Nil is an alias for sparse.Nil.
const Nil = sparse.Nil

var (
	// ErrRoot means that an operation is not valid
	// for a root record.
	ErrRoot = errors.New("tree: record is a root")

	// ErrNotEntry means that an index does not identify
	// an entry of a List.
	ErrNotEntry = errors.New("tree: record is not a list entry")
)

// Link is the linkage of a record.
// Fields are Nil when there is no such relation.
type Link struct {
	Parent Index
	First  Index
	Last   Index
	Next   Index
	Prev   Index
}

// nilLink is the linkage of a detached record.
var nilLink = Link{Nil, Nil, Nil, Nil, Nil}

// record is what a Forest stores.
type record[T any] struct {
	Link
	value T
}

// Forest is a collection of trees of T.
// The zero value for Forest is an empty forest ready
// to use.
//
// A Forest is not safe for concurrent use.
type Forest[T any] struct {
	v sparse.Vector[record[T]]
}

// Insert inserts value as the last child of parent.
// If parent is Nil, the new record is a root.
// It fails if parent is neither Nil nor a valid index,
// in which case f is not modified.
func (f *Forest[T]) Insert(value T, parent Index) (Index, error) {
	if parent != Nil {
		if _, err := f.v.Get(parent); err != nil {
			return Nil, err
		}
	}
	i := f.v.Insert(record[T]{nilLink, value})
	f.link(i, parent)
	f.v.SetUsed(i)
	return i, nil
}

// link makes i the last child of parent.
// i must be detached. It does nothing if parent is Nil.
func (f *Forest[T]) link(i, parent Index) {
	if parent == Nil {
		return
	}
	r := f.v.Slot(i)
	p := f.v.Slot(parent)
	r.Parent = parent
	r.Prev = p.Last
	r.Next = Nil
	if p.Last != Nil {
		f.v.Slot(p.Last).Next = i
	} else {
		p.First = i
	}
	p.Last = i
}

// unlink removes i from the child chain of its parent.
func (f *Forest[T]) unlink(i Index) {
	r := f.v.Slot(i)
	if r.Parent == Nil {
		return
	}
	p := f.v.Slot(r.Parent)
	if r.Prev != Nil {
		f.v.Slot(r.Prev).Next = r.Next
	} else {
		p.First = r.Next
	}
	if r.Next != Nil {
		f.v.Slot(r.Next).Prev = r.Prev
	} else {
		p.Last = r.Prev
	}
	r.Parent, r.Next, r.Prev = Nil, Nil, Nil
}

// Erase removes the record at index i and all of its
// descendants.
// It fails with ErrRoot if i is 0 or has no parent, in
// which case f is not modified.
// Erased records keep their links, except that i is
// detached from its parent and siblings. Stale iterators
// thus never move onto index 0.
func (f *Forest[T]) Erase(i Index) error {
	r, err := f.v.Get(i)
	switch {
	case err != nil:
		return err
	case i == 0, r.Parent == Nil:
		return &sparse.IndexError{Op: "erase", Index: i, Err: ErrRoot}
	}
	del := f.subtree(i)
	f.unlink(i)
	var z T
	for _, j := range del {
		f.v.Slot(j).value = z
	}
	f.v.Release(del...)
	return nil
}

// subtree returns the indices of i and its descendants,
// visited depth-first.
func (f *Forest[T]) subtree(i Index) []Index {
	var del []Index
	stk := []Index{i}
	for len(stk) > 0 {
		j := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		del = append(del, j)
		for c := f.v.Slot(j).First; c != Nil; c = f.v.Slot(c).Next {
			stk = append(stk, c)
		}
	}
	return del
}

// Get returns a pointer to the value at index i.
// The pointer is valid until the next insertion into f.
func (f *Forest[T]) Get(i Index) (*T, error) {
	r, err := f.v.Get(i)
	if err != nil {
		return nil, err
	}
	return &r.value, nil
}

// At is like Get but panics on failure.
func (f *Forest[T]) At(i Index) *T { return &f.v.At(i).value }

// Link returns the linkage of the record at index i.
func (f *Forest[T]) Link(i Index) (Link, error) {
	r, err := f.v.Get(i)
	if err != nil {
		return Link{}, err
	}
	return r.Link, nil
}

// Parent returns the parent of i, or Nil if i is a root.
// It panics if i is not valid.
func (f *Forest[T]) Parent(i Index) Index { return f.v.At(i).Parent }

// IsUsed reports whether i refers to a record of f.
func (f *Forest[T]) IsUsed(i Index) bool { return f.v.IsUsed(i) }

// Len returns the number of slots in f, including ones
// that hold no record.
func (f *Forest[T]) Len() int { return f.v.Len() }

// Count returns the number of records in f.
func (f *Forest[T]) Count() int { return f.v.Count() }

// All returns an iterator over every record of f, in
// slot order.
func (f *Forest[T]) All() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for i, r := range f.v.All() {
			if !yield(i, &r.value) {
				return
			}
		}
	}
}

// Children returns an iterator over the children of
// parent, first to last.
func (f *Forest[T]) Children(parent Index) iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for it, end := f.Begin(parent), f.End(parent); !it.Equal(end); it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}

// Backward returns an iterator over the children of
// parent, last to first.
func (f *Forest[T]) Backward(parent Index) iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for it, end := f.RBegin(parent), f.REnd(parent); !it.Equal(end); it.Next() {
			if !yield(it.Index(), it.Value()) {
				return
			}
		}
	}
}

// Walk returns an iterator over root and its descendants.
// Ancestors are visited first (breadth-first order).
// The forest must not be changed during iteration.
func (f *Forest[T]) Walk(root Index) iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		if !f.v.IsUsed(root) {
			return
		}
		que := []Index{root}
		for len(que) > 0 {
			i := que[0]
			que = que[1:]
			r := f.v.Slot(i)
			if !yield(i, &r.value) {
				return
			}
			for c := r.First; c != Nil; c = f.v.Slot(c).Next {
				que = append(que, c)
			}
		}
	}
}
