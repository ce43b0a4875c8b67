// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package sparse implements a growable vector whose
// elements are addressed by stable indices.
//
// Removing an element does not move any other element:
// the slot is tombstoned and becomes available for reuse
// by a subsequent insertion. Indices are weak references
// that must be revalidated on access.
package sparse

import (
	"errors"
	"fmt"
	"iter"

	"github.com/gviegas/scenetree/internal/bitvec"
)

// Index identifies a slot in a Vector.
type Index int

// Nil represents the absence of a slot.
const Nil Index = -1

// IsNil reports whether i is Nil.
func (i Index) IsNil() bool { return i == Nil }

var (
	// ErrOutOfRange means that an index lies outside
	// of a vector's physical storage.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrErased means that an index refers to a slot
	// that exists but holds no element.
	ErrErased = errors.New("sparse: index refers to an erased element")
)

// IndexError records a failed access and the index that
// caused it.
type IndexError struct {
	Op    string
	Index Index
	Err   error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Op, e.Index, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// Vector is a sparse vector of T.
// The zero value for Vector is an empty vector ready
// to use.
//
// Every slot is either free, reserved or used. Insert
// reserves a slot; SetUsed makes it visible. This lets
// callers complete any bookkeeping that may fail before
// an element is observable.
type Vector[T any] struct {
	s []T
	// Slots that are not free.
	alloc bitvec.V[uint64]
	// Slots that are visible.
	used bitvec.V[uint64]
}

// Insert stores x in the lowest-indexed free slot,
// appending a new slot if none is free.
// The slot is reserved but not used: Get will fail for
// the returned index until SetUsed is called.
func (v *Vector[T]) Insert(x T) Index {
	if v.alloc.Rem() == 0 {
		v.alloc.Grow(1)
		v.used.Grow(1)
	}
	i, ok := v.alloc.Search()
	if !ok {
		// Should never happen.
		panic("unexpected failure from bitvec.V.Search")
	}
	v.alloc.Set(i)
	if i == len(v.s) {
		v.s = append(v.s, x)
	} else {
		v.s[i] = x
	}
	return Index(i)
}

// check validates i for the given operation.
func (v *Vector[T]) check(op string, i Index) error {
	switch {
	case i < 0 || int(i) >= len(v.s):
		return &IndexError{op, i, ErrOutOfRange}
	case !v.used.IsSet(int(i)):
		return &IndexError{op, i, ErrErased}
	}
	return nil
}

// Get returns a pointer to the element at index i.
// It fails with ErrOutOfRange if i is not a slot of v,
// and with ErrErased if the slot holds no element.
// The pointer is valid until the next call to Insert.
func (v *Vector[T]) Get(i Index) (*T, error) {
	if err := v.check("get", i); err != nil {
		return nil, err
	}
	return &v.s[i], nil
}

// At is like Get but panics on failure.
// It is meant for indices that the caller knows to be
// valid; an invalid index is a programming error.
func (v *Vector[T]) At(i Index) *T {
	if err := v.check("at", i); err != nil {
		panic(err)
	}
	return &v.s[i]
}

// Slot returns a pointer to the storage of slot i,
// regardless of its state.
// i must be in the range [0, v.Len()).
func (v *Vector[T]) Slot(i Index) *T { return &v.s[i] }

// SetUsed marks slot i as used.
// i must have been returned by Insert and not erased.
func (v *Vector[T]) SetUsed(i Index) {
	if !v.alloc.IsSet(int(i)) {
		panic(&IndexError{"set used", i, ErrErased})
	}
	v.used.Set(int(i))
}

// ClearUsed marks slot i as not used.
// The slot remains reserved, so it will not be reused
// by Insert until erased.
func (v *Vector[T]) ClearUsed(i Index) {
	if i >= 0 && int(i) < len(v.s) {
		v.used.Unset(int(i))
	}
}

// IsUsed reports whether i refers to a used slot.
// It is valid to call this method with any index.
func (v *Vector[T]) IsUsed(i Index) bool { return v.used.IsSet(int(i)) }

// Erase releases every slot in idx.
// Erased slots hold the zero value and are available
// for reuse. Indices that are out of range or already
// free are ignored.
func (v *Vector[T]) Erase(idx ...Index) {
	var z T
	for _, i := range idx {
		if v.release(i) {
			v.s[i] = z
		}
	}
}

// Release is like Erase but leaves the contents of the
// released slots as they were. The contents can still be
// reached through Slot until the slot is reused.
func (v *Vector[T]) Release(idx ...Index) {
	for _, i := range idx {
		v.release(i)
	}
}

func (v *Vector[_]) release(i Index) bool {
	if i < 0 || int(i) >= len(v.s) {
		return false
	}
	v.used.Unset(int(i))
	return v.alloc.Unset(int(i))
}

// Len returns the number of slots in v, including ones
// that hold no element.
func (v *Vector[_]) Len() int { return len(v.s) }

// Count returns the number of used slots in v.
func (v *Vector[_]) Count() int { return v.used.Count() }

// All returns an iterator over the used slots of v,
// in slot order.
func (v *Vector[T]) All() iter.Seq2[Index, *T] {
	return func(yield func(Index, *T) bool) {
		for i := range v.used.Ones() {
			if !yield(Index(i), &v.s[i]) {
				return
			}
		}
	}
}
