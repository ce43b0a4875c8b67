// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package tree

// Iter is a bidirectional iterator over the children of
// a record.
// Moving the iterator never validates it; only Value
// and Get do.
type Iter[T any] struct {
	f    *Forest[T]
	prev Index
	cur  Index
	next Index
}

// links returns the sibling links of slot i, or Nil
// values if i is outside of f's storage.
func (f *Forest[T]) links(i Index) (prev, next Index) {
	if i < 0 || int(i) >= f.v.Len() {
		return Nil, Nil
	}
	r := f.v.Slot(i)
	return r.Prev, r.Next
}

// Begin returns an iterator positioned at the first
// child of parent.
func (f *Forest[T]) Begin(parent Index) Iter[T] {
	it := Iter[T]{f: f, prev: Nil, cur: Nil, next: Nil}
	if f.v.IsUsed(parent) {
		it.cur = f.v.Slot(parent).First
		_, it.next = f.links(it.cur)
	}
	return it
}

// End returns an iterator positioned one past the last
// child of parent.
// Decrementing it yields the last child.
func (f *Forest[T]) End(parent Index) Iter[T] {
	it := Iter[T]{f: f, prev: Nil, cur: Nil, next: Nil}
	if f.v.IsUsed(parent) {
		it.prev = f.v.Slot(parent).Last
	}
	return it
}

// Next advances the iterator to the next sibling.
func (it *Iter[T]) Next() {
	old := it.cur
	it.cur = it.next
	if it.cur == Nil {
		it.prev, it.next = old, Nil
		return
	}
	it.prev, it.next = it.f.links(it.cur)
}

// Prev moves the iterator back to the previous sibling.
func (it *Iter[T]) Prev() {
	old := it.cur
	it.cur = it.prev
	if it.cur == Nil {
		it.prev, it.next = Nil, old
		return
	}
	it.prev, it.next = it.f.links(it.cur)
}

// Index returns the index of the current record, or Nil
// if the iterator is past the end.
func (it Iter[T]) Index() Index { return it.cur }

// Equal reports whether it and other refer to the same
// position.
func (it Iter[T]) Equal(other Iter[T]) bool {
	return it.f == other.f && it.cur == other.cur
}

// Get returns a pointer to the current value.
// It fails in the same manner as Forest.Get.
func (it Iter[T]) Get() (*T, error) { return it.f.Get(it.cur) }

// Value returns a pointer to the current value.
// It panics in the same manner as Forest.At.
func (it Iter[T]) Value() *T { return it.f.At(it.cur) }

// Reverse adapts an Iter to move in the opposite
// direction.
// A Reverse refers to the element immediately before
// the position of its base iterator.
type Reverse[T any] struct {
	base Iter[T]
}

// RBegin returns a reverse iterator positioned at the
// last child of parent.
func (f *Forest[T]) RBegin(parent Index) Reverse[T] {
	return Reverse[T]{f.End(parent)}
}

// REnd returns a reverse iterator positioned one before
// the first child of parent.
func (f *Forest[T]) REnd(parent Index) Reverse[T] {
	return Reverse[T]{f.Begin(parent)}
}

// Base returns the underlying iterator.
func (r Reverse[T]) Base() Iter[T] { return r.base }

// Next moves the iterator towards the first child.
func (r *Reverse[T]) Next() { r.base.Prev() }

// Prev moves the iterator towards the last child.
func (r *Reverse[T]) Prev() { r.base.Next() }

// Index returns the index of the current record.
func (r Reverse[T]) Index() Index {
	tmp := r.base
	tmp.Prev()
	return tmp.Index()
}

// Equal reports whether r and other refer to the same
// position.
func (r Reverse[T]) Equal(other Reverse[T]) bool { return r.base.Equal(other.base) }

// Get returns a pointer to the current value.
func (r Reverse[T]) Get() (*T, error) { return r.base.f.Get(r.Index()) }

// Value returns a pointer to the current value.
// It panics if the iterator is not dereferenceable.
func (r Reverse[T]) Value() *T { return r.base.f.At(r.Index()) }
