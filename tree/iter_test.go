// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package tree

import (
	"errors"
	"slices"
	"testing"

	"github.com/gviegas/scenetree/sparse"
)

func TestIter(t *testing.T) {
	var f Forest[string]
	r := f.insert("r", Nil, t)
	a := f.insert("a", r, t)
	b := f.insert("b", r, t)
	c := f.insert("c", r, t)

	var fwd []Index
	for it, end := f.Begin(r), f.End(r); !it.Equal(end); it.Next() {
		fwd = append(fwd, it.Index())
	}
	if want := []Index{a, b, c}; !slices.Equal(fwd, want) {
		t.Fatalf("Begin/End:\nhave %v\nwant %v", fwd, want)
	}

	var rev []Index
	for it, end := f.RBegin(r), f.REnd(r); !it.Equal(end); it.Next() {
		rev = append(rev, it.Index())
	}
	if want := []Index{c, b, a}; !slices.Equal(rev, want) {
		t.Fatalf("RBegin/REnd:\nhave %v\nwant %v", rev, want)
	}

	// Decrementing End yields the last child.
	it := f.End(r)
	it.Prev()
	if it.Index() != c || *it.Value() != "c" {
		t.Fatalf("End.Prev:\nhave %d\nwant %d", it.Index(), c)
	}
	it.Prev()
	it.Prev()
	if it.Index() != a {
		t.Fatalf("End.Prev x3:\nhave %d\nwant %d", it.Index(), a)
	}
	it.Next()
	it.Next()
	it.Next()
	if !it.Equal(f.End(r)) {
		t.Fatalf("Next past c:\nhave %d\nwant End", it.Index())
	}
	it.Prev()
	if it.Index() != c {
		t.Fatalf("Prev from End:\nhave %d\nwant %d", it.Index(), c)
	}

	var vals []string
	for _, v := range f.Backward(r) {
		vals = append(vals, *v)
	}
	if want := []string{"c", "b", "a"}; !slices.Equal(vals, want) {
		t.Fatalf("f.Backward:\nhave %v\nwant %v", vals, want)
	}
	vals = vals[:0]
	for _, v := range f.Children(r) {
		vals = append(vals, *v)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(vals, want) {
		t.Fatalf("f.Children:\nhave %v\nwant %v", vals, want)
	}

	rit := f.RBegin(r)
	if *rit.Value() != "c" {
		t.Fatalf("RBegin.Value:\nhave %q\nwant \"c\"", *rit.Value())
	}
	if rit.Base().Index() != Nil {
		t.Fatalf("RBegin.Base.Index:\nhave %d\nwant Nil", rit.Base().Index())
	}
	rit.Next()
	rit.Next()
	rit.Prev()
	if rit.Index() != b {
		t.Fatalf("Reverse.Prev:\nhave %d\nwant %d", rit.Index(), b)
	}
}

func TestIterEmpty(t *testing.T) {
	var f Forest[int]
	r := f.insert(0, Nil, t)
	if !f.Begin(r).Equal(f.End(r)) {
		t.Fatal("Begin != End for a leaf")
	}
	if !f.RBegin(r).Equal(f.REnd(r)) {
		t.Fatal("RBegin != REnd for a leaf")
	}
	// Invalid parents behave as leaves.
	if !f.Begin(99).Equal(f.End(99)) {
		t.Fatal("Begin != End for an invalid parent")
	}
}

func TestIterDeref(t *testing.T) {
	var f Forest[int]
	r := f.insert(0, Nil, t)
	a := f.insert(1, r, t)
	it := f.Begin(r)
	f.Erase(a)

	// Moving does not validate; dereferencing does.
	if _, err := it.Get(); !errors.Is(err, sparse.ErrErased) {
		t.Fatalf("it.Get:\nhave %v\nwant %v", err, sparse.ErrErased)
	}
	defer func() {
		if err, _ := recover().(error); !errors.Is(err, sparse.ErrErased) {
			t.Fatalf("it.Value: recover:\nhave %v\nwant %v", err, sparse.ErrErased)
		}
	}()
	it.Value()
}

func TestIterStale(t *testing.T) {
	var f Forest[int]
	r := f.insert(0, Nil, t)
	a := f.insert(1, r, t)
	b := f.insert(2, r, t)
	f.insert(3, r, t)
	f.insert(20, b, t)
	bb := f.insert(21, b, t)
	it := f.Begin(r)
	itb := f.Begin(b)
	if err := f.Erase(b); err != nil {
		t.Fatalf("f.Erase(b):\nhave %v\nwant nil", err)
	}

	// The erased record itself is detached.
	if i := it.Index(); i != a {
		t.Fatalf("it.Index:\nhave %d\nwant %d", i, a)
	}
	it.Next()
	if i := it.Index(); i != b {
		t.Fatalf("it.Next: it.Index:\nhave %d\nwant %d", i, b)
	}
	if _, err := it.Get(); !errors.Is(err, sparse.ErrErased) {
		t.Fatalf("it.Get:\nhave %v\nwant %v", err, sparse.ErrErased)
	}
	it.Next()
	if i := it.Index(); i != Nil {
		t.Fatalf("it.Next: it.Index:\nhave %d\nwant Nil", i)
	}

	// Its descendants keep their links.
	itb.Next()
	if i := itb.Index(); i != bb {
		t.Fatalf("itb.Next: itb.Index:\nhave %d\nwant %d", i, bb)
	}
	if _, err := itb.Get(); !errors.Is(err, sparse.ErrErased) {
		t.Fatalf("itb.Get:\nhave %v\nwant %v", err, sparse.ErrErased)
	}
	itb.Next()
	if i := itb.Index(); i != Nil {
		t.Fatalf("itb.Next: itb.Index:\nhave %d\nwant Nil", i)
	}
	for _, x := range []*Iter[int]{&it, &itb} {
		x.Prev()
		x.Prev()
		if i := x.Index(); i == r {
			t.Fatalf("x.Prev: x.Index:\nhave %d\nwant != %d", i, r)
		}
	}
}

func TestIterEnd(t *testing.T) {
	var f Forest[int]
	r := f.insert(0, Nil, t)
	f.insert(1, r, t)
	if _, err := f.End(r).Get(); !errors.Is(err, sparse.ErrOutOfRange) {
		t.Fatalf("End.Get:\nhave %v\nwant %v", err, sparse.ErrOutOfRange)
	}
	if _, err := f.REnd(r).Get(); !errors.Is(err, sparse.ErrOutOfRange) {
		t.Fatalf("REnd.Get:\nhave %v\nwant %v", err, sparse.ErrOutOfRange)
	}
}
