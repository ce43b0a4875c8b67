// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package tree

import (
	"errors"
	"strconv"
	"testing"

	"github.com/gviegas/scenetree/sparse"
)

// build creates a tree in f from a shape description:
// shape[i] is the number of children of the i-th record
// created, in breadth-first order.
func (f *Forest[T]) build(parent Index, shape []int, mk func(int) T, t *testing.T) Index {
	root := f.insert(mk(0), parent, t)
	que := []Index{root}
	n := 1
	for _, k := range shape {
		if len(que) == 0 {
			break
		}
		p := que[0]
		que = que[1:]
		for range k {
			que = append(que, f.insert(mk(n), p, t))
			n++
		}
	}
	return root
}

// isomorphic checks that the subtree of f at i matches
// the subtree of g at j, values included.
func isomorphic[T comparable](f *Forest[T], i Index, g *Forest[T], j Index, t *testing.T) {
	t.Helper()
	if *f.At(i) != *g.At(j) {
		t.Fatalf("value:\nhave %v\nwant %v", *g.At(j), *f.At(i))
	}
	fi, fe := f.Begin(i), f.End(i)
	gi, ge := g.Begin(j), g.End(j)
	for !fi.Equal(fe) && !gi.Equal(ge) {
		if l, _ := g.Link(gi.Index()); l.Parent != j {
			t.Fatalf("%d: parent:\nhave %d\nwant %d", gi.Index(), l.Parent, j)
		}
		isomorphic(f, fi.Index(), g, gi.Index(), t)
		fi.Next()
		gi.Next()
	}
	if !fi.Equal(fe) || !gi.Equal(ge) {
		t.Fatalf("%d/%d: child count mismatch", i, j)
	}
}

func TestCopy(t *testing.T) {
	mk := strconv.Itoa
	for _, shape := range [][]int{
		nil,
		{0},
		{1},
		{3},
		{2, 1, 0},
		{1, 1, 1, 1},
		{3, 0, 2, 1, 0, 4},
		{5, 0, 0, 0, 0, 3, 2, 2, 1},
	} {
		var src, dst Forest[string]
		// Interleave the source with unrelated records.
		sroot := src.insert("s", Nil, t)
		src.build(sroot, []int{4}, func(int) string { return "junk" }, t)
		src.Erase(3)
		src.Erase(5)
		r := src.build(sroot, shape, mk, t)

		droot := dst.insert("d", Nil, t)
		dst.insert("first", droot, t)
		c, err := Copy(&dst, droot, &src, r)
		if err != nil {
			t.Fatalf("Copy (%v):\nhave %v\nwant nil", shape, err)
		}
		isomorphic(&src, r, &dst, c, t)
		if l, _ := dst.Link(droot); l.Last != c {
			t.Fatalf("Copy (%v): parent.Last:\nhave %d\nwant %d", shape, l.Last, c)
		}
		if n, m := dst.Count(), 2; n-m != countOf(&src, r) {
			t.Fatalf("Copy (%v): count:\nhave %d\nwant %d", shape, n-m, countOf(&src, r))
		}
		dst.checkLinks(t)
		src.checkLinks(t)
	}
}

func countOf[T any](f *Forest[T], i Index) (n int) {
	for range f.Walk(i) {
		n++
	}
	return
}

func TestCopyRoot(t *testing.T) {
	var src, dst Forest[int]
	r := src.build(Nil, []int{2, 2}, func(i int) int { return i * i }, t)
	c, err := Copy(&dst, Nil, &src, r)
	if err != nil {
		t.Fatalf("Copy:\nhave %v\nwant nil", err)
	}
	if c != 0 {
		t.Fatalf("Copy: root:\nhave %d\nwant 0", c)
	}
	isomorphic(&src, r, &dst, c, t)
	if l, _ := dst.Link(c); l.Parent != Nil || l.Next != Nil || l.Prev != Nil {
		t.Fatalf("Copy: root link:\nhave %+v\nwant detached", l)
	}
}

func TestCopySame(t *testing.T) {
	var f Forest[string]
	r := f.insert("r", Nil, t)
	a := f.build(r, []int{2}, func(i int) string { return "a" + strconv.Itoa(i) }, t)
	b := f.insert("b", r, t)
	c, err := Copy(&f, b, &f, a)
	if err != nil {
		t.Fatalf("Copy:\nhave %v\nwant nil", err)
	}
	if s := f.string(r); s != "r(a0(a1 a2) b(a0(a1 a2)))" {
		t.Fatalf("f:\nhave %s\nwant r(a0(a1 a2) b(a0(a1 a2)))", s)
	}
	// The copy is independent.
	*f.At(c) = "c"
	if *f.At(a) != "a0" {
		t.Fatalf("f.At(a):\nhave %q\nwant \"a0\"", *f.At(a))
	}
	f.checkLinks(t)
}

func TestCopyFail(t *testing.T) {
	var src Forest[int]
	r := src.build(Nil, []int{3, 1, 1, 1}, func(i int) int { return i }, t)

	var dst Forest[string]
	droot := dst.insert("d", Nil, t)
	gap := dst.insert("gap", droot, t)
	dst.insert("x", droot, t)
	dst.Erase(gap)
	before := dst.string(droot)
	n, cnt := dst.Len(), dst.Count()

	errConv := errors.New("conversion failed")
	_, err := CopyFunc(&dst, droot, &src, r, func(x *int) (string, error) {
		if *x == 5 {
			return "", errConv
		}
		return strconv.Itoa(*x), nil
	})
	if !errors.Is(err, errConv) {
		t.Fatalf("CopyFunc:\nhave %v\nwant %v", err, errConv)
	}
	if dst.Count() != cnt || dst.string(droot) != before {
		t.Fatalf("CopyFunc: dst was modified:\nhave %s\nwant %s", dst.string(droot), before)
	}
	// Reserved slots were released.
	if i, _ := dst.Insert("y", droot); i != gap {
		t.Fatalf("dst.Insert after failed copy:\nhave %d\nwant %d", i, gap)
	}
	if dst.Len() < n {
		t.Fatalf("dst.Len:\nhave %d\nwant >= %d", dst.Len(), n)
	}
	dst.checkLinks(t)

	for _, x := range [...]struct {
		parent, root Index
		want         error
	}{
		{droot, 100, sparse.ErrOutOfRange},
		{gap + 100, r, sparse.ErrOutOfRange},
	} {
		if _, err := CopyFunc(&dst, x.parent, &src, x.root, func(x *int) (string, error) { return "", nil }); !errors.Is(err, x.want) {
			t.Fatalf("CopyFunc(_, %d, _, %d):\nhave %v\nwant %v", x.parent, x.root, err, x.want)
		}
	}
	src.Erase(1)
	if _, err := CopyFunc(&dst, droot, &src, 1, func(x *int) (string, error) { return "", nil }); !errors.Is(err, sparse.ErrErased) {
		t.Fatalf("CopyFunc (erased root):\nhave %v\nwant %v", err, sparse.ErrErased)
	}
}
