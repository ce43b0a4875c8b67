// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package tree

// Copy copies the subtree of src rooted at srcRoot into
// dst, as the last child of dstParent (or as a new root
// if dstParent is Nil).
// It returns the index of the copied root in dst.
// Children keep their order.
func Copy[T any](dst *Forest[T], dstParent Index, src *Forest[T], srcRoot Index) (Index, error) {
	return CopyFunc(dst, dstParent, src, srcRoot, func(x *T) (T, error) { return *x, nil })
}

// CopyFunc is like Copy but converts each value with
// conv.
// If any step fails, including a call to conv, dst is
// left unchanged and the error is returned.
// dst and src may refer to the same forest.
func CopyFunc[S, D any](dst *Forest[D], dstParent Index, src *Forest[S], srcRoot Index, conv func(*S) (D, error)) (Index, error) {
	if _, err := src.v.Get(srcRoot); err != nil {
		return Nil, err
	}
	if dstParent != Nil {
		if _, err := dst.v.Get(dstParent); err != nil {
			return Nil, err
		}
	}

	// Reserve and fill one slot per source record.
	// The new slots are not used yet, so none of this
	// is observable through dst.
	imap := map[Index]Index{Nil: Nil}
	var order []Index
	release := func() {
		for _, i := range order {
			dst.v.Erase(imap[i])
		}
	}
	stk := []Index{srcRoot}
	for len(stk) > 0 {
		i := stk[len(stk)-1]
		stk = stk[:len(stk)-1]
		x, err := conv(&src.v.Slot(i).value)
		if err != nil {
			release()
			return Nil, err
		}
		l := src.v.Slot(i).Link
		if i == srcRoot {
			// The copy keeps no relation to the
			// source root's parent or siblings.
			l.Parent, l.Next, l.Prev = Nil, Nil, Nil
		}
		imap[i] = dst.v.Insert(record[D]{l, x})
		order = append(order, i)
		// Push in reverse so that the first
		// child is popped first.
		for it, end := src.RBegin(i), src.REnd(i); !it.Equal(end); it.Next() {
			stk = append(stk, it.Index())
		}
	}

	// Rewrite the linkage through the index map.
	for _, i := range order {
		r := dst.v.Slot(imap[i])
		r.Parent = imap[r.Parent]
		r.First = imap[r.First]
		r.Last = imap[r.Last]
		r.Next = imap[r.Next]
		r.Prev = imap[r.Prev]
	}

	root := imap[srcRoot]
	dst.link(root, dstParent)
	for _, i := range order {
		dst.v.SetUsed(imap[i])
	}
	return root, nil
}
