// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
// m may alias l or r.
func (m *M3) Mul(l, r *M3) {
	var n M3
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Invert sets m to contain the inverse of n.
func (m *M3) Invert(n *M3) {
	s0 := n[1][1]*n[2][2] - n[1][2]*n[2][1]
	s1 := n[1][0]*n[2][2] - n[1][2]*n[2][0]
	s2 := n[1][0]*n[2][1] - n[1][1]*n[2][0]
	idet := 1 / (n[0][0]*s0 - n[0][1]*s1 + n[0][2]*s2)
	var x M3
	x[0][0] = s0 * idet
	x[0][1] = -(n[0][1]*n[2][2] - n[0][2]*n[2][1]) * idet
	x[0][2] = (n[0][1]*n[1][2] - n[0][2]*n[1][1]) * idet
	x[1][0] = -s1 * idet
	x[1][1] = (n[0][0]*n[2][2] - n[0][2]*n[2][0]) * idet
	x[1][2] = -(n[0][0]*n[1][2] - n[0][2]*n[1][0]) * idet
	x[2][0] = s2 * idet
	x[2][1] = -(n[0][0]*n[2][1] - n[0][1]*n[2][0]) * idet
	x[2][2] = (n[0][0]*n[1][1] - n[0][1]*n[1][0]) * idet
	*m = x
}

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Identity returns an identity matrix.
func Identity() (m M4) {
	m.I()
	return
}

// Mul sets m to contain l ⋅ r.
// m may alias l or r.
func (m *M4) Mul(l, r *M4) {
	var n M4
	for i := range n {
		for j := range n {
			for k := range n {
				n[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = n
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Invert sets m to contain the inverse of n.
func (m *M4) Invert(n *M4) {
	s0 := n[0][0]*n[1][1] - n[0][1]*n[1][0]
	s1 := n[0][0]*n[1][2] - n[0][2]*n[1][0]
	s2 := n[0][0]*n[1][3] - n[0][3]*n[1][0]
	s3 := n[0][1]*n[1][2] - n[0][2]*n[1][1]
	s4 := n[0][1]*n[1][3] - n[0][3]*n[1][1]
	s5 := n[0][2]*n[1][3] - n[0][3]*n[1][2]
	c0 := n[2][0]*n[3][1] - n[2][1]*n[3][0]
	c1 := n[2][0]*n[3][2] - n[2][2]*n[3][0]
	c2 := n[2][0]*n[3][3] - n[2][3]*n[3][0]
	c3 := n[2][1]*n[3][2] - n[2][2]*n[3][1]
	c4 := n[2][1]*n[3][3] - n[2][3]*n[3][1]
	c5 := n[2][2]*n[3][3] - n[2][3]*n[3][2]
	idet := 1 / (s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0)
	var x M4
	x[0][0] = (c5*n[1][1] - c4*n[1][2] + c3*n[1][3]) * idet
	x[0][1] = (-c5*n[0][1] + c4*n[0][2] - c3*n[0][3]) * idet
	x[0][2] = (s5*n[3][1] - s4*n[3][2] + s3*n[3][3]) * idet
	x[0][3] = (-s5*n[2][1] + s4*n[2][2] - s3*n[2][3]) * idet
	x[1][0] = (-c5*n[1][0] + c2*n[1][2] - c1*n[1][3]) * idet
	x[1][1] = (c5*n[0][0] - c2*n[0][2] + c1*n[0][3]) * idet
	x[1][2] = (-s5*n[3][0] + s2*n[3][2] - s1*n[3][3]) * idet
	x[1][3] = (s5*n[2][0] - s2*n[2][2] + s1*n[2][3]) * idet
	x[2][0] = (c4*n[1][0] - c2*n[1][1] + c0*n[1][3]) * idet
	x[2][1] = (-c4*n[0][0] + c2*n[0][1] - c0*n[0][3]) * idet
	x[2][2] = (s4*n[3][0] - s2*n[3][1] + s0*n[3][3]) * idet
	x[2][3] = (-s4*n[2][0] + s2*n[2][1] - s0*n[2][3]) * idet
	x[3][0] = (-c3*n[1][0] + c1*n[1][1] - c0*n[1][2]) * idet
	x[3][1] = (c3*n[0][0] - c1*n[0][1] + c0*n[0][2]) * idet
	x[3][2] = (-s3*n[3][0] + s1*n[3][1] - s0*n[3][2]) * idet
	x[3][3] = (s3*n[2][0] - s1*n[2][1] + s0*n[2][2]) * idet
	*m = x
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	*m = M4{{1}, {0, 1}, {0, 0, 1}, {x, y, z, 1}}
}

// Scale sets m to contain a scale matrix.
func (m *M4) Scale(x, y, z float32) {
	*m = M4{{x}, {0, y}, {0, 0, z}, {0, 0, 0, 1}}
}

// RotateQ sets m to contain a rotation matrix from q.
// q must be a unit quaternion.
func (m *M4) RotateQ(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// TRS sets m to contain t ⋅ r ⋅ s, where t translates
// by tr, r rotates by q and s scales by sc.
func (m *M4) TRS(tr *V3, q *Q, sc *V3) {
	var r, s M4
	m.Translate(tr[0], tr[1], tr[2])
	r.RotateQ(q)
	s.Scale(sc[0], sc[1], sc[2])
	m.Mul(m, &r)
	m.Mul(m, &s)
}

// Translation returns the translation component of m.
func (m *M4) Translation() V3 { return V3{m[3][0], m[3][1], m[3][2]} }

// Equal reports whether every element of m differs from
// the corresponding element of n by no more than eps.
func (m *M4) Equal(n *M4, eps float32) bool {
	for i := range m {
		for j := range m[i] {
			if math32.Abs(m[i][j]-n[i][j]) > eps {
				return false
			}
		}
	}
	return true
}
