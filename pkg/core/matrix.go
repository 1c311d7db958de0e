package core

import "fmt"

// Mat2 is a 2×2 matrix stored row-major:
//
//	[ A B ]
//	[ C D ]
type Mat2 struct {
	A, B float64
	C, D float64
}

// Identity2 returns the 2×2 identity matrix
func Identity2() Mat2 {
	return Mat2{A: 1, D: 1}
}

// NewMat2FromColumns builds a matrix whose columns are v and u
func NewMat2FromColumns(v, u Vec2) Mat2 {
	return Mat2{
		A: v.X, B: u.X,
		C: v.Y, D: u.Y,
	}
}

// Add returns the element-wise sum
func (m Mat2) Add(o Mat2) Mat2 {
	return Mat2{m.A + o.A, m.B + o.B, m.C + o.C, m.D + o.D}
}

// Subtract returns the element-wise difference
func (m Mat2) Subtract(o Mat2) Mat2 {
	return Mat2{m.A - o.A, m.B - o.B, m.C - o.C, m.D - o.D}
}

// Scale multiplies every element by s
func (m Mat2) Scale(s float64) Mat2 {
	return Mat2{m.A * s, m.B * s, m.C * s, m.D * s}
}

// Multiply returns the matrix product m·o
func (m Mat2) Multiply(o Mat2) Mat2 {
	return Mat2{
		A: m.A*o.A + m.B*o.C, B: m.A*o.B + m.B*o.D,
		C: m.C*o.A + m.D*o.C, D: m.C*o.B + m.D*o.D,
	}
}

// MultiplyVec returns m·v
func (m Mat2) MultiplyVec(v Vec2) Vec2 {
	return Vec2{m.A*v.X + m.B*v.Y, m.C*v.X + m.D*v.Y}
}

// Determinant returns ad - bc
func (m Mat2) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Inverse divides the adjugate by the determinant.
// A singular matrix yields Inf/NaN elements.
func (m Mat2) Inverse() Mat2 {
	det := m.Determinant()
	return Mat2{m.D, -m.B, -m.C, m.A}.Scale(1 / det)
}

// Transpose swaps the off-diagonal elements
func (m Mat2) Transpose() Mat2 {
	return Mat2{m.A, m.C, m.B, m.D}
}

func (m Mat2) String() string {
	return fmt.Sprintf("[ %g %g | %g %g ]", m.A, m.B, m.C, m.D)
}

// Mat3 is a 3×3 matrix stored row-major:
//
//	[ A B C ]
//	[ D E F ]
//	[ G H I ]
type Mat3 struct {
	A, B, C float64
	D, E, F float64
	G, H, I float64
}

// Identity3 returns the 3×3 identity matrix
func Identity3() Mat3 {
	return Mat3{A: 1, E: 1, I: 1}
}

// NewMat3FromColumns builds a matrix whose columns are u, v and w
func NewMat3FromColumns(u, v, w Vec3) Mat3 {
	return Mat3{
		A: u.X, B: v.X, C: w.X,
		D: u.Y, E: v.Y, F: w.Y,
		G: u.Z, H: v.Z, I: w.Z,
	}
}

// Add returns the element-wise sum
func (m Mat3) Add(o Mat3) Mat3 {
	return Mat3{
		m.A + o.A, m.B + o.B, m.C + o.C,
		m.D + o.D, m.E + o.E, m.F + o.F,
		m.G + o.G, m.H + o.H, m.I + o.I,
	}
}

// Subtract returns the element-wise difference
func (m Mat3) Subtract(o Mat3) Mat3 {
	return Mat3{
		m.A - o.A, m.B - o.B, m.C - o.C,
		m.D - o.D, m.E - o.E, m.F - o.F,
		m.G - o.G, m.H - o.H, m.I - o.I,
	}
}

// Scale multiplies every element by s
func (m Mat3) Scale(s float64) Mat3 {
	return Mat3{
		m.A * s, m.B * s, m.C * s,
		m.D * s, m.E * s, m.F * s,
		m.G * s, m.H * s, m.I * s,
	}
}

// Multiply returns the matrix product m·o
func (m Mat3) Multiply(o Mat3) Mat3 {
	return Mat3{
		A: m.A*o.A + m.B*o.D + m.C*o.G,
		B: m.A*o.B + m.B*o.E + m.C*o.H,
		C: m.A*o.C + m.B*o.F + m.C*o.I,
		D: m.D*o.A + m.E*o.D + m.F*o.G,
		E: m.D*o.B + m.E*o.E + m.F*o.H,
		F: m.D*o.C + m.E*o.F + m.F*o.I,
		G: m.G*o.A + m.H*o.D + m.I*o.G,
		H: m.G*o.B + m.H*o.E + m.I*o.H,
		I: m.G*o.C + m.H*o.F + m.I*o.I,
	}
}

// MultiplyVec returns m·v
func (m Mat3) MultiplyVec(v Vec3) Vec3 {
	return Vec3{
		X: m.A*v.X + m.B*v.Y + m.C*v.Z,
		Y: m.D*v.X + m.E*v.Y + m.F*v.Z,
		Z: m.G*v.X + m.H*v.Y + m.I*v.Z,
	}
}

// Determinant expands along the first row
func (m Mat3) Determinant() float64 {
	return m.A*m.E*m.I + m.B*m.F*m.G + m.C*m.D*m.H -
		m.C*m.E*m.G - m.B*m.D*m.I - m.A*m.F*m.H
}

// Adjugate returns the transpose of the cofactor matrix
func (m Mat3) Adjugate() Mat3 {
	return Mat3{
		A: m.E*m.I - m.F*m.H,
		B: -(m.B*m.I - m.C*m.H),
		C: m.B*m.F - m.C*m.E,
		D: -(m.D*m.I - m.F*m.G),
		E: m.A*m.I - m.C*m.G,
		F: -(m.A*m.F - m.C*m.D),
		G: m.D*m.H - m.E*m.G,
		H: -(m.A*m.H - m.B*m.G),
		I: m.A*m.E - m.B*m.D,
	}
}

// Inverse divides the adjugate by the determinant.
// There is no singularity check; a singular matrix yields Inf/NaN elements.
func (m Mat3) Inverse() Mat3 {
	return m.Adjugate().Scale(1 / m.Determinant())
}

// Transpose mirrors the matrix about its main diagonal
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m.A, m.D, m.G,
		m.B, m.E, m.H,
		m.C, m.F, m.I,
	}
}

func (m Mat3) String() string {
	return fmt.Sprintf("[ %g %g %g | %g %g %g | %g %g %g ]",
		m.A, m.B, m.C, m.D, m.E, m.F, m.G, m.H, m.I)
}
