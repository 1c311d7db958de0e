package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// triangleEpsilon bounds the determinant below which the ray is treated as
// lying in the triangle's plane
const triangleEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	A, B, C  core.Vec3         // The three vertices
	EdgeAB   core.Vec3         // B - A
	EdgeAC   core.Vec3         // C - A
	Material material.Material // Material of the triangle
	normal   core.Vec3         // Cached unit normal, EdgeAC × EdgeAB
}

// NewTriangle creates a new triangle from three vertices.
// The front face is the one from which A, B, C appear clockwise.
func NewTriangle(a, b, c core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{
		A:        a,
		B:        b,
		C:        c,
		Material: mat,
	}

	// Precompute edges and normal for efficiency
	t.EdgeAB = b.Subtract(a)
	t.EdgeAC = c.Subtract(a)
	t.normal = t.EdgeAC.Cross(t.EdgeAB).Normalize()

	return t
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) Hit {
	h := ray.Direction.Cross(t.EdgeAC)
	det := t.EdgeAB.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if math.Abs(det) < triangleEpsilon {
		return NoHit()
	}

	s := ray.Origin.Subtract(t.A)
	u := s.Dot(h) / det

	// Check if intersection is outside triangle
	if u < 0.0 || u > 1.0 {
		return NoHit()
	}

	q := s.Cross(t.EdgeAB)
	v := ray.Direction.Dot(q) / det

	if v < 0.0 || u+v > 1.0 {
		return NoHit()
	}

	return Hit{T: t.EdgeAC.Dot(q) / det, Surface: t}
}

// NormalAt returns the triangle's normal, which is the same everywhere
func (t *Triangle) NormalAt(core.Vec3) core.Vec3 {
	return t.normal
}

// GetNormal returns the triangle's normal vector
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() material.Material {
	return t.Material
}
