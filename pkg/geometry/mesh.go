package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// meshEpsilon is the minimum hit distance accepted by a mesh, guarding
// secondary rays against re-hitting the triangle they start on
const meshEpsilon = 1e-4

// Mesh represents a collection of triangles sharing one material.
// Intersection is a linear scan; the winning triangle travels back in the
// Hit, so a Mesh holds no per-ray state.
type Mesh struct {
	triangles []*Triangle
	Material  material.Material
}

// NewMesh creates a mesh from vertices and face indices.
// vertices: array of 3D points
// faces: 0-based indices in file order (each group of 3 forms a triangle);
// the second and third index of every face are swapped when the triangle is
// built, reversing the stored winding
func NewMesh(vertices []core.Vec3, faces []int, mat material.Material) *Mesh {
	if len(faces)%3 != 0 {
		panic("Face indices must be a multiple of 3")
	}

	triangles := make([]*Triangle, 0, len(faces)/3)
	for i := 0; i+2 < len(faces); i += 3 {
		a, b, c := faces[i], faces[i+1], faces[i+2]

		// Bounds check
		if a < 0 || b < 0 || c < 0 ||
			a >= len(vertices) || b >= len(vertices) || c >= len(vertices) {
			panic("Face index out of bounds")
		}

		triangles = append(triangles, NewTriangle(vertices[a], vertices[c], vertices[b], mat))
	}

	return &Mesh{triangles: triangles, Material: mat}
}

// NewMeshFromTriangles wraps existing triangles in a mesh
func NewMeshFromTriangles(triangles []*Triangle, mat material.Material) *Mesh {
	return &Mesh{triangles: triangles, Material: mat}
}

// Intersect returns the nearest triangle hit beyond meshEpsilon
func (m *Mesh) Intersect(ray core.Ray) Hit {
	closest := Hit{T: math.Inf(1)}

	for _, triangle := range m.triangles {
		hit := triangle.Intersect(ray)
		if hit.T > meshEpsilon && hit.T < closest.T {
			closest = hit
		}
	}

	if closest.Surface == nil {
		return NoHit()
	}
	return closest
}

// GetMaterial returns the mesh material
func (m *Mesh) GetMaterial() material.Material {
	return m.Material
}

// GetTriangleCount returns the number of triangles in this mesh
func (m *Mesh) GetTriangleCount() int {
	return len(m.triangles)
}

// GetTriangles returns the individual triangles (for debugging or special operations)
func (m *Mesh) GetTriangles() []*Triangle {
	return m.triangles
}

// Bounds returns the axis-aligned extent of all vertices.
// An empty mesh reports ok == false.
func (m *Mesh) Bounds() (minCorner, maxCorner core.Vec3, ok bool) {
	if len(m.triangles) == 0 {
		return core.Vec3{}, core.Vec3{}, false
	}

	minCorner = m.triangles[0].A
	maxCorner = m.triangles[0].A
	for _, t := range m.triangles {
		for _, v := range []core.Vec3{t.A, t.B, t.C} {
			minCorner = core.NewVec3(min(minCorner.X, v.X), min(minCorner.Y, v.Y), min(minCorner.Z, v.Z))
			maxCorner = core.NewVec3(max(maxCorner.X, v.X), max(maxCorner.Y, v.Y), max(maxCorner.Z, v.Z))
		}
	}
	return minCorner, maxCorner, true
}
