package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Hit describes where a ray met a shape. Surface is the primitive that was
// actually struck (a triangle for meshes) and answers the normal query, so no
// state is kept on the shape between Intersect and Normal.
type Hit struct {
	T       float64 // Parameter t along the ray
	Surface Surface // Primitive that produced the hit; nil on a miss
}

// NoHit returns the miss sentinel
func NoHit() Hit {
	return Hit{T: -1}
}

// Ok reports whether the hit lies strictly in front of the ray origin
func (h Hit) Ok() bool {
	return h.T > 0 && !math.IsInf(h.T, 1) && !math.IsNaN(h.T) && h.Surface != nil
}

// Point returns the world-space hit position along ray
func (h Hit) Point(ray core.Ray) core.Vec3 {
	return ray.At(h.T)
}

// Normal returns the surface normal at point
func (h Hit) Normal(point core.Vec3) core.Vec3 {
	return h.Surface.NormalAt(point)
}
