package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Surface answers normal queries for a primitive
type Surface interface {
	// NormalAt returns the outward unit normal at (or near) point
	NormalAt(point core.Vec3) core.Vec3
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Intersect returns the nearest forward hit along ray. A miss is reported
	// as a Hit whose T is not positive or not finite; use Hit.Ok to test.
	Intersect(ray core.Ray) Hit
	GetMaterial() material.Material
}
