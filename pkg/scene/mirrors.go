package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorsScene places a sphere between two parallel perfect mirrors.
// Rays bouncing between the mirrors only stop at the recursion limit.
func NewMirrorsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := NewScene(firstOverride(cameraOverrides))

	addDemoLights(s)

	mirror := material.New(core.White, 0, 1.0)
	left := geometry.NewPlane(core.NewVec3(-4, 0, 0), core.NewVec3(1, 0, 0), mirror)
	right := geometry.NewPlane(core.NewVec3(4, 0, 0), core.NewVec3(-1, 0, 0), mirror)

	sphere := geometry.NewSphere(core.NewVec3(0, 0, 10), 1.5, material.New(core.Red, 60, 0.2))
	floor := geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), material.New(core.LightGray, 0, 0))

	s.AddShape(left)
	s.AddShape(right)
	s.AddShape(sphere)
	s.AddShape(floor)

	return s
}
