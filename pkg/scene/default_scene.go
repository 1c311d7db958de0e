package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the demo scene: three spheres over a grey floor,
// lit by a warm key light and a cool fill light
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := NewScene(firstOverride(cameraOverrides))

	addDemoLights(s)

	sphereLeft := geometry.NewSphere(core.NewVec3(-3.5, -0.5, 10), 1.5, material.New(core.Orange, 40, 0))
	sphereMiddle := geometry.NewSphere(core.NewVec3(0, 1, 12), 3, material.New(core.Green, 200, 0))
	sphereRight := geometry.NewSphere(core.NewVec3(2.5, -0.5, 9), 1.5, material.New(core.Purple, 40, 0))

	floor := geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), material.New(core.LightGray, 0, 0))

	s.AddShape(sphereLeft)
	s.AddShape(sphereMiddle)
	s.AddShape(sphereRight)
	s.AddShape(floor)

	return s
}

// addDemoLights adds the two directional lights shared by the built-in scenes
func addDemoLights(s *Scene) {
	key := lights.NewDirectional(core.NewVec3(1, -1, 1), core.NewColor(0.9, 0.88, 0.83))
	fill := lights.NewDirectional(core.NewVec3(-1, -0.5, 1), core.NewColor(0.45, 0.45, 0.5))

	s.AddLight(key)
	s.AddLight(fill)
}

// firstOverride returns the first camera override, or the zero config
func firstOverride(cameraOverrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(cameraOverrides) > 0 {
		return cameraOverrides[0]
	}
	return geometry.CameraConfig{}
}
