package scene

import (
	"bytes"
	_ "embed"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

//go:embed assets/box.obj
var boxOBJ []byte

// BoxPosition is where the built-in box mesh is placed
var BoxPosition = core.NewVec3(-1, 0, 14)

// NewBoxMesh parses the embedded box model translated by offset
func NewBoxMesh(offset core.Vec3, mat material.Material) *geometry.Mesh {
	data, err := loaders.ParseOBJ(bytes.NewReader(boxOBJ), offset)
	if err != nil {
		// The asset is compiled in; failing to parse it is a build defect
		panic("scene: embedded box.obj: " + err.Error())
	}
	return geometry.NewMesh(data.Vertices, data.Faces, mat)
}

// NewMeshScene shows a triangle mesh next to a reflective sphere on a
// semi-reflective floor, lit by a point light and the demo lights
func NewMeshScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := NewScene(firstOverride(cameraOverrides))

	addDemoLights(s)
	s.AddLight(lights.NewPoint(core.NewVec3(3, 6, 6), core.NewColor(0.3, 0.3, 0.28)))

	box := NewBoxMesh(BoxPosition, material.New(core.LightGray, 20, 0))
	sphere := geometry.NewSphere(core.NewVec3(2.5, -0.5, 11), 1.5, material.New(core.Blue, 80, 0.4))
	floor := geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), material.New(core.DarkGray, 0, 0.3))

	s.AddShape(box)
	s.AddShape(sphere)
	s.AddShape(floor)

	return s
}

// NewMeshFileScene frames a mesh loaded from filename with the default lights
// and floor. A file that fails to load leaves an empty mesh in the scene.
func NewMeshFileScene(filename string, offset core.Vec3, logger core.Logger, cameraOverrides ...geometry.CameraConfig) *Scene {
	s := NewScene(firstOverride(cameraOverrides))

	addDemoLights(s)

	s.AddShape(LoadMesh(filename, offset, material.New(core.LightGray, 20, 0), logger))
	s.AddShape(geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0), material.New(core.LightGray, 0, 0)))

	return s
}

// NewEmptyScene has no shapes or lights; every pixel is the background
func NewEmptyScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	return NewScene(firstOverride(cameraOverrides))
}
