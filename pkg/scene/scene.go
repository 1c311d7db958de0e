package scene

import (
	"reflect"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	// DefaultBackground is returned for rays that escape the scene
	DefaultBackground = core.NewColorHex(0x8b9dc300)
	// DefaultAmbient is added to every lit surface, weighted by its diffuse share
	DefaultAmbient = core.NewColor(0.1, 0.1, 0.13)
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Shapes       []geometry.Shape // Objects in the scene
	Lights       []lights.Light   // Lights in the scene
	Background   core.Color       // Color of rays that hit nothing
	Ambient      core.Color       // Constant fill light
}

// NewScene creates an empty scene with the default background and ambient
// terms. Zero fields of cameraConfig fall back to DefaultCameraConfig.
func NewScene(cameraConfig geometry.CameraConfig) *Scene {
	config := geometry.MergeCameraConfig(geometry.DefaultCameraConfig(), cameraConfig)

	return &Scene{
		Camera:       geometry.NewCamera(config),
		CameraConfig: config,
		Shapes:       make([]geometry.Shape, 0),
		Lights:       make([]lights.Light, 0),
		Background:   DefaultBackground,
		Ambient:      DefaultAmbient,
	}
}

// AddShape appends shape to the scene. Nil shapes are ignored.
func (s *Scene) AddShape(shape geometry.Shape) {
	if isNil(shape) {
		return
	}
	s.Shapes = append(s.Shapes, shape)
}

// AddLight appends light to the scene. Nil lights are ignored.
func (s *Scene) AddLight(light lights.Light) {
	if isNil(light) {
		return
	}
	s.Lights = append(s.Lights, light)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		count += s.countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, handling complex objects
func (s *Scene) countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.Mesh:
		// Meshes contain multiple triangles
		return obj.GetTriangleCount()
	default:
		// Regular shapes count as 1 primitive each
		return 1
	}
}

// LoadMesh reads an OBJ or PLY file into a mesh translated by offset.
// A file that cannot be read or parsed is reported through logger and yields
// an empty mesh, which never intersects, so the render can still proceed.
func LoadMesh(filename string, offset core.Vec3, mat material.Material, logger core.Logger) *geometry.Mesh {
	if logger == nil {
		logger = core.NopLogger()
	}

	data, err := loaders.LoadMesh(filename, offset, logger)
	if err != nil {
		logger.Printf("Unable to load mesh %q: %v\n", filename, err)
		return geometry.NewMesh(nil, nil, mat)
	}

	return geometry.NewMesh(data.Vertices, data.Faces, mat)
}

// isNil reports whether v is nil or an interface holding a nil pointer
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
