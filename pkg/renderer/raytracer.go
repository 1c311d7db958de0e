package renderer

import (
	"image"
	"math"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderConfig bounds the recursion of reflection rays
type RenderConfig struct {
	MaxRecursionDepth int     // Reflection rays are not cast from this depth on
	MinInfluence      float64 // Reflection rays weighted below this are not cast
}

// DefaultRenderConfig returns the standard recursion bounds
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxRecursionDepth: 4,
		MinInfluence:      0.01,
	}
}

// MergeRenderConfig applies the non-zero fields of override on top of base
func MergeRenderConfig(base, override RenderConfig) RenderConfig {
	result := base
	if override.MaxRecursionDepth > 0 {
		result.MaxRecursionDepth = override.MaxRecursionDepth
	}
	if override.MinInfluence > 0 {
		result.MinInfluence = override.MinInfluence
	}
	return result
}

// Raytracer renders a scene with recursive Whitted shading into an RGBA
// frame buffer. A Raytracer must not be used from several goroutines at
// once; the scene it reads may be shared once it is no longer modified.
type Raytracer struct {
	mu     sync.Mutex
	scene  *scene.Scene
	config RenderConfig
	logger core.Logger
	frame  []byte      // RGBA, row-major, top-left origin
	stats  RenderStats // Counters for the current or last render
}

// NewRaytracer creates a raytracer for s. Zero fields of config fall back to
// DefaultRenderConfig; a nil logger discards output.
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger()
	}

	width, height := s.Camera.Width(), s.Camera.Height()

	return &Raytracer{
		scene:  s,
		config: MergeRenderConfig(DefaultRenderConfig(), config),
		logger: logger,
		frame:  make([]byte, width*height*4),
	}
}

// AddShape adds shape to the scene, ignoring nil. It waits for a render in
// progress to finish.
func (rt *Raytracer) AddShape(shape geometry.Shape) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.scene.AddShape(shape)
}

// AddLight adds light to the scene, ignoring nil. It waits for a render in
// progress to finish.
func (rt *Raytracer) AddLight(light lights.Light) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.scene.AddLight(light)
}

// Scene returns the scene being rendered
func (rt *Raytracer) Scene() *scene.Scene {
	return rt.scene
}

// Config returns the effective recursion bounds
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Width returns the frame width in pixels
func (rt *Raytracer) Width() int {
	return rt.scene.Camera.Width()
}

// Height returns the frame height in pixels
func (rt *Raytracer) Height() int {
	return rt.scene.Camera.Height()
}

// Render traces one primary ray per pixel, row by row from the top-left, and
// returns the frame buffer: width*height*4 bytes of R,G,B,A. The slice is
// reused and overwritten by the next Render call.
func (rt *Raytracer) Render() []byte {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	startTime := time.Now()
	camera := rt.scene.Camera
	width, height := camera.Width(), camera.Height()

	rt.stats = RenderStats{TotalPixels: width * height}

	index := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ray := camera.GetPrimaryRay(x, y)
			color := rt.castRay(ray, 0, 1.0)

			r, g, b, a := color.ToRGBA8()
			rt.frame[index] = r
			rt.frame[index+1] = g
			rt.frame[index+2] = b
			rt.frame[index+3] = a
			index += 4
		}
	}

	rt.stats.Duration = time.Since(startTime)
	rt.logger.Printf("Render time: %v (%dx%d, %d shapes, %d lights, %d rays)\n",
		rt.stats.Duration, width, height, len(rt.scene.Shapes), len(rt.scene.Lights), rt.stats.TotalRays())

	return rt.frame
}

// Image returns the frame buffer as an image without copying. Its pixels
// change with the next Render call.
func (rt *Raytracer) Image() *image.RGBA {
	width, height := rt.Width(), rt.Height()
	return &image.RGBA{
		Pix:    rt.frame,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// Stats returns the counters of the last render
func (rt *Raytracer) Stats() RenderStats {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.stats
}

// CastRay returns the color seen along ray. depth counts the reflections that
// led to ray and influence is the weight it carries into the final pixel;
// primary rays use depth 0 and influence 1.
func (rt *Raytracer) CastRay(ray core.Ray, depth int, influence float64) core.Color {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.castRay(ray, depth, influence)
}

func (rt *Raytracer) castRay(ray core.Ray, depth int, influence float64) core.Color {
	return rt.trace(ray, noShape, depth, influence)
}

// noShape is the shape index used when a ray excludes nothing
const noShape = -1

// trace finds the nearest shape other than the one at index exclude, shades
// it and clamps the result to at most 1 per channel. Rays that escape return
// the background.
func (rt *Raytracer) trace(ray core.Ray, exclude int, depth int, influence float64) core.Color {
	if depth == 0 {
		rt.stats.PrimaryRays++
	} else {
		rt.stats.ReflectionRays++
	}
	if depth > rt.stats.MaxDepthReached {
		rt.stats.MaxDepthReached = depth
	}

	index, hit := rt.intersectionClosest(ray, exclude)
	if index == noShape {
		return rt.scene.Background
	}

	point := hit.Point(ray)
	normal := hit.Normal(point)

	return rt.shadePoint(ray, index, point, normal, depth, influence).ClampMax(1.0)
}

// intersectionClosest returns the index of the nearest shape with a positive
// hit along ray, skipping the shape at index exclude, or noShape on a miss.
// Equal depths keep the shape added first. Shapes are told apart by position
// so that shape types need not be comparable.
func (rt *Raytracer) intersectionClosest(ray core.Ray, exclude int) (int, geometry.Hit) {
	closest := noShape
	closestHit := geometry.NoHit()

	for i, shape := range rt.scene.Shapes {
		if i == exclude {
			continue
		}

		hit := shape.Intersect(ray)
		if hit.Ok() && (closest == noShape || hit.T < closestHit.T) {
			closest = i
			closestHit = hit
		}
	}

	return closest, closestHit
}

// isLit reports whether nothing blocks the path from point to light.
// toLight is the unit direction from point toward the light.
func (rt *Raytracer) isLit(light lights.Light, toLight, point core.Vec3, self int) bool {
	rt.stats.ShadowRays++

	shadowRay := core.NewRay(point, toLight)
	occluder, hit := rt.intersectionClosest(shadowRay, self)

	return occluder == noShape || hit.T > light.Distance(point)
}

// shadePoint sums the diffuse and specular terms of every unshadowed light
// facing the surface, the reflection term and the ambient term
func (rt *Raytracer) shadePoint(ray core.Ray, index int, point, normal core.Vec3, depth int, influence float64) core.Color {
	mat := rt.scene.Shapes[index].GetMaterial()

	var diffuse, specular core.Color
	for _, light := range rt.scene.Lights {
		toLight := light.Direction(point).Negate()
		incident := normal.Dot(toLight)

		if incident > 0 && rt.isLit(light, toLight, point, index) {
			diffuse = diffuse.Add(shadeDiffuse(incident, light, mat))
			specular = specular.Add(shadeSpecular(ray, normal, toLight, light, mat))
		}
	}

	reflection := rt.shadeReflection(ray, index, point, normal, depth, influence)
	ambient := rt.scene.Ambient.Scale(mat.DiffuseWeight())

	return diffuse.Add(specular).Add(reflection).Add(ambient)
}

// shadeDiffuse is the Lambert term, weighted by the non-reflective share
func shadeDiffuse(incident float64, light lights.Light, mat material.Material) core.Color {
	if mat.Reflection >= 1.0 {
		return core.Color{}
	}
	return light.Emission().Multiply(mat.Color).Scale(incident * mat.DiffuseWeight())
}

// shadeSpecular is the Phong highlight in the light's color
func shadeSpecular(ray core.Ray, normal, toLight core.Vec3, light lights.Light, mat material.Material) core.Color {
	if !mat.HasSpecular() {
		return core.Color{}
	}

	lightReflection := toLight.Reflect(normal)
	alignment := ray.Direction.Dot(lightReflection)
	if alignment <= 0 {
		return core.Color{}
	}

	return light.Emission().Scale(math.Pow(alignment, mat.Specular))
}

// shadeReflection traces the mirror ray while depth and influence allow
func (rt *Raytracer) shadeReflection(ray core.Ray, index int, point, normal core.Vec3, depth int, influence float64) core.Color {
	mat := rt.scene.Shapes[index].GetMaterial()
	if !mat.IsReflective() {
		return core.Color{}
	}

	nextInfluence := influence * mat.Reflection
	if depth >= rt.config.MaxRecursionDepth || nextInfluence < rt.config.MinInfluence {
		return core.Color{}
	}

	direction := ray.Direction.Reflect(normal).Normalize()
	reflected := rt.trace(core.NewRay(point, direction), index, depth+1, nextInfluence)

	return reflected.Scale(mat.Reflection)
}
