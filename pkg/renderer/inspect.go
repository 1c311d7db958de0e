package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LightContribution describes how one light affects an inspected point
type LightContribution struct {
	Index    int        // Position in the scene's light list
	Incident float64    // Cosine between the normal and the direction to the light
	Lit      bool       // Faces the light and nothing blocks it
	Diffuse  core.Color // Lambert term, zero when not lit
	Specular core.Color // Highlight term, zero when not lit
}

// InspectResult describes what the primary ray through a pixel hits
type InspectResult struct {
	X, Y       int
	Ray        core.Ray
	Hit        bool
	Shape      geometry.Shape // Nil on a miss
	ShapeIndex int            // Position in the scene's shape list, -1 on a miss
	Surface    geometry.Surface
	T          float64
	Point      core.Vec3
	Normal     core.Vec3
	Material   material.Material
	Lights     []LightContribution
	Color      core.Color // Final clamped pixel color
}

// Inspect traces the primary ray through pixel (x, y) and reports the hit
// along with each light's contribution. Render statistics are not affected.
func (rt *Raytracer) Inspect(x, y int) InspectResult {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	saved := rt.stats
	defer func() { rt.stats = saved }()

	ray := rt.scene.Camera.GetPrimaryRay(x, y)
	result := InspectResult{X: x, Y: y, Ray: ray, ShapeIndex: -1}

	index, hit := rt.intersectionClosest(ray, noShape)
	if index == noShape {
		result.Color = rt.scene.Background
		return result
	}

	shape := rt.scene.Shapes[index]
	result.Hit = true
	result.Shape = shape
	result.ShapeIndex = index
	result.Surface = hit.Surface
	result.T = hit.T
	result.Point = hit.Point(ray)
	result.Normal = hit.Normal(result.Point)
	result.Material = shape.GetMaterial()

	for i, light := range rt.scene.Lights {
		toLight := light.Direction(result.Point).Negate()
		contribution := LightContribution{
			Index:    i,
			Incident: result.Normal.Dot(toLight),
		}
		if contribution.Incident > 0 && rt.isLit(light, toLight, result.Point, index) {
			contribution.Lit = true
			contribution.Diffuse = shadeDiffuse(contribution.Incident, light, result.Material)
			contribution.Specular = shadeSpecular(ray, result.Normal, toLight, light, result.Material)
		}
		result.Lights = append(result.Lights, contribution)
	}

	result.Color = rt.castRay(ray, 0, 1.0)

	return result
}
