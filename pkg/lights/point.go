package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Point is a light at a fixed position radiating equally in all directions.
// There is no distance falloff.
type Point struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
}

// NewPoint creates a point light at position
func NewPoint(position core.Vec3, color core.Color) *Point {
	return &Point{
		Position:  position,
		Color:     color,
		Intensity: 1.0,
	}
}

// Type returns the light type
func (p *Point) Type() LightType {
	return LightTypePoint
}

// Direction returns the unit direction from the light to point.
// A point at the light position yields NaN components.
func (p *Point) Direction(point core.Vec3) core.Vec3 {
	return point.Subtract(p.Position).Normalize()
}

// Distance returns the distance between the light and point
func (p *Point) Distance(point core.Vec3) float64 {
	return point.Subtract(p.Position).Length()
}

// Emission returns color × intensity
func (p *Point) Emission() core.Color {
	return p.Color.Scale(p.Intensity)
}

func (p *Point) String() string {
	return fmt.Sprintf("point(pos=%v, color=%v, intensity=%g)", p.Position, p.Color, p.Intensity)
}
