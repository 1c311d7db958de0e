package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Directional is a light infinitely far away; every point sees it along the
// same direction and nothing is ever beyond it
type Directional struct {
	direction core.Vec3 // Unit direction of travel
	Color     core.Color
	Intensity float64
}

// NewDirectional creates a directional light traveling along direction.
// The direction is normalized; a zero vector yields NaN components.
func NewDirectional(direction core.Vec3, color core.Color) *Directional {
	return &Directional{
		direction: direction.Normalize(),
		Color:     color,
		Intensity: 1.0,
	}
}

// Type returns the light type
func (d *Directional) Type() LightType {
	return LightTypeDirectional
}

// Direction returns the same unit direction for every point
func (d *Directional) Direction(point core.Vec3) core.Vec3 {
	return d.direction
}

// Distance is infinite for a directional light
func (d *Directional) Distance(point core.Vec3) float64 {
	return math.Inf(1)
}

// Emission returns color × intensity
func (d *Directional) Emission() core.Color {
	return d.Color.Scale(d.Intensity)
}

func (d *Directional) String() string {
	return fmt.Sprintf("directional(dir=%v, color=%v, intensity=%g)", d.direction, d.Color, d.Intensity)
}
