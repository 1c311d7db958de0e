package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Light interface for sources that illuminate a shading point directly
type Light interface {
	Type() LightType

	// Direction returns the unit direction the light travels when it reaches
	// point, i.e. FROM the light TO the point. Shading negates it to aim
	// shadow rays at the light.
	Direction(point core.Vec3) core.Vec3

	// Distance returns how far along -Direction(point) the light sits.
	// Occluders farther than this do not cast shadows; +Inf for lights at infinity.
	Distance(point core.Vec3) float64

	// Emission returns the light's color scaled by its intensity
	Emission() core.Color
}
