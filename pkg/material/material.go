package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to the lights in a scene
type Material struct {
	Color      core.Color // Diffuse surface color
	Specular   float64    // Phong exponent ("shininess"); highlights need > 1
	Reflection float64    // Mirror coefficient: 0 is fully diffuse, 1 a perfect mirror
}

// New creates a material from a color, specular exponent and reflection coefficient
func New(color core.Color, specular, reflection float64) Material {
	return Material{
		Color:      color,
		Specular:   specular,
		Reflection: reflection,
	}
}

// Default returns the material shapes get when none is given: matte light gray
func Default() Material {
	return New(core.LightGray, 0, 0)
}

// HasSpecular reports whether the exponent is large enough to produce highlights
func (m Material) HasSpecular() bool {
	return m.Specular > 1
}

// IsReflective reports whether reflected rays contribute to the surface color
func (m Material) IsReflective() bool {
	return m.Reflection > 0
}

// DiffuseWeight is the share of light left for diffuse and ambient terms
func (m Material) DiffuseWeight() float64 {
	return 1 - m.Reflection
}

func (m Material) String() string {
	return fmt.Sprintf("material(color=%v, specular=%g, reflection=%g)", m.Color, m.Specular, m.Reflection)
}
