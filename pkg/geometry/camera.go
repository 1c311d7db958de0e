package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Width    int       // Image width in pixels
	Height   int       // Image height in pixels
	VFov     float64   // Vertical field of view in degrees
	Position core.Vec3 // Eye position; the camera looks down +Z with +Y up
}

// DefaultCameraConfig returns the 800x600, 45 degree camera at the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:  800,
		Height: 600,
		VFov:   45.0,
	}
}

// MergeCameraConfig applies the non-zero fields of override on top of base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	if override.Position != (core.Vec3{}) {
		result.Position = override.Position
	}
	return result
}

// Camera maps pixel coordinates to primary rays through an image plane one
// unit in front of the eye
type Camera struct {
	config       CameraConfig
	pixelOrigin  core.Vec3 // World position of pixel (0,0)'s center
	offsetWidth  core.Vec3 // Step between horizontally adjacent pixels
	offsetHeight core.Vec3 // Step between vertically adjacent pixels (points down)
}

// NewCamera precomputes the image-plane basis for the given configuration
func NewCamera(config CameraConfig) *Camera {
	fov := core.DegreesToRadians(config.VFov)
	aspectRatio := float64(config.Width) / float64(config.Height)

	planeHeight := 2.0 * math.Tan(fov/2.0)
	planeWidth := planeHeight * aspectRatio

	offsetWidth := core.NewVec3(planeWidth/float64(config.Width), 0, 0)
	offsetHeight := core.NewVec3(0, -planeHeight/float64(config.Height), 0)

	// Top-left corner of the plane, shifted half a pixel to sample pixel centers
	pixelOrigin := config.Position.
		Add(core.NewVec3(-planeWidth/2.0, planeHeight/2.0, 1.0)).
		Add(offsetWidth.Multiply(0.5)).
		Add(offsetHeight.Multiply(0.5))

	return &Camera{
		config:       config,
		pixelOrigin:  pixelOrigin,
		offsetWidth:  offsetWidth,
		offsetHeight: offsetHeight,
	}
}

// GetPrimaryRay returns the unit ray from the eye through the center of pixel (x, y).
// Row 0 is the top of the image.
func (c *Camera) GetPrimaryRay(x, y int) core.Ray {
	direction := c.pixelOrigin.
		Add(c.offsetWidth.Multiply(float64(x))).
		Add(c.offsetHeight.Multiply(float64(y))).
		Subtract(c.config.Position)

	return core.NewRay(c.config.Position, direction.Normalize())
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.config.Height }

// Position returns the eye position
func (c *Camera) Position() core.Vec3 { return c.config.Position }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }
