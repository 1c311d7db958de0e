package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	PrimaryRays     int           // Camera rays cast
	ShadowRays      int           // Occlusion tests toward lights
	ReflectionRays  int           // Mirror rays cast from reflective surfaces
	MaxDepthReached int           // Deepest reflection depth of any ray
	Duration        time.Duration // Wall time of the render
}

// TotalRays returns the number of rays of every kind
func (s RenderStats) TotalRays() int {
	return s.PrimaryRays + s.ShadowRays + s.ReflectionRays
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d primary, %d shadow, %d reflection rays, max depth %d in %v",
		s.TotalPixels, s.PrimaryRays, s.ShadowRays, s.ReflectionRays, s.MaxDepthReached, s.Duration)
}
