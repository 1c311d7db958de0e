package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestPlane_Intersect(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 3, 0), material.Default())

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "straight down onto front face",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0)),
			shouldHit: true,
			expectedT: 2,
		},
		{
			name:      "oblique hit",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 1).Normalize()),
			shouldHit: true,
			expectedT: 2 * math.Sqrt2,
		},
		{
			name:      "parallel",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "pointing away from front face",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
			shouldHit: false,
		},
		{
			name:      "from behind, towards the back face",
			ray:       core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := plane.Intersect(tt.ray)
			if hit.Ok() != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.shouldHit, hit.Ok(), hit.T)
			}
			if tt.shouldHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestPlane_NormalIsNormalized(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -4), material.Default())
	n := plane.NormalAt(core.NewVec3(10, 3, 0))

	if n != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected [0 0 -1], got %v", n)
	}
}

func TestPlane_BehindOriginIsNotForwardHit(t *testing.T) {
	// Front face points at the origin, but the ray is already past the plane
	plane := NewPlane(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), material.Default())
	ray := core.NewRay(core.NewVec3(0, 0, 4), core.NewVec3(0, 0, -1))

	hit := plane.Intersect(ray)
	if hit.Ok() {
		t.Errorf("Expected no forward hit, got t=%f", hit.T)
	}
	if hit.T >= 0 {
		t.Errorf("Expected negative ray parameter, got %f", hit.T)
	}
}
