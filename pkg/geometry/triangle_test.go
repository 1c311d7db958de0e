package geometry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func newUnitTriangle() *Triangle {
	return NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, 0, 0),
		material.Default(),
	)
}

func TestTriangle_Normal(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0.5, -1, 2),
		core.NewVec3(3, 0.25, 1),
		core.NewVec3(-1, 2, 4),
		material.Default(),
	)

	// Reference: unit(AC × AB) computed with gonum
	a := r3.Vec{X: 0.5, Y: -1, Z: 2}
	b := r3.Vec{X: 3, Y: 0.25, Z: 1}
	c := r3.Vec{X: -1, Y: 2, Z: 4}
	want := r3.Unit(r3.Cross(r3.Sub(c, a), r3.Sub(b, a)))

	got := tri.GetNormal()
	if got.Subtract(core.NewVec3(want.X, want.Y, want.Z)).Length() > 1e-12 {
		t.Errorf("Expected normal %v, got %v", want, got)
	}
	if tri.NormalAt(core.NewVec3(100, 100, 100)) != got {
		t.Error("NormalAt should not depend on the query point")
	}
}

func TestTriangle_Intersect(t *testing.T) {
	tri := newUnitTriangle()
	forward := core.NewVec3(0, 0, 1)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		shouldHit bool
	}{
		{"inside", core.NewVec3(0.25, 0.25, -1), forward, true},
		{"inside from the back", core.NewVec3(0.25, 0.25, 1), forward.Negate(), true},
		{"on vertex", core.NewVec3(0, 0, -1), forward, true},
		{"beyond hypotenuse (u+v>1)", core.NewVec3(0.8, 0.8, -1), forward, false},
		{"left of edge (v<0)", core.NewVec3(-0.1, 0.2, -1), forward, false},
		{"below edge (u<0)", core.NewVec3(0.2, -0.1, -1), forward, false},
		{"far outside (u>1)", core.NewVec3(0.1, 1.5, -1), forward, false},
		{"parallel to plane", core.NewVec3(0.25, 0.25, -1), core.NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit := tri.Intersect(ray)
			if hit.Ok() != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.shouldHit, hit.Ok(), hit.T)
			}
			if tt.shouldHit && math.Abs(hit.T-1) > 1e-9 {
				t.Errorf("Expected t=1, got t=%f", hit.T)
			}
		})
	}
}

func TestTriangle_RejectsOutsideButHitsSupportingPlane(t *testing.T) {
	tri := newUnitTriangle()
	supporting := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), material.Default())

	outside := []core.Vec3{
		core.NewVec3(0.8, 0.8, -1),
		core.NewVec3(-0.1, 0.2, -1),
		core.NewVec3(0.2, -0.1, -1),
	}

	for _, origin := range outside {
		ray := core.NewRay(origin, core.NewVec3(0, 0, 1))
		if !supporting.Intersect(ray).Ok() {
			t.Fatalf("Ray from %v should hit the supporting plane", origin)
		}
		if hit := tri.Intersect(ray); hit.Ok() {
			t.Errorf("Ray from %v should miss the triangle, got t=%f", origin, hit.T)
		}
	}
}

func TestTriangle_BehindRayIsNotForwardHit(t *testing.T) {
	tri := newUnitTriangle()
	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1))

	if hit := tri.Intersect(ray); hit.Ok() {
		t.Errorf("Triangle behind the origin should not be a forward hit, got t=%f", hit.T)
	}
}
