package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/panostudio/engine/internal/model/core"
)

func TestIntersectSphere_FromCenter(t *testing.T) {
	r := Ray{Origin: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{0, 0, -1}}

	hit, err := IntersectSphere(r, core.SphereRadius)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit.Z != -core.SphereRadius {
		t.Errorf("expected Z=%f, got %f", -core.SphereRadius, hit.Z)
	}
	if hit.X != 0 || hit.Y != 0 {
		t.Errorf("expected hit on the -Z axis, got %+v", hit)
	}
}

func TestIntersectSphere_InsideSphereOffCenter(t *testing.T) {
	// Camera slightly off-center, as in the editor default.
	r := Ray{Origin: mgl64.Vec3{0, 0, 0.1}, Direction: mgl64.Vec3{1, 0, 0}}

	hit, err := IntersectSphere(r, core.SphereRadius)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dist := math.Sqrt(hit.X*hit.X + hit.Y*hit.Y + hit.Z*hit.Z)
	if math.Abs(dist-core.SphereRadius) > 1e-9 {
		t.Errorf("hit not on sphere surface: distance %f", dist)
	}
	if hit.X <= 0 {
		t.Errorf("expected forward hit, got %+v", hit)
	}
}

func TestIntersectSphere_Miss(t *testing.T) {
	// Ray starting outside the sphere and pointing away.
	r := Ray{Origin: mgl64.Vec3{1000, 0, 0}, Direction: mgl64.Vec3{1, 0, 0}}

	_, err := IntersectSphere(r, core.SphereRadius)
	if !errors.Is(err, ErrNoIntersection) {
		t.Fatalf("expected ErrNoIntersection, got %v", err)
	}
}

func TestPickSpherePoint_CenterOfViewport(t *testing.T) {
	cam := NewCamera(1920, 1080)

	hit, err := PickSpherePoint(cam, 960, 540)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dist := math.Sqrt(hit.X*hit.X + hit.Y*hit.Y + hit.Z*hit.Z)
	if math.Abs(dist-core.SphereRadius) > 1e-6 {
		t.Errorf("hit not on sphere surface: distance %f", dist)
	}
	// The default camera looks down -Z from just in front of the origin.
	if hit.Z >= 0 {
		t.Errorf("expected hit in front of camera (Z<0), got %+v", hit)
	}
}

func TestProjectToViewport_RoundTrip(t *testing.T) {
	cam := NewCamera(1280, 720)

	cases := []struct {
		name   string
		px, py float64
	}{
		{"center", 640, 360},
		{"upper left", 200, 100},
		{"lower right", 1100, 650},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, err := PickSpherePoint(cam, tc.px, tc.py)
			if err != nil {
				t.Fatalf("pick failed: %v", err)
			}

			x, y, visible := ProjectToViewport(cam, hit)
			if !visible {
				t.Fatal("picked point reported as not visible")
			}
			if math.Abs(x-tc.px) > 0.5 || math.Abs(y-tc.py) > 0.5 {
				t.Errorf("round trip drifted: want (%f,%f), got (%f,%f)", tc.px, tc.py, x, y)
			}
		})
	}
}

func TestProjectToViewport_BehindCamera(t *testing.T) {
	cam := NewCamera(1280, 720)

	// Default camera looks toward -Z, so +Z is behind it.
	_, _, visible := ProjectToViewport(cam, core.Point3D{X: 0, Y: 0, Z: 400})
	if visible {
		t.Error("point behind the camera reported as visible")
	}
}
