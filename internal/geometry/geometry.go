// Package geometry converts between 2D pointer positions and 3D points on
// the panorama sphere. It is a pure function of the camera and the sphere:
// no state is kept here.
package geometry

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/panostudio/engine/internal/model/core"
)

// ErrNoIntersection is returned when a pointer ray misses the sphere. For a
// camera enclosed by the panorama sphere this should not happen, but callers
// must treat it as a normal miss rather than a fault.
var ErrNoIntersection = errors.New("ray does not intersect the sphere")

// Camera describes the viewer: position, look direction, and the projection
// used by the render viewport.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FovYDegrees float64
	Width       float64
	Height      float64
	Near        float64
	Far         float64
}

// NewCamera returns a camera at the sphere center with the editor's default
// projection (75° vertical FOV, matching the authoring viewport).
func NewCamera(width, height float64) Camera {
	return Camera{
		Position:    mgl64.Vec3{0, 0, 0.1},
		Target:      mgl64.Vec3{0, 0, 0},
		Up:          mgl64.Vec3{0, 1, 0},
		FovYDegrees: 75,
		Width:       width,
		Height:      height,
		Near:        0.1,
		Far:         2000,
	}
}

func (c Camera) view() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

func (c Camera) projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovYDegrees), c.Width/c.Height, c.Near, c.Far)
}

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// PointerRay casts a ray from the camera through a pointer position given in
// viewport pixels (origin top-left, as delivered by pointer events).
func PointerRay(cam Camera, px, py float64) (Ray, error) {
	// Window coordinates are bottom-left origin for unprojection.
	wy := cam.Height - py

	near, err := mgl64.UnProject(
		mgl64.Vec3{px, wy, 0},
		cam.view(), cam.projection(),
		0, 0, int(cam.Width), int(cam.Height),
	)
	if err != nil {
		return Ray{}, err
	}
	far, err := mgl64.UnProject(
		mgl64.Vec3{px, wy, 1},
		cam.view(), cam.projection(),
		0, 0, int(cam.Width), int(cam.Height),
	)
	if err != nil {
		return Ray{}, err
	}

	dir := far.Sub(near)
	if dir.Len() == 0 {
		return Ray{}, ErrNoIntersection
	}
	return Ray{Origin: cam.Position, Direction: dir.Normalize()}, nil
}

// IntersectSphere returns the first intersection of the ray with a sphere of
// the given radius centered at the origin. With the camera inside the sphere
// the nearest positive root is the forward hit.
func IntersectSphere(r Ray, radius float64) (core.Point3D, error) {
	// |o + t*d|^2 = radius^2, solved for t >= 0.
	oc := r.Origin
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - 4*c
	if disc < 0 {
		return core.Point3D{}, ErrNoIntersection
	}

	sq := math.Sqrt(disc)
	t := (-b - sq) / 2
	if t < 0 {
		t = (-b + sq) / 2
	}
	if t < 0 {
		return core.Point3D{}, ErrNoIntersection
	}

	hit := oc.Add(r.Direction.Mul(t))
	return core.Point3D{X: hit.X(), Y: hit.Y(), Z: hit.Z()}, nil
}

// PickSpherePoint is the common editor operation: pointer pixels in, world
// point on the panorama sphere out.
func PickSpherePoint(cam Camera, px, py float64) (core.Point3D, error) {
	ray, err := PointerRay(cam, px, py)
	if err != nil {
		return core.Point3D{}, err
	}
	return IntersectSphere(ray, core.SphereRadius)
}

// ProjectToViewport projects a world point to viewport pixels (origin
// top-left). visible is false when the point is behind the camera; such
// points must not be drawn even though coordinates are still returned.
func ProjectToViewport(cam Camera, p core.Point3D) (x, y float64, visible bool) {
	world := mgl64.Vec3{p.X, p.Y, p.Z}

	// A point is behind the camera when it projects onto the negative view
	// axis.
	forward := cam.Target.Sub(cam.Position)
	if forward.Len() == 0 {
		forward = mgl64.Vec3{0, 0, -1}
	}
	behind := world.Sub(cam.Position).Dot(forward) < 0

	win := mgl64.Project(world, cam.view(), cam.projection(), 0, 0, int(cam.Width), int(cam.Height))
	return win.X(), cam.Height - win.Y(), !behind
}
