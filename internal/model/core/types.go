// internal/model/core/types.go
package core

import "math"

// SphereRadius is the radius of the panorama sphere in world units. Every
// authored point lies on (or numerically near) this sphere.
const SphereRadius = 500.0

// Point3D represents a 3D coordinate in camera-relative world space.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sub returns the vector p - q.
func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Midpoint returns the point halfway between p and q.
func (p Point3D) Midpoint(q Point3D) Point3D {
	return Point3D{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2, Z: (p.Z + q.Z) / 2}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point3D) DistanceTo(q Point3D) float64 {
	d := p.Sub(q)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}
