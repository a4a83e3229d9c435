// Package overlay materializes committed paths and hotspots into renderable
// 3D primitives. The exported player replicates exactly these rules, so any
// change here must be mirrored in the generated player script.
package overlay

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/panostudio/engine/internal/model/core"
)

const (
	// MinSegmentLength is the Euclidean distance below which a point pair
	// produces no segment. Keeps overlay geometry numerically stable around
	// near-duplicate points; the polyline still connects logically.
	MinSegmentLength = 5.0

	// SegmentRadius is the cylinder radius of a path segment.
	SegmentRadius = 3.5

	// MarkerRadius is the radius of the sphere placed at a path's first point.
	MarkerRadius = 6.0

	// HotspotMarkerRadius is the radius of a hotspot's 3D marker sphere.
	HotspotMarkerRadius = 10.0
)

// ErrTooFewPoints is returned when a polyline with fewer than two points is
// materialized.
var ErrTooFewPoints = errors.New("path needs at least 2 points")

// Segment is one straight piece of a path: a cylinder oriented from the
// default up axis to the segment direction and positioned at the midpoint.
type Segment struct {
	PathID string
	Kind   core.PathKind
	Start  core.Point3D
	End    core.Point3D

	Center   core.Point3D
	Length   float64
	Radius   float64
	Rotation mgl64.Quat
}

// Marker is the sphere placed at the first point of a committed path.
type Marker struct {
	PathID   string
	Kind     core.PathKind
	Position core.Point3D
	Radius   float64
}

// PathOverlay is the full materialization of one committed path.
type PathOverlay struct {
	PathID   string
	Kind     core.PathKind
	Segments []Segment
	Marker   Marker
}

// HotspotMarker is the 3D marker for a placed hotspot, colored by kind.
type HotspotMarker struct {
	HotspotID string
	Kind      core.HotspotKind
	Position  core.Point3D
	Radius    float64
	RGB       uint32
}

// BuildPath materializes a polyline. For each consecutive point pair at
// distance >= MinSegmentLength one segment is produced; shorter pairs are
// skipped without breaking the chain. A marker at the first point is always
// produced.
func BuildPath(pathID string, kind core.PathKind, points []core.Point3D) (PathOverlay, error) {
	if len(points) < 2 {
		return PathOverlay{}, ErrTooFewPoints
	}

	ov := PathOverlay{
		PathID: pathID,
		Kind:   kind,
		Marker: Marker{
			PathID:   pathID,
			Kind:     kind,
			Position: points[0],
			Radius:   MarkerRadius,
		},
	}

	up := mgl64.Vec3{0, 1, 0}
	for i := 0; i < len(points)-1; i++ {
		start, end := points[i], points[i+1]
		dist := start.DistanceTo(end)
		if dist < MinSegmentLength {
			continue
		}

		dir := mgl64.Vec3{end.X - start.X, end.Y - start.Y, end.Z - start.Z}.Normalize()
		ov.Segments = append(ov.Segments, Segment{
			PathID:   pathID,
			Kind:     kind,
			Start:    start,
			End:      end,
			Center:   start.Midpoint(end),
			Length:   dist,
			Radius:   SegmentRadius,
			Rotation: mgl64.QuatBetweenVectors(up, dir),
		})
	}

	return ov, nil
}

// BuildFromPath materializes a persisted path record.
func BuildFromPath(p core.Path) (PathOverlay, error) {
	return BuildPath(p.ID, p.Kind, p.Points)
}

// BuildHotspotMarker materializes a hotspot's 3D marker.
func BuildHotspotMarker(h core.Hotspot) HotspotMarker {
	return HotspotMarker{
		HotspotID: h.ID,
		Kind:      h.Kind,
		Position:  h.Position,
		Radius:    HotspotMarkerRadius,
		RGB:       h.RGB(),
	}
}
