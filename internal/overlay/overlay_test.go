package overlay

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/panostudio/engine/internal/model/core"
)

func TestBuildPath_TooFewPoints(t *testing.T) {
	cases := [][]core.Point3D{
		nil,
		{},
		{{X: 0, Y: 0, Z: 500}},
	}
	for _, pts := range cases {
		_, err := BuildPath("p1", core.PathElectricity, pts)
		if !errors.Is(err, ErrTooFewPoints) {
			t.Errorf("points=%v: expected ErrTooFewPoints, got %v", pts, err)
		}
	}
}

func TestBuildPath_SegmentPerPair(t *testing.T) {
	pts := []core.Point3D{
		{X: 0, Y: 0, Z: 500},
		{X: 100, Y: 0, Z: 500},
		{X: 100, Y: 100, Z: 500},
	}

	ov, err := BuildPath("p1", core.PathWaterPipe, pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ov.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(ov.Segments))
	}
	if ov.Marker.Position != pts[0] {
		t.Errorf("marker not at first point: %+v", ov.Marker.Position)
	}
	if ov.Marker.Radius != MarkerRadius {
		t.Errorf("expected marker radius %f, got %f", MarkerRadius, ov.Marker.Radius)
	}

	seg := ov.Segments[0]
	if seg.Length != 100 {
		t.Errorf("expected length 100, got %f", seg.Length)
	}
	wantCenter := core.Point3D{X: 50, Y: 0, Z: 500}
	if seg.Center != wantCenter {
		t.Errorf("expected center %+v, got %+v", wantCenter, seg.Center)
	}
	if seg.Radius != SegmentRadius {
		t.Errorf("expected radius %f, got %f", SegmentRadius, seg.Radius)
	}
}

func TestBuildPath_ShortPairSkippedChainContinues(t *testing.T) {
	// Middle hop is under the 5-unit threshold; the pair after it still
	// produces a segment.
	pts := []core.Point3D{
		{X: 0, Y: 0, Z: 500},
		{X: 100, Y: 0, Z: 500},
		{X: 103, Y: 0, Z: 500},
		{X: 200, Y: 0, Z: 500},
	}

	ov, err := BuildPath("p1", core.PathGas, pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ov.Segments) != 2 {
		t.Fatalf("expected 2 segments (short hop skipped), got %d", len(ov.Segments))
	}
	if ov.Segments[1].Start != pts[2] || ov.Segments[1].End != pts[3] {
		t.Errorf("chain broken after skipped pair: %+v", ov.Segments[1])
	}
}

func TestBuildPath_AllPairsShort(t *testing.T) {
	pts := []core.Point3D{
		{X: 0, Y: 0, Z: 500},
		{X: 1, Y: 0, Z: 500},
		{X: 2, Y: 0, Z: 500},
	}

	ov, err := BuildPath("p1", core.PathElectricity, pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ov.Segments) != 0 {
		t.Errorf("expected 0 segments, got %d", len(ov.Segments))
	}
	// Marker is placed regardless of segment count.
	if ov.Marker.Position != pts[0] {
		t.Errorf("marker missing or misplaced: %+v", ov.Marker)
	}
}

func TestBuildPath_SegmentOrientation(t *testing.T) {
	pts := []core.Point3D{
		{X: 0, Y: 0, Z: 500},
		{X: 0, Y: 80, Z: 500},
	}

	ov, err := BuildPath("p1", core.PathAirConditioning, pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rotating the default up axis by the segment quaternion must yield the
	// segment direction.
	seg := ov.Segments[0]
	got := seg.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
	want := mgl64.Vec3{0, 1, 0} // segment runs along +Y
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("rotated up axis = %v, want %v", got, want)
		}
	}
}

func TestBuildPath_OrientationArbitraryDirection(t *testing.T) {
	pts := []core.Point3D{
		{X: 10, Y: -20, Z: 480},
		{X: -60, Y: 35, Z: 430},
	}

	ov, err := BuildPath("p1", core.PathWasteWater, pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seg := ov.Segments[0]

	d := pts[1].Sub(pts[0])
	want := mgl64.Vec3{d.X, d.Y, d.Z}.Normalize()
	got := seg.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("rotated up axis = %v, want %v", got, want)
		}
	}
}

func TestBuildFromPath_RoundTripIdentical(t *testing.T) {
	p := core.Path{
		ID:   "p-route",
		Kind: core.PathElectricity,
		Points: []core.Point3D{
			{X: 0, Y: 0, Z: 500},
			{X: 100, Y: 0, Z: 480},
			{X: 5, Y: 5, Z: 5},
		},
	}
	p.Color = p.Kind.Color()

	first, err := BuildFromPath(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildFromPath(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Segments) != len(second.Segments) {
		t.Fatalf("segment counts differ: %d vs %d", len(first.Segments), len(second.Segments))
	}
	for i := range first.Segments {
		if first.Segments[i].Center != second.Segments[i].Center ||
			first.Segments[i].Length != second.Segments[i].Length {
			t.Errorf("segment %d differs between builds", i)
		}
	}
	if first.Marker.Position != second.Marker.Position {
		t.Error("marker position differs between builds")
	}
}

func TestBuildHotspotMarker_Colors(t *testing.T) {
	info := core.Hotspot{ID: "h1", Kind: core.HotspotInfo, Position: core.Point3D{Z: 500}}
	link := core.Hotspot{ID: "h2", Kind: core.HotspotSceneLink, Position: core.Point3D{Z: 500}}

	if m := BuildHotspotMarker(info); m.RGB != core.InfoHotspotColor {
		t.Errorf("info marker color = %#x", m.RGB)
	}
	if m := BuildHotspotMarker(link); m.RGB != core.SceneLinkHotspotColor {
		t.Errorf("scene link marker color = %#x", m.RGB)
	}
}
