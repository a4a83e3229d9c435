// internal/model/core/path.go
package core

import "fmt"

// PathKind classifies a utility path overlay. Each kind maps to a fixed
// display color.
type PathKind string

const (
	PathElectricity     PathKind = "EL"
	PathAirConditioning PathKind = "AC"
	PathWaterPipe       PathKind = "WP"
	PathWasteWater      PathKind = "WA"
	PathGas             PathKind = "GS"
)

// pathColors maps each kind to its 24-bit RGB display color.
var pathColors = map[PathKind]uint32{
	PathElectricity:     0xffcc00,
	PathAirConditioning: 0x00ccff,
	PathWaterPipe:       0x0066cc,
	PathWasteWater:      0xff3300,
	PathGas:             0x33cc33,
}

// Valid reports whether k is one of the known utility kinds.
func (k PathKind) Valid() bool {
	_, ok := pathColors[k]
	return ok
}

// RGB returns the 24-bit display color for the kind, or white for an
// unknown kind.
func (k PathKind) RGB() uint32 {
	if c, ok := pathColors[k]; ok {
		return c
	}
	return 0xffffff
}

// Color returns the display color as a "#rrggbb" hex string. The color is
// derived from the kind but persisted redundantly on each path so exported
// bundles stay self-describing.
func (k PathKind) Color() string {
	return fmt.Sprintf("#%06x", k.RGB())
}

// PathKinds lists all kinds in display order.
var PathKinds = []PathKind{
	PathElectricity,
	PathAirConditioning,
	PathWaterPipe,
	PathWasteWater,
	PathGas,
}

// Path is a committed utility polyline: an ordered sequence of at least two
// points on the panorama sphere. A path with fewer than two points is never
// persisted.
type Path struct {
	ID     string    `json:"pathId"`
	Kind   PathKind  `json:"type"`
	Color  string    `json:"color"`
	Points []Point3D `json:"points"`
}
