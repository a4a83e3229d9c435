// internal/model/core/scene.go
package core

import "time"

// Scene is one panorama plus its authored overlays: the unit of navigation
// in a multi-scene tour. PreviewImage is the reduced, recompressed copy
// used as the live sphere texture; OriginalImage keeps the full-resolution
// upload for export.
type Scene struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	PreviewImage  []byte    `json:"-"`
	OriginalImage []byte    `json:"-"`
	Paths         []Path    `json:"paths"`
	Hotspots      []Hotspot `json:"hotspots"`
	CreatedAt     time.Time `json:"created"`
}

// FindHotspot returns the hotspot with the given ID, if present.
func (s *Scene) FindHotspot(id string) (*Hotspot, bool) {
	for i := range s.Hotspots {
		if s.Hotspots[i].ID == id {
			return &s.Hotspots[i], true
		}
	}
	return nil, false
}

// Project is the legacy single-panorama persistence unit. It predates the
// multi-scene model and is kept alongside it: operations on a Project never
// touch scene state.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
	Paths        []Path    `json:"paths"`
	ImageData    []byte    `json:"-"`
}
