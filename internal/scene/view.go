package scene

import (
	"github.com/panostudio/engine/internal/model/core"
	"github.com/panostudio/engine/internal/overlay"
)

// View is the live 3D surface the manager drives. The editor shell backs
// it with a real renderer; tests back it with a recording fake.
type View interface {
	// SetPanorama maps the given encoded image onto the sphere. A
	// decode failure must be returned, not rendered as a blank scene.
	SetPanorama(image []byte) error

	// ShowPath adds a built path overlay to the scene graph.
	ShowPath(overlay.PathOverlay)

	// ShowHotspotMarker adds a hotspot marker to the scene graph.
	ShowHotspotMarker(overlay.HotspotMarker)

	// LivePaths returns the path records currently shown as overlays,
	// including edits not yet written back to the scene record.
	LivePaths() []core.Path

	// ClearOverlays removes all path overlays and hotspot markers.
	ClearOverlays()
}

// NullView ignores all drawing. Used when no rendering surface is
// attached, such as headless export runs.
type NullView struct{}

var _ View = (*NullView)(nil)

func (NullView) SetPanorama([]byte) error                { return nil }
func (NullView) ShowPath(overlay.PathOverlay)            {}
func (NullView) ShowHotspotMarker(overlay.HotspotMarker) {}
func (NullView) LivePaths() []core.Path                  { return nil }
func (NullView) ClearOverlays()                          {}
