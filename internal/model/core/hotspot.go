// internal/model/core/hotspot.go
package core

// HotspotKind discriminates the hotspot union.
type HotspotKind string

const (
	// HotspotInfo shows a titled text panel when clicked.
	HotspotInfo HotspotKind = "INFO"
	// HotspotSceneLink navigates to another scene when clicked.
	HotspotSceneLink HotspotKind = "SCENE"
)

// InfoData is the payload of an INFO hotspot. Title and Content are both
// required at creation time.
type InfoData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SceneLinkData is the payload of a SCENE hotspot. The target is resolved
// by scene ID; the name is carried only for display and for the exported
// bundle.
type SceneLinkData struct {
	TargetSceneID   string `json:"targetSceneId"`
	TargetSceneName string `json:"targetSceneName"`
	Description     string `json:"description"`
}

// Display colors and icons per hotspot kind, used by the live overlay and
// replicated in the exported player.
const (
	InfoHotspotColor      = 0x00aaff
	SceneLinkHotspotColor = 0xff8800

	InfoHotspotIcon      = "ℹ️"
	SceneLinkHotspotIcon = "➡️"
)

// Hotspot is a fixed 3D marker in a scene. Exactly one of Info and
// SceneLink is non-nil, matching Kind.
type Hotspot struct {
	ID        string         `json:"id"`
	Kind      HotspotKind    `json:"type"`
	Position  Point3D        `json:"position"`
	Info      *InfoData      `json:"-"`
	SceneLink *SceneLinkData `json:"-"`
}

// RGB returns the marker color for the hotspot's kind.
func (h *Hotspot) RGB() uint32 {
	switch h.Kind {
	case HotspotSceneLink:
		return SceneLinkHotspotColor
	default:
		return InfoHotspotColor
	}
}

// Icon returns the glyph shown on the hotspot's screen overlay.
func (h *Hotspot) Icon() string {
	switch h.Kind {
	case HotspotSceneLink:
		return SceneLinkHotspotIcon
	default:
		return InfoHotspotIcon
	}
}
