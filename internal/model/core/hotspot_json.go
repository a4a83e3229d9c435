// internal/model/core/hotspot_json.go
package core

import (
	"encoding/json"
	"fmt"
)

// hotspotWire is the serialized hotspot record shared by persistence and
// the exported tour-data.json.
type hotspotWire struct {
	ID       string          `json:"id"`
	Type     HotspotKind     `json:"type"`
	Position Point3D         `json:"position"`
	Data     json.RawMessage `json:"data"`
	Icon     string          `json:"icon"`
	Color    string          `json:"color"`
}

// MarshalJSON serializes the hotspot union with its kind-specific payload.
// An inconsistent union (kind without matching payload) is an error rather
// than a silently empty record.
func (h Hotspot) MarshalJSON() ([]byte, error) {
	w := hotspotWire{
		ID:       h.ID,
		Type:     h.Kind,
		Position: h.Position,
		Icon:     h.Icon(),
		Color:    fmt.Sprintf("#%06x", h.RGB()),
	}

	var (
		payload any
		err     error
	)
	switch h.Kind {
	case HotspotInfo:
		if h.Info == nil {
			return nil, fmt.Errorf("INFO hotspot %s has no info payload", h.ID)
		}
		payload = h.Info
	case HotspotSceneLink:
		if h.SceneLink == nil {
			return nil, fmt.Errorf("SCENE hotspot %s has no scene link payload", h.ID)
		}
		payload = h.SceneLink
	default:
		return nil, fmt.Errorf("unknown hotspot kind %q", h.Kind)
	}

	w.Data, err = json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON restores the union from its wire form.
func (h *Hotspot) UnmarshalJSON(data []byte) error {
	var w hotspotWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	h.ID = w.ID
	h.Kind = w.Type
	h.Position = w.Position
	h.Info = nil
	h.SceneLink = nil

	switch w.Type {
	case HotspotInfo:
		var info InfoData
		if err := json.Unmarshal(w.Data, &info); err != nil {
			return fmt.Errorf("invalid INFO payload for hotspot %s: %w", w.ID, err)
		}
		h.Info = &info
	case HotspotSceneLink:
		var link SceneLinkData
		if err := json.Unmarshal(w.Data, &link); err != nil {
			return fmt.Errorf("invalid SCENE payload for hotspot %s: %w", w.ID, err)
		}
		h.SceneLink = &link
	default:
		return fmt.Errorf("unknown hotspot kind %q", w.Type)
	}
	return nil
}
