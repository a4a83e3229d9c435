// Package scene owns the scene collection: creation, the active scene,
// committed path and hotspot records, and their persistence. The manager
// is the sole writer of persisted scene state; authoring components hand
// it finished records.
package scene

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/panostudio/engine/internal/imaging"
	"github.com/panostudio/engine/internal/model/core"
	"github.com/panostudio/engine/internal/overlay"
	"github.com/panostudio/engine/internal/storage"
)

var (
	// ErrSceneNotFound is returned when an operation names a scene id
	// that does not resolve.
	ErrSceneNotFound = errors.New("scene not found")

	// ErrInvalidHotspot is returned when a hotspot record is internally
	// inconsistent or its scene-link target does not exist.
	ErrInvalidHotspot = errors.New("invalid hotspot")
)

// Manager owns the scene collection and the active scene.
type Manager struct {
	logger zerolog.Logger
	store  storage.Store
	view   View

	scenes   []core.Scene
	activeID string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.logger = log }
}

// WithView attaches a live rendering surface.
func WithView(v View) Option {
	return func(m *Manager) { m.view = v }
}

// NewManager creates a Manager over the given store.
func NewManager(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		logger: zerolog.Nop(),
		store:  store,
		view:   NullView{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load hydrates the collection from the store. The first stored scene
// becomes active and its overlays are rebuilt.
func (m *Manager) Load() error {
	scenes, err := m.store.LoadScenes()
	if err != nil {
		return fmt.Errorf("failed to load scenes: %w", err)
	}
	m.scenes = scenes
	m.activeID = ""

	if len(m.scenes) == 0 {
		return nil
	}
	return m.SwitchTo(m.scenes[0].ID)
}

// Scenes returns a copy of the scene collection.
func (m *Manager) Scenes() []core.Scene {
	out := make([]core.Scene, len(m.scenes))
	copy(out, m.scenes)
	return out
}

// Active returns the active scene, if any.
func (m *Manager) Active() (*core.Scene, bool) {
	s := m.find(m.activeID)
	if s == nil {
		return nil, false
	}
	copied := *s
	return &copied, true
}

// ActiveID returns the id of the active scene, or "".
func (m *Manager) ActiveID() string {
	return m.activeID
}

// LinkCandidates returns every scene except the active one, in creation
// order. These are the valid targets for a scene-link hotspot.
func (m *Manager) LinkCandidates() []core.Scene {
	out := make([]core.Scene, 0, len(m.scenes))
	for _, s := range m.scenes {
		if s.ID != m.activeID {
			out = append(out, s)
		}
	}
	return out
}

// CreateScene decodes the panorama image, derives the preview copy,
// assigns a fresh id and persists the grown collection. The first scene
// created becomes active.
func (m *Manager) CreateScene(name string, imageData []byte) (*core.Scene, error) {
	preview, info, err := imaging.MakePreview(imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to build preview image: %w", err)
	}

	scene := core.Scene{
		ID:            uuid.New().String(),
		Name:          name,
		PreviewImage:  preview,
		OriginalImage: imageData,
		CreatedAt:     time.Now().UTC(),
	}
	m.scenes = append(m.scenes, scene)
	if err := m.persist(); err != nil {
		m.scenes = m.scenes[:len(m.scenes)-1]
		return nil, err
	}

	m.logger.Info().
		Str("sceneId", scene.ID).
		Str("name", name).
		Int("previewWidth", info.Width).
		Int("previewHeight", info.Height).
		Msg("Created scene")

	if m.activeID == "" {
		if err := m.SwitchTo(scene.ID); err != nil {
			return nil, err
		}
	}
	copied := scene
	return &copied, nil
}

// SwitchTo makes the named scene active. Live path edits on the outgoing
// scene are flushed back into its record before its overlays are torn
// down. An unknown id is a no-op.
func (m *Manager) SwitchTo(sceneID string) error {
	target := m.find(sceneID)
	if target == nil {
		m.logger.Warn().Str("sceneId", sceneID).Msg("Switch to unknown scene ignored")
		return nil
	}

	if outgoing := m.find(m.activeID); outgoing != nil {
		if live := m.view.LivePaths(); live != nil {
			outgoing.Paths = live
		}
	}

	m.activeID = target.ID
	m.view.ClearOverlays()

	if err := m.view.SetPanorama(target.PreviewImage); err != nil {
		return fmt.Errorf("failed to load panorama for scene %s: %w", target.ID, err)
	}
	if err := m.rebuildOverlays(target); err != nil {
		return err
	}

	m.logger.Info().Str("sceneId", target.ID).Str("name", target.Name).Msg("Switched scene")
	return m.persist()
}

// AddPath appends a committed path to the named scene and persists. The
// overlay is shown when the scene is active.
func (m *Manager) AddPath(sceneID string, path core.Path) error {
	target := m.find(sceneID)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}
	if len(path.Points) < 2 {
		return fmt.Errorf("path %s has %d points, need at least 2", path.ID, len(path.Points))
	}

	target.Paths = append(target.Paths, path)
	if err := m.persist(); err != nil {
		target.Paths = target.Paths[:len(target.Paths)-1]
		return err
	}

	if sceneID == m.activeID {
		ov, err := overlay.BuildFromPath(path)
		if err != nil {
			return err
		}
		m.view.ShowPath(ov)
	}
	return nil
}

// AddHotspot appends a hotspot to the named scene and persists. A
// scene-link hotspot must target an existing scene.
func (m *Manager) AddHotspot(sceneID string, h core.Hotspot) (*core.Hotspot, error) {
	target := m.find(sceneID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}
	if err := m.validateHotspot(h); err != nil {
		return nil, err
	}

	target.Hotspots = append(target.Hotspots, h)
	if err := m.persist(); err != nil {
		target.Hotspots = target.Hotspots[:len(target.Hotspots)-1]
		return nil, err
	}

	if sceneID == m.activeID {
		m.view.ShowHotspotMarker(overlay.BuildHotspotMarker(h))
	}

	m.logger.Info().
		Str("sceneId", sceneID).
		Str("hotspotId", h.ID).
		Str("kind", string(h.Kind)).
		Msg("Added hotspot")
	copied := h
	return &copied, nil
}

// UpdatePaths replaces the named scene's path list and persists. Paths
// with fewer than two points are dropped.
func (m *Manager) UpdatePaths(sceneID string, paths []core.Path) error {
	target := m.find(sceneID)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}

	kept := make([]core.Path, 0, len(paths))
	for _, p := range paths {
		if len(p.Points) < 2 {
			m.logger.Warn().Str("pathId", p.ID).Msg("Dropping path with fewer than 2 points")
			continue
		}
		kept = append(kept, p)
	}

	prev := target.Paths
	target.Paths = kept
	if err := m.persist(); err != nil {
		target.Paths = prev
		return err
	}
	return nil
}

// GetExportableImage returns the full-resolution panorama for export,
// distinct from the preview used while authoring.
func (m *Manager) GetExportableImage(sceneID string) ([]byte, error) {
	target := m.find(sceneID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}
	if len(target.OriginalImage) == 0 {
		return nil, fmt.Errorf("scene %s has no exportable image", sceneID)
	}
	return target.OriginalImage, nil
}

// RemoveScene deletes the named scene. Removing the active scene clears
// the view. Unknown ids are ignored.
func (m *Manager) RemoveScene(sceneID string) error {
	idx := -1
	for i := range m.scenes {
		if m.scenes[i].ID == sceneID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	prevScenes := m.scenes
	prevActive := m.activeID
	kept := make([]core.Scene, 0, len(m.scenes)-1)
	kept = append(kept, m.scenes[:idx]...)
	kept = append(kept, m.scenes[idx+1:]...)
	m.scenes = kept
	if m.activeID == sceneID {
		m.activeID = ""
	}
	if err := m.persist(); err != nil {
		m.scenes = prevScenes
		m.activeID = prevActive
		return err
	}

	if prevActive == sceneID {
		m.view.ClearOverlays()
	}
	m.logger.Info().Str("sceneId", sceneID).Msg("Removed scene")
	return nil
}

// RemovePath deletes a path from the named scene. Unknown path ids are
// ignored.
func (m *Manager) RemovePath(sceneID, pathID string) error {
	target := m.find(sceneID)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}

	kept := make([]core.Path, 0, len(target.Paths))
	removed := false
	for _, p := range target.Paths {
		if p.ID == pathID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return nil
	}

	prev := target.Paths
	target.Paths = kept
	if err := m.persist(); err != nil {
		target.Paths = prev
		return err
	}
	return m.refreshActive(sceneID, target)
}

// RemoveHotspot deletes a hotspot from the named scene. Unknown hotspot
// ids are ignored.
func (m *Manager) RemoveHotspot(sceneID, hotspotID string) error {
	target := m.find(sceneID)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}

	kept := make([]core.Hotspot, 0, len(target.Hotspots))
	removed := false
	for _, h := range target.Hotspots {
		if h.ID == hotspotID {
			removed = true
			continue
		}
		kept = append(kept, h)
	}
	if !removed {
		return nil
	}

	prev := target.Hotspots
	target.Hotspots = kept
	if err := m.persist(); err != nil {
		target.Hotspots = prev
		return err
	}
	return m.refreshActive(sceneID, target)
}

func (m *Manager) find(sceneID string) *core.Scene {
	if sceneID == "" {
		return nil
	}
	for i := range m.scenes {
		if m.scenes[i].ID == sceneID {
			return &m.scenes[i]
		}
	}
	return nil
}

func (m *Manager) validateHotspot(h core.Hotspot) error {
	switch h.Kind {
	case core.HotspotInfo:
		if h.Info == nil {
			return fmt.Errorf("%w: info hotspot %s has no data", ErrInvalidHotspot, h.ID)
		}
	case core.HotspotSceneLink:
		if h.SceneLink == nil {
			return fmt.Errorf("%w: scene hotspot %s has no data", ErrInvalidHotspot, h.ID)
		}
		if m.find(h.SceneLink.TargetSceneID) == nil {
			return fmt.Errorf("%w: target scene %s does not exist", ErrInvalidHotspot, h.SceneLink.TargetSceneID)
		}
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidHotspot, h.Kind)
	}
	return nil
}

// rebuildOverlays redraws every path and hotspot of the given scene.
func (m *Manager) rebuildOverlays(s *core.Scene) error {
	for _, p := range s.Paths {
		ov, err := overlay.BuildFromPath(p)
		if err != nil {
			return fmt.Errorf("failed to rebuild path %s: %w", p.ID, err)
		}
		m.view.ShowPath(ov)
	}
	for _, h := range s.Hotspots {
		m.view.ShowHotspotMarker(overlay.BuildHotspotMarker(h))
	}
	return nil
}

// refreshActive redraws the view when a record of the active scene
// changed outside the normal add flow.
func (m *Manager) refreshActive(sceneID string, s *core.Scene) error {
	if sceneID != m.activeID {
		return nil
	}
	m.view.ClearOverlays()
	return m.rebuildOverlays(s)
}

// persist writes the whole collection in one replace-all operation.
func (m *Manager) persist() error {
	if err := m.store.SaveScenes(m.scenes); err != nil {
		return fmt.Errorf("failed to persist scenes: %w", err)
	}
	return nil
}
