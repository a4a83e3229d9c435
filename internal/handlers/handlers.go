// Package handlers adapts shell input commands onto the authoring
// components. It owns no state of its own: every command parses its
// arguments and calls into the session, the scene manager or the
// exporter.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/panostudio/engine/internal/dispatcher"
	"github.com/panostudio/engine/internal/export"
	"github.com/panostudio/engine/internal/geometry"
	"github.com/panostudio/engine/internal/model/core"
	"github.com/panostudio/engine/internal/scene"
	"github.com/panostudio/engine/internal/session"
)

// ErrNoActiveScene is returned when an authoring command runs before any
// scene exists.
var ErrNoActiveScene = errors.New("no active scene")

// kindKeys maps the number-row keys to utility kinds.
var kindKeys = map[string]core.PathKind{
	"1": core.PathElectricity,
	"2": core.PathAirConditioning,
	"3": core.PathWaterPipe,
	"4": core.PathWasteWater,
	"5": core.PathGas,
}

// Dependencies holds everything the command handlers call into.
type Dependencies struct {
	Session  *session.Session
	Scenes   *scene.Manager
	Exporter *export.Exporter
	Camera   *geometry.Camera
	Logger   zerolog.Logger
}

// Service routes shell commands to the authoring components.
type Service struct {
	deps Dependencies
}

// NewService creates a handler service.
func NewService(deps Dependencies) *Service {
	return &Service{deps: deps}
}

// RegisterAll wires every editor command into the dispatcher. Export is
// buffered so archive generation never stalls input handling.
func (s *Service) RegisterAll(d *dispatcher.Dispatcher) {
	d.Register("pointer:click", s.PointerClick, dispatcher.Logged())
	d.Register("pointer:move", s.PointerMove)
	d.Register("key:enter", s.CommitPath)
	d.Register("key:backspace", s.UndoPoint)
	d.Register("key:r", s.RedoPoint)
	d.Register("key:escape", s.Cancel)
	d.Register("key:n", s.ToggleDrawMode)
	for key := range kindKeys {
		d.Register("key:"+key, s.SelectKind)
	}
	d.Register("hotspot:arm", s.ArmHotspot)
	d.Register("scene:create", s.CreateScene, dispatcher.Logged())
	d.Register("scene:switch", s.SwitchScene, dispatcher.Logged())
	d.Register("tour:export", s.ExportTour, dispatcher.Buffered(4), dispatcher.Logged())
}

// PointerClick resolves a viewport click to a point on the sphere and
// routes it. An armed hotspot placement wins over path drawing; with
// neither mode active the click is left to camera controls.
func (s *Service) PointerClick(e dispatcher.Event) (any, error) {
	if len(e.Args) < 2 {
		return nil, fmt.Errorf("pointer:click needs x and y, got %d args", len(e.Args))
	}
	px, err := strconv.ParseFloat(e.Args[0], 64)
	if err != nil {
		return nil, fmt.Errorf("bad x coordinate %q: %w", e.Args[0], err)
	}
	py, err := strconv.ParseFloat(e.Args[1], 64)
	if err != nil {
		return nil, fmt.Errorf("bad y coordinate %q: %w", e.Args[1], err)
	}

	point, err := geometry.PickSpherePoint(*s.deps.Camera, px, py)
	if err != nil {
		return nil, err
	}

	if _, armed := s.deps.Session.Armed(); armed {
		return s.placeHotspot(point)
	}
	if s.deps.Session.DrawMode() {
		if err := s.deps.Session.AddPoint(point); err != nil {
			return nil, err
		}
		return point, nil
	}
	return nil, nil
}

// PointerMove tracks the sphere point under the cursor for the draft
// preview marker. Misses clear the marker instead of failing.
func (s *Service) PointerMove(e dispatcher.Event) (any, error) {
	if len(e.Args) < 2 {
		return nil, fmt.Errorf("pointer:move needs x and y, got %d args", len(e.Args))
	}
	px, err := strconv.ParseFloat(e.Args[0], 64)
	if err != nil {
		return nil, fmt.Errorf("bad x coordinate %q: %w", e.Args[0], err)
	}
	py, err := strconv.ParseFloat(e.Args[1], 64)
	if err != nil {
		return nil, fmt.Errorf("bad y coordinate %q: %w", e.Args[1], err)
	}

	point, err := geometry.PickSpherePoint(*s.deps.Camera, px, py)
	if err != nil {
		s.deps.Session.ClearHover()
		return nil, nil
	}
	s.deps.Session.SetHover(point)

	if marker, visible := s.deps.Session.HoverMarker(); visible {
		return marker, nil
	}
	return nil, nil
}

func (s *Service) placeHotspot(point core.Point3D) (any, error) {
	activeID := s.deps.Scenes.ActiveID()
	if activeID == "" {
		s.deps.Session.Disarm()
		return nil, ErrNoActiveScene
	}

	h, err := s.deps.Session.PlaceHotspot(point, s.deps.Scenes.LinkCandidates())
	if err != nil {
		return nil, err
	}
	return s.deps.Scenes.AddHotspot(activeID, *h)
}

// CommitPath turns the draft into a path on the active scene.
func (s *Service) CommitPath(e dispatcher.Event) (any, error) {
	activeID := s.deps.Scenes.ActiveID()
	if activeID == "" {
		return nil, ErrNoActiveScene
	}

	path, err := s.deps.Session.Commit()
	if err != nil {
		return nil, err
	}
	if err := s.deps.Scenes.AddPath(activeID, path); err != nil {
		return nil, err
	}
	return path, nil
}

// UndoPoint removes the most recent draft point.
func (s *Service) UndoPoint(e dispatcher.Event) (any, error) {
	s.deps.Session.UndoLastPoint()
	return nil, nil
}

// RedoPoint restores the most recently undone draft point.
func (s *Service) RedoPoint(e dispatcher.Event) (any, error) {
	if p, ok := s.deps.Session.RedoPoint(); ok {
		return p, nil
	}
	return nil, nil
}

// Cancel discards the draft and any armed hotspot mode.
func (s *Service) Cancel(e dispatcher.Event) (any, error) {
	s.deps.Session.ClearDraft()
	s.deps.Session.Disarm()
	return nil, nil
}

// ToggleDrawMode flips draw mode.
func (s *Service) ToggleDrawMode(e dispatcher.Event) (any, error) {
	s.deps.Session.SetDrawMode(!s.deps.Session.DrawMode())
	return s.deps.Session.DrawMode(), nil
}

// SelectKind picks the utility kind bound to the pressed number key.
func (s *Service) SelectKind(e dispatcher.Event) (any, error) {
	key := e.Command[len("key:"):]
	kind, ok := kindKeys[key]
	if !ok {
		return nil, fmt.Errorf("no kind bound to key %q", key)
	}
	if err := s.deps.Session.SelectKind(kind); err != nil {
		return nil, err
	}
	return kind, nil
}

// ArmHotspot enters pending-placement mode for the given kind.
func (s *Service) ArmHotspot(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, errors.New("hotspot:arm needs a kind")
	}
	kind := core.HotspotKind(e.Args[0])
	switch kind {
	case core.HotspotInfo, core.HotspotSceneLink:
		s.deps.Session.ArmHotspot(kind)
		return kind, nil
	default:
		return nil, fmt.Errorf("unknown hotspot kind: %s", e.Args[0])
	}
}

// CreateScene builds a new scene from a name and raw image bytes.
func (s *Service) CreateScene(e dispatcher.Event) (any, error) {
	if len(e.Args) < 2 {
		return nil, errors.New("scene:create needs a name and image data")
	}
	return s.deps.Scenes.CreateScene(e.Args[0], []byte(e.Args[1]))
}

// SwitchScene activates the named scene.
func (s *Service) SwitchScene(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, errors.New("scene:switch needs a scene id")
	}
	return nil, s.deps.Scenes.SwitchTo(e.Args[0])
}

// ExportTour packs the whole collection into a zip archive.
func (s *Service) ExportTour(e dispatcher.Event) (any, error) {
	if len(e.Args) < 2 {
		return nil, errors.New("tour:export needs a project name and output path")
	}
	scenes := s.deps.Scenes.Scenes()
	return nil, s.deps.Exporter.Export(context.Background(), e.Args[0], scenes, e.Args[1])
}
