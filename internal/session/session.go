// Package session holds the transient authoring state of one editor
// instance: draw mode, the selected utility kind, the in-progress draft
// polyline and the armed hotspot-placement mode. Nothing in here is
// persisted; committed drafts become Path records owned by the scene
// manager.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/panostudio/engine/internal/model/core"
	"github.com/panostudio/engine/internal/stack"
)

var (
	// ErrDrawModeOff is returned when a draft operation is attempted
	// while draw mode is disabled.
	ErrDrawModeOff = errors.New("draw mode is not active")

	// ErrNotEnoughPoints is returned by Commit when the draft holds
	// fewer than two points.
	ErrNotEnoughPoints = errors.New("a path requires at least 2 points")

	// ErrNotArmed is returned by PlaceHotspot when no hotspot kind is
	// armed.
	ErrNotArmed = errors.New("no hotspot kind armed")

	// ErrNoTargets is returned when a scene-link hotspot is placed but
	// no other scene exists to link to.
	ErrNoTargets = errors.New("no other scenes available to link to")

	// ErrPlacementAborted is returned when the user cancels or supplies
	// invalid metadata during hotspot placement. No record is created.
	ErrPlacementAborted = errors.New("hotspot placement aborted")
)

// PromptProvider supplies user metadata during hotspot placement. The
// editor shell backs it with modal dialogs; tests back it with scripted
// responses. A session without a provider treats every prompt as
// cancelled.
type PromptProvider interface {
	// PromptInfo asks for an info hotspot's title and content. ok is
	// false when the user cancels.
	PromptInfo() (title, content string, ok bool)

	// PromptSceneTarget presents candidate target scenes and asks for a
	// selection plus an optional description. choice indexes into the
	// candidate list. ok is false when the user cancels.
	PromptSceneTarget(candidates []core.Scene) (choice int, description string, ok bool)
}

// nopPrompts cancels every prompt. Placement against it aborts cleanly
// instead of dereferencing a missing provider.
type nopPrompts struct{}

var _ PromptProvider = nopPrompts{}

func (nopPrompts) PromptInfo() (string, string, bool) { return "", "", false }

func (nopPrompts) PromptSceneTarget([]core.Scene) (int, string, bool) { return 0, "", false }

// Session is the authoring state machine for one editor instance.
type Session struct {
	logger  zerolog.Logger
	prompts PromptProvider

	drawMode bool
	kind     core.PathKind
	draft    []core.Point3D
	redo     *stack.Stack[core.Point3D]
	armed    *core.HotspotKind

	hover    core.Point3D
	hoverSet bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.logger = log }
}

// WithPrompts sets the metadata prompt provider.
func WithPrompts(p PromptProvider) Option {
	return func(s *Session) { s.prompts = p }
}

// New creates a Session with draw mode off and electricity selected.
func New(opts ...Option) *Session {
	s := &Session{
		logger:  zerolog.Nop(),
		prompts: nopPrompts{},
		kind:    core.PathElectricity,
		redo:    stack.New[core.Point3D](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DrawMode reports whether draw mode is active.
func (s *Session) DrawMode() bool {
	return s.drawMode
}

// SetDrawMode toggles draw mode. Turning it off discards the draft.
func (s *Session) SetDrawMode(on bool) {
	if s.drawMode == on {
		return
	}
	s.drawMode = on
	if !on {
		s.ClearDraft()
		s.ClearHover()
	}
	s.logger.Debug().Bool("on", on).Msg("Draw mode toggled")
}

// Kind returns the currently selected utility kind.
func (s *Session) Kind() core.PathKind {
	return s.kind
}

// SelectKind changes the utility kind used for the next commit.
func (s *Session) SelectKind(kind core.PathKind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown path kind: %s", kind)
	}
	s.kind = kind
	return nil
}

// AddPoint appends a point to the draft. Draw mode must be active.
// Adding a new point invalidates the redo history.
func (s *Session) AddPoint(p core.Point3D) error {
	if !s.drawMode {
		return ErrDrawModeOff
	}
	s.draft = append(s.draft, p)
	s.redo.Clear()
	return nil
}

// UndoLastPoint removes the most recent draft point and makes it
// available for redo. No-op when the draft is empty.
func (s *Session) UndoLastPoint() {
	if len(s.draft) == 0 {
		return
	}
	s.redo.Push(s.draft[len(s.draft)-1])
	s.draft = s.draft[:len(s.draft)-1]
}

// RedoPoint restores the most recently undone draft point. The second
// return value is false when there is nothing to redo.
func (s *Session) RedoPoint() (core.Point3D, bool) {
	if !s.drawMode {
		return core.Point3D{}, false
	}
	p, ok := s.redo.Pop()
	if !ok {
		return core.Point3D{}, false
	}
	s.draft = append(s.draft, p)
	return p, true
}

// ClearDraft discards all draft points and the redo history.
func (s *Session) ClearDraft() {
	s.draft = nil
	s.redo.Clear()
}

// SetHover records the sphere point under the pointer. The shell calls
// this on pointer movement so a preview marker can follow the cursor.
func (s *Session) SetHover(p core.Point3D) {
	s.hover = p
	s.hoverSet = true
}

// ClearHover drops the hover point, hiding the preview marker.
func (s *Session) ClearHover() {
	s.hover = core.Point3D{}
	s.hoverSet = false
}

// HoverMarker returns the preview marker position. visible is false
// outside draw mode or when the pointer has not hit the sphere.
func (s *Session) HoverMarker() (core.Point3D, bool) {
	if !s.drawMode || !s.hoverSet {
		return core.Point3D{}, false
	}
	return s.hover, true
}

// DraftPoints returns a copy of the current draft.
func (s *Session) DraftPoints() []core.Point3D {
	out := make([]core.Point3D, len(s.draft))
	copy(out, s.draft)
	return out
}

// Commit turns the draft into a Path with a fresh id and the selected
// kind, then clears the draft. The session stays in draw mode. The
// returned path is not yet attached to a scene; the caller hands it to
// the scene manager.
func (s *Session) Commit() (core.Path, error) {
	if len(s.draft) < 2 {
		return core.Path{}, ErrNotEnoughPoints
	}

	points := make([]core.Point3D, len(s.draft))
	copy(points, s.draft)

	path := core.Path{
		ID:     uuid.New().String(),
		Kind:   s.kind,
		Color:  s.kind.Color(),
		Points: points,
	}
	s.ClearDraft()

	s.logger.Info().
		Str("pathId", path.ID).
		Str("kind", string(path.Kind)).
		Int("points", len(path.Points)).
		Msg("Committed path")
	return path, nil
}

// ArmHotspot enters pending-placement mode for the given kind. The next
// pointer hit is interpreted as a hotspot placement instead of a draft
// point.
func (s *Session) ArmHotspot(kind core.HotspotKind) {
	k := kind
	s.armed = &k
}

// Disarm leaves pending-placement mode.
func (s *Session) Disarm() {
	s.armed = nil
}

// Armed returns the armed hotspot kind, if any.
func (s *Session) Armed() (core.HotspotKind, bool) {
	if s.armed == nil {
		return "", false
	}
	return *s.armed, true
}

// PlaceHotspot runs the metadata prompts for the armed kind and builds a
// Hotspot at the given position. candidates lists the scenes a link
// hotspot may target; the caller excludes the active scene. The armed
// mode is cleared after exactly one attempt, whether it succeeds or not.
// The returned hotspot is not yet attached to a scene.
func (s *Session) PlaceHotspot(pos core.Point3D, candidates []core.Scene) (*core.Hotspot, error) {
	if s.armed == nil {
		return nil, ErrNotArmed
	}
	kind := *s.armed
	s.Disarm()

	switch kind {
	case core.HotspotInfo:
		title, content, ok := s.prompts.PromptInfo()
		if !ok || title == "" || content == "" {
			return nil, ErrPlacementAborted
		}
		return &core.Hotspot{
			ID:       uuid.New().String(),
			Kind:     core.HotspotInfo,
			Position: pos,
			Info:     &core.InfoData{Title: title, Content: content},
		}, nil
	case core.HotspotSceneLink:
		if len(candidates) == 0 {
			return nil, ErrNoTargets
		}
		choice, description, ok := s.prompts.PromptSceneTarget(candidates)
		if !ok || choice < 0 || choice >= len(candidates) {
			return nil, ErrPlacementAborted
		}
		target := candidates[choice]
		if description == "" {
			description = fmt.Sprintf("الانتقال إلى %s", target.Name)
		}
		return &core.Hotspot{
			ID:       uuid.New().String(),
			Kind:     core.HotspotSceneLink,
			Position: pos,
			SceneLink: &core.SceneLinkData{
				TargetSceneID:   target.ID,
				TargetSceneName: target.Name,
				Description:     description,
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown hotspot kind: %s", kind)
	}
}
