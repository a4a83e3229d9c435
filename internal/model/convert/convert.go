// Package convert maps between pure core types and GORM persistence
// records.
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/panostudio/engine/internal/model"
	"github.com/panostudio/engine/internal/model/core"
)

// SceneToRecord converts a core scene into its persisted form.
func SceneToRecord(s *core.Scene) (model.SceneRecord, error) {
	paths, err := json.Marshal(s.Paths)
	if err != nil {
		return model.SceneRecord{}, fmt.Errorf("failed to serialize paths for scene %s: %w", s.ID, err)
	}
	hotspots, err := json.Marshal(s.Hotspots)
	if err != nil {
		return model.SceneRecord{}, fmt.Errorf("failed to serialize hotspots for scene %s: %w", s.ID, err)
	}

	return model.SceneRecord{
		ID:            s.ID,
		Name:          s.Name,
		PreviewImage:  s.PreviewImage,
		OriginalImage: s.OriginalImage,
		Paths:         paths,
		Hotspots:      hotspots,
		CreatedAt:     s.CreatedAt,
	}, nil
}

// SceneFromRecord restores a core scene from its persisted form.
func SceneFromRecord(r *model.SceneRecord) (core.Scene, error) {
	s := core.Scene{
		ID:            r.ID,
		Name:          r.Name,
		PreviewImage:  r.PreviewImage,
		OriginalImage: r.OriginalImage,
		CreatedAt:     r.CreatedAt,
	}

	if len(r.Paths) > 0 {
		if err := json.Unmarshal(r.Paths, &s.Paths); err != nil {
			return core.Scene{}, fmt.Errorf("corrupt paths for scene %s: %w", r.ID, err)
		}
	}
	if len(r.Hotspots) > 0 {
		if err := json.Unmarshal(r.Hotspots, &s.Hotspots); err != nil {
			return core.Scene{}, fmt.Errorf("corrupt hotspots for scene %s: %w", r.ID, err)
		}
	}
	return s, nil
}

// ProjectToRecord converts a legacy project into its persisted form.
func ProjectToRecord(p *core.Project) (model.ProjectRecord, error) {
	paths, err := json.Marshal(p.Paths)
	if err != nil {
		return model.ProjectRecord{}, fmt.Errorf("failed to serialize paths for project %s: %w", p.ID, err)
	}
	return model.ProjectRecord{
		ID:           p.ID,
		Name:         p.Name,
		Paths:        paths,
		ImageData:    p.ImageData,
		CreatedAt:    p.CreatedAt,
		LastModified: p.LastModified,
	}, nil
}

// ProjectFromRecord restores a legacy project from its persisted form.
func ProjectFromRecord(r *model.ProjectRecord) (core.Project, error) {
	p := core.Project{
		ID:           r.ID,
		Name:         r.Name,
		ImageData:    r.ImageData,
		CreatedAt:    r.CreatedAt,
		LastModified: r.LastModified,
	}
	if len(r.Paths) > 0 {
		if err := json.Unmarshal(r.Paths, &p.Paths); err != nil {
			return core.Project{}, fmt.Errorf("corrupt paths for project %s: %w", r.ID, err)
		}
	}
	return p, nil
}
