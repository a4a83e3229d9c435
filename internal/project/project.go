// Package project implements the legacy single-panorama persistence
// mode. A project bundles one panorama with its paths and does not touch
// the multi-scene collection.
package project

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/panostudio/engine/internal/imaging"
	"github.com/panostudio/engine/internal/model/core"
	"github.com/panostudio/engine/internal/storage"
)

// ErrProjectNotFound is returned when a project id does not resolve.
var ErrProjectNotFound = errors.New("project not found")

// Manager saves and restores legacy projects.
type Manager struct {
	logger zerolog.Logger
	store  storage.Store
}

// NewManager creates a project manager over the given store.
func NewManager(store storage.Store, log zerolog.Logger) *Manager {
	return &Manager{logger: log, store: store}
}

// Save recompresses the panorama at the legacy quality tier and persists
// a new project record.
func (m *Manager) Save(name string, imageData []byte, paths []core.Path) (*core.Project, error) {
	if name == "" {
		return nil, errors.New("project name must not be empty")
	}

	compressed, err := imaging.Recompress(imageData, imaging.LegacyQuality)
	if err != nil {
		return nil, fmt.Errorf("failed to compress panorama: %w", err)
	}

	now := time.Now().UTC()
	p := &core.Project{
		ID:           uuid.New().String(),
		Name:         name,
		CreatedAt:    now,
		LastModified: now,
		Paths:        paths,
		ImageData:    compressed,
	}
	if err := m.store.SaveProject(p); err != nil {
		return nil, err
	}

	m.logger.Info().Str("projectId", p.ID).Str("name", name).Msg("Saved project")
	return p, nil
}

// Update rewrites an existing project's paths and bumps its modification
// time.
func (m *Manager) Update(id string, paths []core.Path) (*core.Project, error) {
	p, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	p.Paths = paths
	p.LastModified = time.Now().UTC()
	if err := m.store.SaveProject(p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all stored projects.
func (m *Manager) List() ([]core.Project, error) {
	return m.store.LoadProjects()
}

// Get returns one project by id.
func (m *Manager) Get(id string) (*core.Project, error) {
	projects, err := m.store.LoadProjects()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
}
