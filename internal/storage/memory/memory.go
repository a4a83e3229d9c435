// internal/storage/memory/memory.go
package memory

import (
	"sync"

	"github.com/panostudio/engine/internal/model/core"
)

// Backend keeps the scene collection and legacy projects in memory. Used by
// tests and as the storage for throwaway sessions.
type Backend struct {
	mu       sync.RWMutex
	scenes   []core.Scene
	projects map[string]core.Project
}

// New creates a new memory backend.
func New() *Backend {
	return &Backend{
		projects: make(map[string]core.Project),
	}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// SaveScenes replaces the stored scene collection.
func (b *Backend) SaveScenes(scenes []core.Scene) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.scenes = make([]core.Scene, len(scenes))
	copy(b.scenes, scenes)
	return nil
}

// LoadScenes returns the stored scene collection.
func (b *Backend) LoadScenes() ([]core.Scene, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.Scene, len(b.scenes))
	copy(out, b.scenes)
	return out, nil
}

// SaveProject upserts a legacy project.
func (b *Backend) SaveProject(p *core.Project) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.projects[p.ID] = *p
	return nil
}

// LoadProjects returns all legacy projects.
func (b *Backend) LoadProjects() ([]core.Project, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]core.Project, 0, len(b.projects))
	for _, p := range b.projects {
		out = append(out, p)
	}
	return out, nil
}
