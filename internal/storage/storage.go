// internal/storage/storage.go
package storage

import "github.com/panostudio/engine/internal/model/core"

// Store is the interface all persistence implementations must satisfy.
// Scene writes are replace-all: the whole collection is persisted as one
// unit on every mutation, atomic at the record level. Simple, and
// acceptable at the expected scene counts (tens, not thousands).
type Store interface {
	// Lifecycle
	Init() error
	Close() error

	// Scene collection
	SaveScenes(scenes []core.Scene) error
	LoadScenes() ([]core.Scene, error)

	// Legacy single-panorama projects
	SaveProject(p *core.Project) error
	LoadProjects() ([]core.Project, error)
}
