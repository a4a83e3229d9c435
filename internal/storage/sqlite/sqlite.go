// Package sqlite provides a Store backed by a local SQLite database
// through GORM. The same backend serves Postgres connections since all
// access goes through GORM records.
package sqlite

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/panostudio/engine/internal/database"
	"github.com/panostudio/engine/internal/model"
	"github.com/panostudio/engine/internal/model/convert"
	"github.com/panostudio/engine/internal/model/core"
)

// Backend persists scenes and projects through a GORM connection.
type Backend struct {
	manager *database.Manager
	logger  zerolog.Logger
}

// NewBackend creates a Backend around an unconnected manager.
func NewBackend(log zerolog.Logger) *Backend {
	return &Backend{
		manager: database.NewManager(log),
		logger:  log,
	}
}

// NewBackendWithDB wraps an already-open GORM connection. The caller keeps
// ownership of the connection; Close is a no-op. Used by tests.
func NewBackendWithDB(db *gorm.DB, log zerolog.Logger) *Backend {
	m := database.NewManager(log)
	m.DB = db
	m.IsValid = true
	return &Backend{manager: m, logger: log}
}

// Init connects and migrates the schema.
func (b *Backend) Init() error {
	if b.manager.DB == nil {
		if err := b.manager.Connect(); err != nil {
			return err
		}
	}
	return b.manager.Setup()
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.manager.Close()
}

// SaveScenes replaces the stored scene list with the given one in a single
// transaction.
func (b *Backend) SaveScenes(scenes []core.Scene) error {
	records := make([]model.SceneRecord, 0, len(scenes))
	for i := range scenes {
		rec, err := convert.SceneToRecord(&scenes[i])
		if err != nil {
			return fmt.Errorf("failed to convert scene %s: %w", scenes[i].ID, err)
		}
		records = append(records, rec)
	}

	err := b.manager.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.SceneRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save scenes: %w", err)
	}

	b.logger.Debug().Int("count", len(records)).Msg("Saved scenes")
	return nil
}

// LoadScenes returns all stored scenes ordered by creation time.
func (b *Backend) LoadScenes() ([]core.Scene, error) {
	var records []model.SceneRecord
	if err := b.manager.DB.Order("created_at asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load scenes: %w", err)
	}

	scenes := make([]core.Scene, 0, len(records))
	for i := range records {
		scene, err := convert.SceneFromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, scene)
	}
	return scenes, nil
}

// SaveProject upserts a single legacy project by ID.
func (b *Backend) SaveProject(project *core.Project) error {
	rec, err := convert.ProjectToRecord(project)
	if err != nil {
		return fmt.Errorf("failed to convert project %s: %w", project.ID, err)
	}
	if err := b.manager.DB.Save(&rec).Error; err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProjects returns all stored legacy projects, most recently modified
// first.
func (b *Backend) LoadProjects() ([]core.Project, error) {
	var records []model.ProjectRecord
	if err := b.manager.DB.Order("last_modified desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	projects := make([]core.Project, 0, len(records))
	for i := range records {
		project, err := convert.ProjectFromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}
