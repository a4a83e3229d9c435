package model

import (
	"time"

	"gorm.io/datatypes"
)

// DatabaseModels lists all structs exported here which represent tables in
// the database schema.
var DatabaseModels = []interface{}{
	&SceneRecord{},
	&ProjectRecord{},
}

// SceneRecord is the persisted form of a scene. Paths and Hotspots are
// stored as JSON documents so the record survives schema-free across
// SQLite and Postgres.
type SceneRecord struct {
	ID            string         `json:"id" gorm:"primaryKey;size:64"`
	Name          string         `json:"name" gorm:"size:200"`
	PreviewImage  []byte         `json:"-"`
	OriginalImage []byte         `json:"-"`
	Paths         datatypes.JSON `json:"paths"`
	Hotspots      datatypes.JSON `json:"hotspots"`
	CreatedAt     time.Time      `json:"created"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (*SceneRecord) TableName() string {
	return "scenes"
}

// ProjectRecord is the persisted form of a legacy single-panorama project.
type ProjectRecord struct {
	ID           string         `json:"id" gorm:"primaryKey;size:64"`
	Name         string         `json:"name" gorm:"size:200"`
	Paths        datatypes.JSON `json:"paths"`
	ImageData    []byte         `json:"-"`
	CreatedAt    time.Time      `json:"created"`
	LastModified time.Time      `json:"lastModified"`
}

func (*ProjectRecord) TableName() string {
	return "projects"
}
