package project

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"testing"

	"github.com/rs/zerolog"

	"github.com/panostudio/engine/internal/model/core"
	"github.com/panostudio/engine/internal/storage/memory"
)

func testJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 16)), nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestSaveAndGet(t *testing.T) {
	m := NewManager(memory.New(), zerolog.Nop())

	paths := []core.Path{
		{
			ID: "p1", Kind: core.PathElectricity, Color: core.PathElectricity.Color(),
			Points: []core.Point3D{{Z: 500}, {X: 100, Z: 480}},
		},
	}
	p, err := m.Save("مشروع تجريبي", testJPEG(t), paths)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p.ID == "" {
		t.Error("project has no id")
	}
	if len(p.ImageData) == 0 {
		t.Error("project has no panorama data")
	}

	got, err := m.Get(p.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "مشروع تجريبي" || len(got.Paths) != 1 {
		t.Errorf("unexpected project: %+v", got)
	}
}

func TestSaveRejectsEmptyName(t *testing.T) {
	m := NewManager(memory.New(), zerolog.Nop())
	if _, err := m.Save("", testJPEG(t), nil); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestSaveRejectsBadImage(t *testing.T) {
	m := NewManager(memory.New(), zerolog.Nop())
	if _, err := m.Save("Broken", []byte("junk"), nil); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestUpdateBumpsModificationTime(t *testing.T) {
	m := NewManager(memory.New(), zerolog.Nop())

	p, err := m.Save("Tour", testJPEG(t), nil)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	newPaths := []core.Path{
		{
			ID: "p2", Kind: core.PathGas, Color: core.PathGas.Color(),
			Points: []core.Point3D{{Z: 500}, {X: 50, Z: 490}},
		},
	}
	updated, err := m.Update(p.ID, newPaths)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(updated.Paths) != 1 || updated.Paths[0].ID != "p2" {
		t.Errorf("paths not replaced: %+v", updated.Paths)
	}
	if updated.LastModified.Before(p.LastModified) {
		t.Error("LastModified must not move backwards")
	}
}

func TestGetUnknown(t *testing.T) {
	m := NewManager(memory.New(), zerolog.Nop())
	if _, err := m.Get("missing"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("Get() error = %v, want ErrProjectNotFound", err)
	}
}
