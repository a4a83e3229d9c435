package sqlite

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/panostudio/engine/internal/database"
	"github.com/panostudio/engine/internal/model/core"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	m := database.NewManager(zerolog.Nop())
	db, err := m.GetSqliteDB("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open in-memory DB: %v", err)
	}
	b := NewBackendWithDB(db, zerolog.Nop())
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return b
}

func testScene(id, name string) core.Scene {
	return core.Scene{
		ID:            id,
		Name:          name,
		PreviewImage:  []byte{0xff, 0xd8, 0xff},
		OriginalImage: []byte{0xff, 0xd8, 0xff, 0xe0},
		Paths: []core.Path{
			{
				ID:     "path-1",
				Kind:   core.PathWaterPipe,
				Color:  core.PathWaterPipe.Color(),
				Points: []core.Point3D{{X: 0, Y: 0, Z: 500}, {X: 100, Y: 0, Z: 480}},
			},
		},
		Hotspots: []core.Hotspot{
			{
				ID:       "h1",
				Kind:     core.HotspotInfo,
				Position: core.Point3D{X: 0, Y: 0, Z: 500},
				Info:     &core.InfoData{Title: "Valve", Content: "Main shutoff"},
			},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestSceneRoundTrip(t *testing.T) {
	b := newTestBackend(t)

	want := testScene("scene-1", "Entrance")
	if err := b.SaveScenes([]core.Scene{want}); err != nil {
		t.Fatalf("SaveScenes() error = %v", err)
	}

	scenes, err := b.LoadScenes()
	if err != nil {
		t.Fatalf("LoadScenes() error = %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(scenes))
	}

	got := scenes[0]
	if got.ID != want.ID || got.Name != want.Name {
		t.Errorf("scene identity mismatch: got %s/%s", got.ID, got.Name)
	}
	if len(got.Paths) != 1 || got.Paths[0].Kind != core.PathWaterPipe {
		t.Errorf("paths not preserved: %+v", got.Paths)
	}
	if len(got.Hotspots) != 1 || got.Hotspots[0].Info == nil || got.Hotspots[0].Info.Title != "Valve" {
		t.Errorf("hotspots not preserved: %+v", got.Hotspots)
	}
	if len(got.OriginalImage) != len(want.OriginalImage) {
		t.Errorf("original image not preserved")
	}
}

func TestSaveScenesReplacesAll(t *testing.T) {
	b := newTestBackend(t)

	first := []core.Scene{testScene("a", "Entrance"), testScene("b", "Hall")}
	if err := b.SaveScenes(first); err != nil {
		t.Fatalf("SaveScenes() error = %v", err)
	}
	if err := b.SaveScenes([]core.Scene{testScene("c", "Roof")}); err != nil {
		t.Fatalf("SaveScenes() error = %v", err)
	}

	scenes, err := b.LoadScenes()
	if err != nil {
		t.Fatalf("LoadScenes() error = %v", err)
	}
	if len(scenes) != 1 {
		t.Fatalf("expected 1 scene after replace, got %d", len(scenes))
	}
	if scenes[0].ID != "c" {
		t.Errorf("expected scene c, got %s", scenes[0].ID)
	}
}

func TestSaveScenesEmptyClears(t *testing.T) {
	b := newTestBackend(t)

	if err := b.SaveScenes([]core.Scene{testScene("a", "Entrance")}); err != nil {
		t.Fatalf("SaveScenes() error = %v", err)
	}
	if err := b.SaveScenes(nil); err != nil {
		t.Fatalf("SaveScenes(nil) error = %v", err)
	}

	scenes, err := b.LoadScenes()
	if err != nil {
		t.Fatalf("LoadScenes() error = %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("expected empty store, got %d scenes", len(scenes))
	}
}

func TestProjectRoundTrip(t *testing.T) {
	b := newTestBackend(t)

	p := &core.Project{
		ID:           "p1",
		Name:         "Legacy tour",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		LastModified: time.Now().UTC().Truncate(time.Second),
		Paths: []core.Path{
			{ID: "path-1", Kind: core.PathGas, Color: core.PathGas.Color()},
		},
		ImageData: []byte{0xff, 0xd8},
	}
	if err := b.SaveProject(p); err != nil {
		t.Fatalf("SaveProject() error = %v", err)
	}

	p.Name = "Renamed"
	if err := b.SaveProject(p); err != nil {
		t.Fatalf("SaveProject() error = %v", err)
	}

	projects, err := b.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects() error = %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if projects[0].Name != "Renamed" {
		t.Errorf("expected upserted project, got %s", projects[0].Name)
	}
	if len(projects[0].Paths) != 1 || projects[0].Paths[0].Kind != core.PathGas {
		t.Errorf("project paths not preserved: %+v", projects[0].Paths)
	}
}
