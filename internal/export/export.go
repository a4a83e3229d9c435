// Package export serializes the scene collection into a portable static
// bundle: one image per scene, a tour data file, a self-contained player
// page and a usage document, packed into a single zip archive.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mholt/archives"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/panostudio/engine/internal/model/core"
	"github.com/panostudio/engine/internal/util"
)

// BusyIndicator reports export progress to the UI shell. End is called
// on both success and failure so the shell never sticks in a loading
// state.
type BusyIndicator interface {
	Begin(label string)
	End()
}

type nopBusy struct{}

func (nopBusy) Begin(string) {}
func (nopBusy) End()         {}

// pathRecord is the portable form of a path. The id is an editor
// concern and is not exported.
type pathRecord struct {
	Type   core.PathKind  `json:"type"`
	Color  string         `json:"color"`
	Points []core.Point3D `json:"points"`
}

// sceneRecord is one entry of tour-data.json. The image is referenced by
// relative file name inside the bundle.
type sceneRecord struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Image    string         `json:"image"`
	Paths    []pathRecord   `json:"paths"`
	Hotspots []core.Hotspot `json:"hotspots"`
}

// Exporter builds tour bundles.
type Exporter struct {
	logger zerolog.Logger
	busy   BusyIndicator
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the exporter logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Exporter) { e.logger = log }
}

// WithBusyIndicator attaches a progress reporter.
func WithBusyIndicator(b BusyIndicator) Option {
	return func(e *Exporter) { e.busy = b }
}

// NewExporter creates an Exporter.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		logger: zerolog.Nop(),
		busy:   nopBusy{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildBundle produces the full bundle as named byte blobs. Every scene
// must carry its export-resolution image; a missing image fails the
// whole export rather than producing a bundle with a blank scene.
func (e *Exporter) BuildBundle(projectName string, scenes []core.Scene) (map[string][]byte, error) {
	if projectName == "" {
		return nil, errors.New("project name must not be empty")
	}
	if len(scenes) == 0 {
		return nil, errors.New("nothing to export: no scenes")
	}

	files := make(map[string][]byte)
	records := make([]sceneRecord, 0, len(scenes))

	for i, s := range scenes {
		image := s.OriginalImage
		if len(image) == 0 {
			return nil, errors.Errorf("scene %q has no exportable panorama image", s.Name)
		}
		filename := fmt.Sprintf("scene-%d.jpg", i)
		files[filename] = image

		paths := make([]pathRecord, 0, len(s.Paths))
		for _, p := range s.Paths {
			paths = append(paths, pathRecord{
				Type:   p.Kind,
				Color:  p.Color,
				Points: p.Points,
			})
		}

		hotspots := s.Hotspots
		if hotspots == nil {
			hotspots = []core.Hotspot{}
		}
		records = append(records, sceneRecord{
			ID:       s.ID,
			Name:     s.Name,
			Image:    filename,
			Paths:    paths,
			Hotspots: hotspots,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize tour data")
	}
	files["tour-data.json"] = data

	html, err := renderPlayerHTML(projectName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render player page")
	}
	files["index.html"] = html
	files["style.css"] = []byte(playerCSS)

	readme, err := renderReadme(projectName, scenes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render usage document")
	}
	files["README.md"] = readme

	return files, nil
}

// ExportDir writes the bundle as a plain directory tree under dir.
func (e *Exporter) ExportDir(projectName string, scenes []core.Scene, dir string) error {
	files, err := e.BuildBundle(projectName, scenes)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create bundle directory")
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", name)
		}
	}
	return nil
}

// Export builds the bundle and packs it into a zip archive at outPath.
// The archive holds everything under a top-level folder named after the
// project.
func (e *Exporter) Export(ctx context.Context, projectName string, scenes []core.Scene, outPath string) (err error) {
	e.busy.Begin(fmt.Sprintf("Exporting %s", projectName))
	defer e.busy.End()

	staging, err := os.MkdirTemp("", "panostudio-export-*")
	if err != nil {
		return errors.Wrap(err, "failed to create staging directory")
	}
	defer os.RemoveAll(staging)

	if err := e.ExportDir(projectName, scenes, staging); err != nil {
		return err
	}

	fileInfos, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		staging: util.SanitizeName(projectName),
	})
	if err != nil {
		return errors.Wrap(err, "failed to collect bundle files")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "failed to create archive file")
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := (archives.Zip{}).Archive(ctx, out, fileInfos); err != nil {
		return errors.Wrap(err, "failed to write archive")
	}

	e.logger.Info().
		Str("project", projectName).
		Int("scenes", len(scenes)).
		Str("path", outPath).
		Msg("Exported tour bundle")
	return nil
}
