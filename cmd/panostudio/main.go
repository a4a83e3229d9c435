package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/panostudio/engine/internal/api"
	"github.com/panostudio/engine/internal/config"
	"github.com/panostudio/engine/internal/dispatcher"
	"github.com/panostudio/engine/internal/export"
	"github.com/panostudio/engine/internal/geometry"
	"github.com/panostudio/engine/internal/handlers"
	"github.com/panostudio/engine/internal/logging"
	"github.com/panostudio/engine/internal/otel"
	"github.com/panostudio/engine/internal/preview"
	"github.com/panostudio/engine/internal/scene"
	"github.com/panostudio/engine/internal/session"
	"github.com/panostudio/engine/internal/storage"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: panostudio <command> [args]

commands:
  create <name> <image.jpg>        add a scene from a panorama image
  list                             list stored scenes
  remove <sceneId>                 delete a scene
  export <projectName> [out.zip]   pack all scenes into a tour bundle
  exportdir <projectName> <dir>    write the bundle as a directory tree
  preview <bundleDir>              serve an exported bundle over HTTP
  publish <archive.zip> <name>     upload a tour archive to the hosting server`)
	os.Exit(2)
}

func main() {
	if err := config.Load("."); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, closeLogs, err := logging.Setup(config.GetString("logLevel"), config.GetString("logsDir"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLogs()

	var metricsFile *os.File
	if config.GetBool("telemetry.enabled") {
		metricsFile, err = os.OpenFile(
			filepath.Join(config.GetString("logsDir"), "panostudio.metrics.json"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open metrics file")
		}
		defer metricsFile.Close()
	}
	telemetry, err := otel.New(otel.Config{
		Enabled:      config.GetBool("telemetry.enabled"),
		ServiceName:  "panostudio",
		MetricWriter: metricsFile,
		Endpoint:     config.GetString("telemetry.endpoint"),
		Insecure:     config.GetBool("telemetry.insecure"),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up telemetry")
	}
	defer telemetry.Shutdown(context.Background())

	store, err := storage.NewStore(logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create storage backend")
	}
	if err := store.Init(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer store.Close()

	scenes := scene.NewManager(store, scene.WithLogger(logger))
	if err := scenes.Load(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load scene collection")
	}

	camera := geometry.NewCamera(
		float64(config.GetInt("viewport.width")),
		float64(config.GetInt("viewport.height")),
	)
	exporter := export.NewExporter(export.WithLogger(logger))

	d, err := dispatcher.New(logging.NewDispatcherLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create dispatcher")
	}
	svc := handlers.NewService(handlers.Dependencies{
		Session:  session.New(session.WithLogger(logger)),
		Scenes:   scenes,
		Exporter: exporter,
		Camera:   &camera,
		Logger:   logger,
	})
	svc.RegisterAll(d)

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
	}

	switch strings.ToLower(args[0]) {
	case "create":
		if len(args) < 3 {
			usage()
		}
		image, err := os.ReadFile(args[2])
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to read panorama image")
		}
		if _, err := d.Dispatch(dispatcher.Event{
			Command: "scene:create",
			Args:    []string{args[1], string(image)},
		}); err != nil {
			logger.Fatal().Err(err).Msg("Failed to create scene")
		}
		for _, s := range scenes.Scenes() {
			if s.Name == args[1] {
				fmt.Printf("created scene %s (%s)\n", s.Name, s.ID)
			}
		}

	case "list":
		for _, s := range scenes.Scenes() {
			fmt.Printf("%s  %-20s  paths=%d hotspots=%d  created=%s\n",
				s.ID, s.Name, len(s.Paths), len(s.Hotspots),
				s.CreatedAt.Format("2006-01-02 15:04"))
		}

	case "remove":
		if len(args) < 2 {
			usage()
		}
		if err := scenes.RemoveScene(args[1]); err != nil {
			logger.Fatal().Err(err).Msg("Failed to remove scene")
		}

	case "export":
		if len(args) < 2 {
			usage()
		}
		outPath := args[1] + ".zip"
		if len(args) > 2 {
			outPath = args[2]
		}
		// Dispatch synchronously here: the buffered handler is for the
		// interactive shell, a CLI run must wait for the archive.
		if _, err := svc.ExportTour(dispatcher.Event{
			Command: "tour:export",
			Args:    []string{args[1], outPath},
		}); err != nil {
			logger.Fatal().Err(err).Msg("Export failed")
		}
		fmt.Printf("exported %d scenes to %s\n", len(scenes.Scenes()), outPath)

	case "exportdir":
		if len(args) < 3 {
			usage()
		}
		if err := exporter.ExportDir(args[1], scenes.Scenes(), args[2]); err != nil {
			logger.Fatal().Err(err).Msg("Export failed")
		}
		fmt.Printf("wrote bundle to %s\n", args[2])

	case "publish":
		if len(args) < 3 {
			usage()
		}
		client := api.New(config.GetString("api.serverUrl"), config.GetString("api.apiKey"))
		if err := client.Healthcheck(); err != nil {
			logger.Fatal().Err(err).Msg("Hosting server unreachable")
		}
		if err := client.Upload(args[1], api.UploadMetadata{
			ProjectName: args[2],
			SceneCount:  len(scenes.Scenes()),
		}); err != nil {
			logger.Fatal().Err(err).Msg("Publish failed")
		}
		fmt.Printf("published %s as %s\n", args[1], args[2])

	case "preview":
		if len(args) < 2 {
			usage()
		}
		server, err := preview.NewServer(args[1], logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to start preview server")
		}
		if err := server.Listen(config.GetInt("preview.port")); err != nil {
			logger.Fatal().Err(err).Msg("Preview server stopped")
		}

	default:
		usage()
	}
}
