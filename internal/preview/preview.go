// Package preview serves an exported tour bundle over HTTP so it can be
// checked in a browser before publishing. The player fetches its data
// file relative to the page, so plain static serving is enough.
package preview

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Server serves one exported bundle directory.
type Server struct {
	app    *fiber.App
	logger zerolog.Logger
	dir    string
}

// NewServer creates a Server for the bundle at dir. The directory must
// contain the player page.
func NewServer(dir string, log zerolog.Logger) (*Server, error) {
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		return nil, fmt.Errorf("%s does not look like an exported bundle: %w", dir, err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Static("/", dir)

	return &Server{app: app, logger: log, dir: dir}, nil
}

// Listen blocks serving the bundle on the given port.
func (s *Server) Listen(port int) error {
	s.logger.Info().Int("port", port).Str("dir", s.dir).Msg("Serving tour preview")
	return s.app.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app. Used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}
