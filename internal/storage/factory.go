// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/panostudio/engine/internal/storage/memory"
	"github.com/panostudio/engine/internal/storage/sqlite"
)

var (
	_ Store = (*memory.Backend)(nil)
	_ Store = (*sqlite.Backend)(nil)
)

// NewStore creates a storage backend based on configuration.
func NewStore(log zerolog.Logger) (Store, error) {
	backend := viper.GetString("storage.backend")
	switch backend {
	case "memory":
		return memory.New(), nil
	case "sqlite", "postgres":
		// Both go through GORM; the database manager picks the driver
		// from the db.* configuration keys.
		return sqlite.NewBackend(log), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
