package repository

import (
	"fmt"

	"go.uber.org/zap"

	"uni-assistant/internal/config"
)

// Open returns the Store selected by cfg.StorageDriver.
func Open(cfg config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageCSV, "":
		return NewCSVStore(cfg.UsersFile, cfg.MessagesFile, logger)
	case config.StorageSQLite:
		return NewGormStore(cfg.DatabaseURL, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
