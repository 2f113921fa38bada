package store

import (
	"gorm.io/gorm"

	"tripnest_backend/pkg/config"
)

const (
	DriverGorm   = "gorm"
	DriverRemote = "remote"
)

// Open returns the store for a collection on the configured backend.
func Open[T any](cfg config.RecordStoreConfig, db *gorm.DB, collection Collection) Store[T] {
	if cfg.Driver == DriverRemote {
		return NewRemoteStore[T](cfg.GatewayURL, cfg.GatewayKey, collection, cfg.Timeout)
	}
	return NewGormStore[T](db, collection)
}
