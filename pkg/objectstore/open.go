package objectstore

import (
	"context"
	"fmt"

	"tripnest_backend/pkg/config"
)

// Open builds the backend named by OBJECT_STORE.
func Open(ctx context.Context, cfg config.ObjectStoreConfig) (Store, error) {
	switch cfg.Driver {
	case "cloudinary":
		s, err := NewCloudinaryStore(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "s3", "r2", "":
		s, err := NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown object store %q", cfg.Driver)
	}
}
