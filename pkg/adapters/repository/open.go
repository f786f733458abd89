// Package repository picks the slot storage backend named in the config.
package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository/s3store"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/config"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

func Open(ctx context.Context, cfg *config.Config) (ports.SlotStore, error) {
	switch cfg.StorageBackend {
	case config.BackendSQLite, "":
		repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Debugf("using sqlite storage")
		return repo, nil

	case config.BackendS3:
		client, err := s3store.NewClient(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		repo := s3store.NewRepository(client, cfg.S3.Bucket, cfg.S3.Prefix)
		if err := repo.EnsureBucketExists(ctx); err != nil {
			return nil, err
		}
		log.Debugf("using s3 storage, bucket %s", cfg.S3.Bucket)
		return repo, nil

	case config.BackendMemory:
		log.Warn("using in-memory storage, cards are lost on exit")
		return memory.NewRepository(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
