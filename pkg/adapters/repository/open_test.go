package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, &config.Config{StorageBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Repository{}, repo)

	repo, err = Open(ctx, &config.Config{
		StorageBackend: config.BackendSQLite,
		DatabaseURL:    "file:opentest?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	assert.IsType(t, &sqlite.SQLiteRepository{}, repo)

	_, err = Open(ctx, &config.Config{StorageBackend: config.BackendS3})
	assert.Error(t, err, "s3 without an endpoint")

	_, err = Open(ctx, &config.Config{StorageBackend: "redis"})
	assert.EqualError(t, err, `unknown storage backend "redis"`)
}
