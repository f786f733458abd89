// Package memory keeps slots in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

type Repository struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewRepository() *Repository {
	return &Repository{slots: make(map[string]string)}
}

func (r *Repository) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.slots[key]
	return v, ok, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[key] = value
	return nil
}

var _ ports.SlotStore = (*Repository)(nil)
