package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"debt-tracker/domain"
)

// SnapshotRepositoryMemory is an in-memory implementation of
// SnapshotRepository. Backups are kept serialized so callers never share
// slices with the store.
type SnapshotRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewSnapshotRepositoryMemory creates a new in-memory snapshot repository.
func NewSnapshotRepositoryMemory() *SnapshotRepositoryMemory {
	return &SnapshotRepositoryMemory{
		data: make(map[string][]byte),
	}
}

func (r *SnapshotRepositoryMemory) Save(_ context.Context, key string, backup domain.Backup) error {
	payload, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = payload
	return nil
}

func (r *SnapshotRepositoryMemory) Load(_ context.Context, key string) (domain.Backup, error) {
	r.mu.RLock()
	payload, ok := r.data[key]
	r.mu.RUnlock()
	if !ok {
		return domain.Backup{}, ErrSnapshotNotFound
	}
	return decodeSnapshot(payload)
}

func (r *SnapshotRepositoryMemory) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; !ok {
		return ErrSnapshotNotFound
	}
	delete(r.data, key)
	return nil
}

// SaveRaw stores an arbitrary payload under key; used to seed corrupt data.
func (r *SnapshotRepositoryMemory) SaveRaw(key string, payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = append([]byte(nil), payload...)
}

func decodeSnapshot(payload []byte) (domain.Backup, error) {
	var backup domain.Backup
	if err := json.Unmarshal(payload, &backup); err != nil {
		return domain.Backup{}, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return backup, nil
}
