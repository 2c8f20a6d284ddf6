package repository

import (
	"context"
	"errors"

	"debt-tracker/domain"
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrSnapshotCorrupt  = errors.New("snapshot data is corrupt")
)

// SnapshotRepository persiste respaldos por clave
type SnapshotRepository interface {
	Save(ctx context.Context, key string, backup domain.Backup) error
	Load(ctx context.Context, key string) (domain.Backup, error)
	Delete(ctx context.Context, key string) error
}
