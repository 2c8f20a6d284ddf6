package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"debt-tracker/domain"
	"debt-tracker/repository"
)

var ErrInvalidBackup = errors.New("invalid backup file format")

const backupSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "data"],
  "properties": {
    "id": {"type": "string"},
    "version": {"type": "string", "minLength": 1},
    "exportDate": {"type": "string"},
    "data": {
      "type": "object",
      "properties": {
        "debts": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "balance", "rate", "minimumPayment"],
            "properties": {
              "name": {"type": "string"},
              "balance": {"type": "number"},
              "rate": {"type": "number"},
              "minimumPayment": {"type": "number"}
            }
          }
        },
        "goals": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["title", "targetAmount", "currentAmount"],
            "properties": {
              "title": {"type": "string"},
              "targetAmount": {"type": "number"},
              "currentAmount": {"type": "number"}
            }
          }
        },
        "income": {"type": "number"},
        "settings": {
          "type": "object",
          "properties": {
            "defaultStrategy": {"enum": ["avalanche", "snowball"]}
          }
        }
      }
    }
  }
}`

var backupSchema = mustCompileSchema(backupSchemaJSON)

func mustCompileSchema(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile backup schema: %v", err))
	}
	return schema
}

// SnapshotService administra el respaldo guardado de cada clave de usuario
type SnapshotService struct {
	repo   repository.SnapshotRepository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

func NewSnapshotService(repo repository.SnapshotRepository, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Load devuelve el respaldo guardado para key. Si no existe o no se puede
// leer devuelve el respaldo por defecto.
func (s *SnapshotService) Load(ctx context.Context, key string) (domain.Backup, error) {
	backup, err := s.repo.Load(ctx, key)
	switch {
	case errors.Is(err, repository.ErrSnapshotNotFound):
		return domain.DefaultBackup(), nil
	case errors.Is(err, repository.ErrSnapshotCorrupt):
		s.logger.Warn("stored snapshot is corrupt, using defaults", zap.String("key", key), zap.Error(err))
		return domain.DefaultBackup(), nil
	case err != nil:
		return domain.Backup{}, err
	}
	return normalizeBackup(backup), nil
}

// Save reemplaza los datos de key y devuelve el sobre guardado
func (s *SnapshotService) Save(ctx context.Context, key string, data domain.BackupData) (domain.Backup, error) {
	backup := normalizeBackup(domain.Backup{
		Version:    domain.BackupVersion,
		ExportDate: s.now(),
		Data:       data,
	})
	if err := s.repo.Save(ctx, key, backup); err != nil {
		return domain.Backup{}, fmt.Errorf("save snapshot: %w", err)
	}
	return backup, nil
}

// Export devuelve el respaldo con un id y fecha de exportación nuevos
func (s *SnapshotService) Export(ctx context.Context, key string) (domain.Backup, error) {
	backup, err := s.Load(ctx, key)
	if err != nil {
		return domain.Backup{}, err
	}
	backup.ID = s.newID()
	backup.Version = domain.BackupVersion
	backup.ExportDate = s.now()
	return backup, nil
}

// Import valida un respaldo exportado y lo guarda bajo key
func (s *SnapshotService) Import(ctx context.Context, key string, raw []byte) (domain.Backup, error) {
	result, err := backupSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return domain.Backup{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return domain.Backup{}, fmt.Errorf("%w: %s", ErrInvalidBackup, strings.Join(problems, "; "))
	}

	var backup domain.Backup
	if err := json.Unmarshal(raw, &backup); err != nil {
		return domain.Backup{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	stored, err := s.Save(ctx, key, backup.Data)
	if err != nil {
		return domain.Backup{}, err
	}
	s.logger.Info("backup imported",
		zap.String("key", key),
		zap.String("backup_id", backup.ID),
		zap.Int("debts", len(stored.Data.Debts)),
		zap.Int("goals", len(stored.Data.Goals)),
	)
	return stored, nil
}

func (s *SnapshotService) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Summary devuelve las cifras del tablero para el respaldo guardado
func (s *SnapshotService) Summary(ctx context.Context, key string) (domain.DebtSummary, error) {
	backup, err := s.Load(ctx, key)
	if err != nil {
		return domain.DebtSummary{}, err
	}
	return Summarize(backup), nil
}

// normalizeBackup completa lo que respaldos viejos o parciales omiten
func normalizeBackup(backup domain.Backup) domain.Backup {
	if backup.Version == "" {
		backup.Version = domain.BackupVersion
	}
	if backup.Data.Debts == nil {
		backup.Data.Debts = []domain.Debt{}
	}
	if backup.Data.Goals == nil {
		backup.Data.Goals = []domain.Goal{}
	}
	if backup.Data.Settings == (domain.Settings{}) {
		backup.Data.Settings = domain.DefaultSettings()
	}
	return backup
}
