package http

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"debt-tracker/repository"
	"debt-tracker/service"
)

type SnapshotHandler struct {
	snapshots *service.SnapshotService
	health    *service.HealthService
	logger    *zap.Logger
}

func NewSnapshotHandler(
	snapshots *service.SnapshotService,
	health *service.HealthService,
	logger *zap.Logger,
) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, health: health, logger: logger}
}

// Snapshot atiende GET, PUT y DELETE en /snapshots/{key}
func (h *SnapshotHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	key, ok := snapshotKey(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		backup, err := h.snapshots.Load(r.Context(), key)
		if err != nil {
			h.storageError(w, key, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, backup)

	case http.MethodPut:
		var req saveSnapshotRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		backup, err := h.snapshots.Save(r.Context(), key, req.toBackupData())
		if err != nil {
			h.storageError(w, key, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, backup)

	case http.MethodDelete:
		if err := h.snapshots.Delete(r.Context(), key); err != nil {
			h.storageError(w, key, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	key, ok := snapshotKey(w, r)
	if !ok {
		return
	}

	backup, err := h.snapshots.Export(r.Context(), key)
	if err != nil {
		h.storageError(w, key, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="debt-tracker-backup.json"`)
	writeJSON(w, h.logger, http.StatusOK, backup)
}

func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	key, ok := snapshotKey(w, r)
	if !ok {
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	backup, err := h.snapshots.Import(r.Context(), key, raw)
	if err != nil {
		h.storageError(w, key, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, backup)
}

func (h *SnapshotHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	key, ok := snapshotKey(w, r)
	if !ok {
		return
	}

	summary, err := h.snapshots.Summary(r.Context(), key)
	if err != nil {
		h.storageError(w, key, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, summary)
}

func (h *SnapshotHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	key, ok := snapshotKey(w, r)
	if !ok {
		return
	}

	backup, err := h.snapshots.Load(r.Context(), key)
	if err != nil {
		h.storageError(w, key, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, h.health.Score(backup.FinancialSnapshot()))
}

func snapshotKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	key := r.PathValue("key")
	if err := validate.Var(key, "required,max=128,printascii"); err != nil {
		http.Error(w, "invalid snapshot key", http.StatusBadRequest)
		return "", false
	}
	return key, true
}

func (h *SnapshotHandler) storageError(w http.ResponseWriter, key string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidBackup):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrSnapshotNotFound):
		http.Error(w, "snapshot not found", http.StatusNotFound)
	default:
		h.logger.Error("snapshot storage error", zap.String("key", key), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
