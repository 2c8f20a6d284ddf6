package http

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"debt-tracker/config"
	"debt-tracker/domain"
	"debt-tracker/repository"
	"debt-tracker/service"
)

type mockSnapshotRepository struct {
	mock.Mock
}

func (m *mockSnapshotRepository) Save(ctx context.Context, key string, backup domain.Backup) error {
	args := m.Called(ctx, key, backup)
	return args.Error(0)
}

func (m *mockSnapshotRepository) Load(ctx context.Context, key string) (domain.Backup, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(domain.Backup), args.Error(1)
}

func (m *mockSnapshotRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newRouterWithRepo(t *testing.T, repo repository.SnapshotRepository) http.Handler {
	t.Helper()
	logger := zaptest.NewLogger(t)
	limiter := NewRateLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(RouterDeps{
		Payoff:    service.NewPayoffService(nil, service.NewExplanationService(config.ExplanationConfig{}, logger), logger),
		Health:    service.NewHealthService(logger),
		Snapshots: service.NewSnapshotService(repo, logger),
		Limiter:   limiter,
		Logger:    logger,
	})
}

func TestSnapshotHandlers_StorageFailure(t *testing.T) {
	storageDown := errors.New("connection refused")
	repo := new(mockSnapshotRepository)
	repo.On("Load", mock.Anything, "alice").Return(domain.Backup{}, storageDown)
	repo.On("Save", mock.Anything, "alice", mock.AnythingOfType("domain.Backup")).Return(storageDown)
	repo.On("Delete", mock.Anything, "alice").Return(storageDown)

	router := newRouterWithRepo(t, repo)

	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodGet, "/snapshots/alice", ""},
		{http.MethodGet, "/snapshots/alice/summary", ""},
		{http.MethodGet, "/snapshots/alice/health", ""},
		{http.MethodGet, "/snapshots/alice/export", ""},
		{http.MethodPut, "/snapshots/alice", `{"income": 1000}`},
		{http.MethodDelete, "/snapshots/alice", ""},
	} {
		w := doJSON(t, router, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, "%s %s", tc.method, tc.path)
		assert.NotContains(t, w.Body.String(), "connection refused")
	}

	repo.AssertExpectations(t)
}

func TestSnapshotHandlers_InvalidKey(t *testing.T) {
	repo := new(mockSnapshotRepository)
	router := newRouterWithRepo(t, repo)

	w := doJSON(t, router, http.MethodGet, "/snapshots/caf%C3%A9", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}
