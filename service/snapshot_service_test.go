package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"debt-tracker/domain"
	"debt-tracker/repository"
)

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newTestSnapshotService(t *testing.T) (*SnapshotService, *repository.SnapshotRepositoryMemory) {
	t.Helper()
	repo := repository.NewSnapshotRepositoryMemory()
	svc := NewSnapshotService(repo, zaptest.NewLogger(t))
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "backup-1" }
	return svc, repo
}

func sampleBackupData() domain.BackupData {
	return domain.BackupData{
		Debts: []domain.Debt{
			{Name: "Visa", Balance: 3200, Rate: 22.9, MinimumPayment: 95},
			{Name: "Car", Balance: 12000, Rate: 6.5, MinimumPayment: 310},
		},
		Goals: []domain.Goal{
			{Title: "Rainy day", Category: domain.GoalCategoryEmergency, TargetAmount: 10000, CurrentAmount: 2500},
			{Title: "Laptop", Category: "Purchase", TargetAmount: 1500, CurrentAmount: 1500},
		},
		Income:   60000,
		Settings: domain.DefaultSettings(),
	}
}

func TestSnapshotService_LoadMissingReturnsDefaults(t *testing.T) {
	svc, _ := newTestSnapshotService(t)

	backup, err := svc.Load(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBackup(), backup)
}

func TestSnapshotService_LoadCorruptReturnsDefaults(t *testing.T) {
	svc, repo := newTestSnapshotService(t)
	repo.SaveRaw("alice", []byte("{{{"))

	backup, err := svc.Load(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBackup(), backup)
}

func TestSnapshotService_SaveAndLoad(t *testing.T) {
	svc, _ := newTestSnapshotService(t)
	ctx := context.Background()

	stored, err := svc.Save(ctx, "alice", sampleBackupData())
	require.NoError(t, err)
	assert.Equal(t, domain.BackupVersion, stored.Version)
	assert.Equal(t, fixedNow, stored.ExportDate)

	loaded, err := svc.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, stored.Data.Debts, loaded.Data.Debts)
	assert.Equal(t, 60000.0, loaded.Data.Income)
}

func TestSnapshotService_SaveFillsDefaults(t *testing.T) {
	svc, _ := newTestSnapshotService(t)

	stored, err := svc.Save(context.Background(), "alice", domain.BackupData{Income: 1000})

	require.NoError(t, err)
	assert.NotNil(t, stored.Data.Debts)
	assert.NotNil(t, stored.Data.Goals)
	assert.Equal(t, domain.DefaultSettings(), stored.Data.Settings)
}

func TestSnapshotService_Export(t *testing.T) {
	svc, _ := newTestSnapshotService(t)
	ctx := context.Background()
	_, err := svc.Save(ctx, "alice", sampleBackupData())
	require.NoError(t, err)

	exported, err := svc.Export(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, "backup-1", exported.ID)
	assert.Equal(t, domain.BackupVersion, exported.Version)
	assert.True(t, fixedNow.Equal(exported.ExportDate))
	assert.Len(t, exported.Data.Debts, 2)
}

func TestSnapshotService_Import(t *testing.T) {
	svc, _ := newTestSnapshotService(t)
	ctx := context.Background()
	raw := []byte(`{
		"id": "old-id",
		"version": "1.0",
		"exportDate": "2025-12-01T00:00:00Z",
		"data": {
			"debts": [{"name": "Visa", "balance": 3200, "rate": 22.9, "minimumPayment": 95}],
			"goals": [],
			"income": 48000,
			"settings": {"currency": "EUR", "defaultStrategy": "snowball"}
		}
	}`)

	stored, err := svc.Import(ctx, "bob", raw)

	require.NoError(t, err)
	assert.Equal(t, 48000.0, stored.Data.Income)
	assert.Equal(t, "EUR", stored.Data.Settings.Currency)
	assert.Equal(t, domain.StrategySnowball, stored.Data.Settings.DefaultStrategy)

	loaded, err := svc.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, stored.Data.Debts, loaded.Data.Debts)
}

func TestSnapshotService_ImportRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"version":`},
		{"missing data", `{"version": "1.0"}`},
		{"missing version", `{"data": {}}`},
		{"debt without balance", `{"version": "1.0", "data": {"debts": [{"name": "A", "rate": 1, "minimumPayment": 5}]}}`},
		{"unknown strategy", `{"version": "1.0", "data": {"settings": {"defaultStrategy": "random"}}}`},
		{"wrong type", `{"version": "1.0", "data": {"income": "lots"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestSnapshotService(t)

			_, err := svc.Import(context.Background(), "bob", []byte(tt.raw))

			assert.ErrorIs(t, err, ErrInvalidBackup)
			_, loadErr := repo.Load(context.Background(), "bob")
			assert.ErrorIs(t, loadErr, repository.ErrSnapshotNotFound)
		})
	}
}

func TestSnapshotService_Delete(t *testing.T) {
	svc, _ := newTestSnapshotService(t)
	ctx := context.Background()
	_, err := svc.Save(ctx, "alice", sampleBackupData())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice"))
	assert.ErrorIs(t, svc.Delete(ctx, "alice"), repository.ErrSnapshotNotFound)
}

func TestSnapshotService_Summary(t *testing.T) {
	svc, _ := newTestSnapshotService(t)
	ctx := context.Background()
	_, err := svc.Save(ctx, "alice", sampleBackupData())
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, 15200.0, summary.TotalDebt)
	assert.Equal(t, 2, summary.DebtCount)
}
