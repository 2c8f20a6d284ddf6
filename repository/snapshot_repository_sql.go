package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"  // register postgres driver
	_ "modernc.org/sqlite" // register sqlite driver

	"debt-tracker/domain"
)

const snapshotSchemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_key TEXT PRIMARY KEY,
    payload      TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);
`

// Dialect holds the statements that differ between SQL engines.
type Dialect struct {
	Name      string
	upsertSQL string
	selectSQL string
	deleteSQL string
}

const upsertOnConflictSQL = `
ON CONFLICT (snapshot_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

var (
	DialectSQLite = Dialect{
		Name:      "sqlite",
		upsertSQL: `INSERT INTO snapshots (snapshot_key, payload, updated_at) VALUES (?, ?, ?)` + upsertOnConflictSQL,
		selectSQL: `SELECT payload FROM snapshots WHERE snapshot_key = ?`,
		deleteSQL: `DELETE FROM snapshots WHERE snapshot_key = ?`,
	}

	DialectPostgres = Dialect{
		Name:      "postgres",
		upsertSQL: `INSERT INTO snapshots (snapshot_key, payload, updated_at) VALUES ($1, $2, $3)` + upsertOnConflictSQL,
		selectSQL: `SELECT payload FROM snapshots WHERE snapshot_key = $1`,
		deleteSQL: `DELETE FROM snapshots WHERE snapshot_key = $1`,
	}
)

// SQLSnapshotRepository stores backups as JSON text in a single table.
type SQLSnapshotRepository struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewSQLSnapshotRepository(db *sql.DB, dialect Dialect) *SQLSnapshotRepository {
	return &SQLSnapshotRepository{
		db:      db,
		dialect: dialect,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// OpenSQLite opens or creates the snapshot database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLSnapshotRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	repo := NewSQLSnapshotRepository(db, DialectSQLite)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenPostgres connects to Postgres using dsn and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string) (*SQLSnapshotRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	repo := NewSQLSnapshotRepository(db, DialectPostgres)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLSnapshotRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, snapshotSchemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (r *SQLSnapshotRepository) Save(ctx context.Context, key string, backup domain.Backup) error {
	payload, err := json.Marshal(backup)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	updatedAt := r.now().Format(time.RFC3339)
	if _, err := r.db.ExecContext(ctx, r.dialect.upsertSQL, key, string(payload), updatedAt); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

func (r *SQLSnapshotRepository) Load(ctx context.Context, key string) (domain.Backup, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, r.dialect.selectSQL, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Backup{}, ErrSnapshotNotFound
	}
	if err != nil {
		return domain.Backup{}, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return decodeSnapshot([]byte(payload))
}

func (r *SQLSnapshotRepository) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.deleteSQL, key)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	if affected == 0 {
		return ErrSnapshotNotFound
	}
	return nil
}

func (r *SQLSnapshotRepository) Close() error {
	return r.db.Close()
}
