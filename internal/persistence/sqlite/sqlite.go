package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

const schemaDir = "migrations"

// Store bundles the SQLite repositories that share one connection pool.
type Store struct {
	pool *ConnectionPool

	Users     *UserRepository
	Sessions  *SessionRepository
	Companies *CompanyRepository
	Jobs      *JobRepository
	Profiles  *ProfileRepository
}

// Open connects to the database described by config. Call Migrate before use.
func Open(ctx context.Context, config Config) (*Store, error) {
	pool, err := NewConnectionPool(ctx, config)
	if err != nil {
		return nil, err
	}
	return &Store{
		pool:      pool,
		Users:     NewUserRepository(pool),
		Sessions:  NewSessionRepository(pool),
		Companies: NewCompanyRepository(pool),
		Jobs:      NewJobRepository(pool),
		Profiles:  NewProfileRepository(pool),
	}, nil
}

// Migrate applies the embedded schema migrations.
func (s *Store) Migrate(ctx context.Context, logger *slog.Logger) error {
	manager := migration.NewManager(migration.NewScanner(), migration.NewSQLiteExecutor(s.pool.DB()), schemaFS, schemaDir, logger)
	if err := manager.RunMigrations(ctx); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// CatalogTx writes companies and jobs inside one transaction.
type CatalogTx struct {
	tx *sql.Tx
}

// UpsertCompany behaves like CompanyRepository.UpsertCompany within the transaction.
func (c *CatalogTx) UpsertCompany(ctx context.Context, company persistence.Company) error {
	return upsertCompany(ctx, c.tx, company)
}

// UpsertJob behaves like JobRepository.UpsertJob within the transaction.
func (c *CatalogTx) UpsertJob(ctx context.Context, job persistence.Job) error {
	return upsertJob(ctx, c.tx, job)
}

// WriteCatalog runs fn in a transaction. Every write made through the
// CatalogTx is committed when fn returns nil and rolled back otherwise.
func (s *Store) WriteCatalog(ctx context.Context, fn func(tx *CatalogTx) error) error {
	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		return fn(&CatalogTx{tx: tx})
	})
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.pool.Close()
}

// timeLayout is fixed width so that stored timestamps sort and compare lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(column, value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t.UTC(), nil
}

func parseNullTime(column string, value sql.NullString) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	t, err := parseTime(column, value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatNullTime(t *time.Time) sql.NullString {
	if t == nil || t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

// encodeList stores collections as JSON arrays. Nil slices are written as [].
func encodeList[T any](values []T) (string, error) {
	if values == nil {
		values = []T{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func decodeList[T any](column, raw string) ([]T, error) {
	values := []T{}
	if raw == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", column, err)
	}
	return values, nil
}
