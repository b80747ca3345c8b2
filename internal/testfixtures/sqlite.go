package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite storage
// instance for integration-style persistence tests.
type SQLiteHarness struct {
	Store     *sqlite.Store
	Users     persistence.UserRepository
	Sessions  persistence.SessionRepository
	Companies persistence.CompanyRepository
	Jobs      persistence.JobRepository
	Profiles  persistence.ProfileRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	ctx := context.Background()
	path := filepath.Join(tb.TempDir(), "nayidisha.db")

	store, err := sqlite.Open(ctx, sqlite.DefaultConfig(path))
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := store.Migrate(ctx, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Store:     store,
		Users:     store.Users,
		Sessions:  store.Sessions,
		Companies: store.Companies,
		Jobs:      store.Jobs,
		Profiles:  store.Profiles,
		cleanup: func() {
			_ = store.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

// SeedCompanies stores the supplied companies or fails the test.
func (h *SQLiteHarness) SeedCompanies(tb testing.TB, companies ...CompanyFixture) {
	tb.Helper()
	for _, company := range companies {
		if err := h.Companies.UpsertCompany(context.Background(), company.Persistence()); err != nil {
			tb.Fatalf("seed company %s: %v", company.ID, err)
		}
	}
}

// SeedJobs stores the supplied jobs or fails the test.
func (h *SQLiteHarness) SeedJobs(tb testing.TB, jobs ...JobFixture) {
	tb.Helper()
	for _, job := range jobs {
		if err := h.Jobs.UpsertJob(context.Background(), job.Persistence()); err != nil {
			tb.Fatalf("seed job %s: %v", job.ID, err)
		}
	}
}
