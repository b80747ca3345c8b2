package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, DefaultConfig(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(ctx, nil); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return store
}

func TestStoreMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Migrate(ctx, nil); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	for _, table := range []string{"users", "sessions", "companies", "jobs", "job_seeker_profiles", "interviewer_profiles"} {
		var name string
		err := store.pool.DB().QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestWithPragmas(t *testing.T) {
	t.Parallel()

	t.Run("adds defaults", func(t *testing.T) {
		t.Parallel()
		dsn, err := withPragmas(DefaultConfig("app.db"))
		if err != nil {
			t.Fatalf("withPragmas failed: %v", err)
		}
		for _, want := range []string{"foreign_keys%281%29", "busy_timeout%285000%29", "journal_mode%28WAL%29"} {
			if !strings.Contains(dsn, want) {
				t.Fatalf("expected %s in %q", want, dsn)
			}
		}
	})

	t.Run("keeps caller pragmas", func(t *testing.T) {
		t.Parallel()
		dsn, err := withPragmas(DefaultConfig("app.db?_pragma=foreign_keys(0)"))
		if err != nil {
			t.Fatalf("withPragmas failed: %v", err)
		}
		if strings.Contains(dsn, "foreign_keys%281%29") {
			t.Fatalf("caller pragma should win: %q", dsn)
		}
	})

	t.Run("memory databases skip journal mode", func(t *testing.T) {
		t.Parallel()
		dsn, err := withPragmas(DefaultConfig("file::memory:?cache=shared"))
		if err != nil {
			t.Fatalf("withPragmas failed: %v", err)
		}
		if strings.Contains(dsn, "journal_mode") {
			t.Fatalf("unexpected journal_mode in %q", dsn)
		}
	})
}

func TestTimeRoundTripPreservesOrdering(t *testing.T) {
	t.Parallel()

	early := time.Date(2024, time.March, 1, 9, 0, 0, 5, time.FixedZone("IST", 5*3600+1800))
	late := early.Add(time.Second)

	a, b := formatTime(early), formatTime(late)
	if len(a) != len(b) || a >= b {
		t.Fatalf("formatted times must be fixed width and ordered: %q %q", a, b)
	}

	parsed, err := parseTime("posted_at", a)
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if !parsed.Equal(early) || parsed.Location() != time.UTC {
		t.Fatalf("unexpected parsed time %v", parsed)
	}

	if got, err := parseNullTime("revoked_at", sql.NullString{}); err != nil || got != nil {
		t.Fatalf("expected nil for NULL, got %v %v", got, err)
	}
}

func TestListCodec(t *testing.T) {
	t.Parallel()

	raw, err := encodeList[string](nil)
	if err != nil || raw != "[]" {
		t.Fatalf("nil list should encode as [], got %q %v", raw, err)
	}
	values, err := decodeList[string]("skills", "")
	if err != nil || values == nil || len(values) != 0 {
		t.Fatalf("empty column should decode to an empty list, got %#v %v", values, err)
	}
	if _, err := decodeList[string]("skills", "{"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	if !errors.Is(mapError(sql.ErrNoRows), persistence.ErrNotFound) {
		t.Fatalf("sql.ErrNoRows should map to ErrNotFound")
	}
	if mapError(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	other := errors.New("boom")
	if !errors.Is(mapError(other), other) {
		t.Fatalf("unknown errors pass through")
	}
}

func TestWriteCatalog(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)
	acme := persistence.Company{ID: "acme", Name: "Acme", CreatedAt: now, UpdatedAt: now}
	frontend := persistence.Job{ID: "job-fe", CompanyID: "acme", Title: "Frontend Developer", PostedAt: now, CreatedAt: now, UpdatedAt: now}
	orphan := persistence.Job{ID: "job-x", CompanyID: "ghost", Title: "Orphan", PostedAt: now, CreatedAt: now, UpdatedAt: now}

	t.Run("commits every write", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)
		ctx := context.Background()

		err := store.WriteCatalog(ctx, func(tx *CatalogTx) error {
			if err := tx.UpsertCompany(ctx, acme); err != nil {
				return err
			}
			return tx.UpsertJob(ctx, frontend)
		})
		if err != nil {
			t.Fatalf("WriteCatalog failed: %v", err)
		}

		jobs, err := store.Jobs.ListJobs(ctx, persistence.JobFilter{})
		if err != nil {
			t.Fatalf("ListJobs failed: %v", err)
		}
		if len(jobs) != 1 || jobs[0].Company != "Acme" {
			t.Fatalf("expected the committed job, got %+v", jobs)
		}
	})

	t.Run("a failing job discards the earlier writes", func(t *testing.T) {
		t.Parallel()
		store := newTestStore(t)
		ctx := context.Background()

		err := store.WriteCatalog(ctx, func(tx *CatalogTx) error {
			if err := tx.UpsertCompany(ctx, acme); err != nil {
				return err
			}
			if err := tx.UpsertJob(ctx, frontend); err != nil {
				return err
			}
			return tx.UpsertJob(ctx, orphan)
		})
		if !errors.Is(err, persistence.ErrForeignKeyViolation) {
			t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
		}

		jobs, err := store.Jobs.ListJobs(ctx, persistence.JobFilter{})
		if err != nil {
			t.Fatalf("ListJobs failed: %v", err)
		}
		companies, err := store.Companies.ListCompanies(ctx)
		if err != nil {
			t.Fatalf("ListCompanies failed: %v", err)
		}
		if len(jobs) != 0 || len(companies) != 0 {
			t.Fatalf("expected nothing stored, got %d jobs and %d companies", len(jobs), len(companies))
		}
	})
}
