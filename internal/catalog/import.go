package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/logging"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
)

// Writer stores catalog rows. UpsertJob returns
// persistence.ErrForeignKeyViolation when the company does not exist.
type Writer interface {
	UpsertCompany(ctx context.Context, company persistence.Company) error
	UpsertJob(ctx context.Context, job persistence.Job) error
}

// Transactor runs fn against a Writer whose writes are committed together when
// fn returns nil and discarded when it returns an error.
type Transactor func(ctx context.Context, fn func(w Writer) error) error

// Result summarises an import.
type Result struct {
	Companies int
	Jobs      int
}

// Importer writes catalogs to storage and invalidates cached listings afterwards.
type Importer struct {
	inTx       Transactor
	invalidate func(context.Context) error
	now        func() time.Time
	logger     *slog.Logger
}

// NewImporter constructs an Importer. invalidate may be nil.
func NewImporter(inTx Transactor, invalidate func(context.Context) error, now func() time.Time, logger *slog.Logger) *Importer {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		inTx:       inTx,
		invalidate: invalidate,
		now:        now,
		logger:     logger,
	}
}

// Import upserts every company, then every job, in one transaction. A job
// whose company is neither in the catalog nor in storage aborts the import
// with an error naming it, and nothing from the catalog is kept. The job list
// cache is cleared only after a successful commit.
func (i *Importer) Import(ctx context.Context, cat Catalog) (result Result, err error) {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = i.logger
	}
	logger = logger.With("component", "catalog")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "catalog import failed", "error", err, "companies", result.Companies, "jobs", result.Jobs)
			return
		}
		logger.InfoContext(ctx, "catalog imported", "companies", result.Companies, "jobs", result.Jobs)
	}()

	if err = cat.Validate(); err != nil {
		return
	}

	now := i.now().UTC()
	companies := make([]persistence.Company, 0, len(cat.Companies))
	for _, company := range cat.Companies {
		companies = append(companies, persistence.Company{
			ID:          strings.TrimSpace(company.ID),
			Name:        strings.TrimSpace(company.Name),
			Description: company.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	jobs := make([]persistence.Job, 0, len(cat.Jobs))
	for _, job := range cat.Jobs {
		var record persistence.Job
		if record, err = jobRecord(job, now); err != nil {
			return
		}
		jobs = append(jobs, record)
	}

	err = i.inTx(ctx, func(w Writer) error {
		for _, company := range companies {
			if err := w.UpsertCompany(ctx, company); err != nil {
				return fmt.Errorf("catalog: company %q: %w", company.ID, err)
			}
		}
		for _, job := range jobs {
			if err := w.UpsertJob(ctx, job); err != nil {
				if errors.Is(err, persistence.ErrForeignKeyViolation) {
					return fmt.Errorf("catalog: job %q references unknown company %q: %w", job.ID, job.CompanyID, err)
				}
				return fmt.Errorf("catalog: job %q: %w", job.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return
	}
	result = Result{Companies: len(companies), Jobs: len(jobs)}

	if i.invalidate != nil {
		if err = i.invalidate(ctx); err != nil {
			err = fmt.Errorf("catalog: invalidate job cache: %w", err)
		}
	}
	return
}

func jobRecord(job Job, now time.Time) (persistence.Job, error) {
	posted := now
	if job.PostedAt != "" {
		parsed, err := time.Parse(time.RFC3339, job.PostedAt)
		if err != nil {
			return persistence.Job{}, fmt.Errorf("catalog: job %q: %w", job.ID, err)
		}
		posted = parsed.UTC()
	}
	status := job.Status
	if status == "" {
		status = "open"
	}
	requirements := make([]string, 0, len(job.Requirements))
	for _, req := range job.Requirements {
		if req = strings.TrimSpace(req); req != "" {
			requirements = append(requirements, req)
		}
	}
	return persistence.Job{
		ID:           strings.TrimSpace(job.ID),
		CompanyID:    strings.TrimSpace(job.CompanyID),
		Title:        strings.TrimSpace(job.Title),
		Location:     strings.TrimSpace(job.Location),
		Type:         strings.TrimSpace(job.Type),
		Salary:       strings.TrimSpace(job.Salary),
		Description:  job.Description,
		Requirements: requirements,
		Status:       status,
		PostedAt:     posted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
