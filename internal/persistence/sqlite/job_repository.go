package sqlite

import (
	"context"
	"strings"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
)

// JobRepository implements persistence.JobRepository using SQLite
type JobRepository struct {
	pool *ConnectionPool
}

// NewJobRepository creates a new SQLite job repository
func NewJobRepository(pool *ConnectionPool) *JobRepository {
	return &JobRepository{pool: pool}
}

const jobSelect = `
	SELECT j.id, j.company_id, j.title, c.name, j.location, j.type, j.salary,
	       j.description, j.requirements, j.status, j.posted_at, j.created_at, j.updated_at
	FROM jobs j
	JOIN companies c ON c.id = j.company_id
`

// UpsertJob inserts a job or replaces the mutable fields of an existing one.
// The referenced company must already exist.
func (r *JobRepository) UpsertJob(ctx context.Context, job persistence.Job) error {
	return upsertJob(ctx, r.pool.DB(), job)
}

func upsertJob(ctx context.Context, q queryer, job persistence.Job) error {
	if strings.TrimSpace(job.ID) == "" || strings.TrimSpace(job.CompanyID) == "" || strings.TrimSpace(job.Title) == "" {
		return persistence.ErrConstraintViolation
	}

	status := job.Status
	if status == "" {
		status = "open"
	}

	requirements, err := encodeList(job.Requirements)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO jobs (id, company_id, title, location, type, salary, description, requirements, status, posted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			company_id = excluded.company_id,
			title = excluded.title,
			location = excluded.location,
			type = excluded.type,
			salary = excluded.salary,
			description = excluded.description,
			requirements = excluded.requirements,
			status = excluded.status,
			posted_at = excluded.posted_at,
			updated_at = excluded.updated_at
	`
	_, err = q.ExecContext(ctx, query,
		job.ID,
		job.CompanyID,
		job.Title,
		job.Location,
		job.Type,
		job.Salary,
		job.Description,
		requirements,
		status,
		formatTime(job.PostedAt),
		formatTime(job.CreatedAt),
		formatTime(job.UpdatedAt),
	)
	return mapError(err)
}

// GetJob retrieves a job by ID along with its company name
func (r *JobRepository) GetJob(ctx context.Context, id string) (persistence.Job, error) {
	if id == "" {
		return persistence.Job{}, persistence.ErrNotFound
	}
	row := r.pool.DB().QueryRowContext(ctx, jobSelect+` WHERE j.id = ?`, id)
	return scanJob(row)
}

// ListJobs returns jobs matching the filter, newest first
func (r *JobRepository) ListJobs(ctx context.Context, filter persistence.JobFilter) ([]persistence.Job, error) {
	query := jobSelect
	var args []any
	if filter.Status != "" {
		query += ` WHERE j.status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY j.posted_at DESC, j.id`

	rows, err := r.pool.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	jobs := []persistence.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return jobs, nil
}

func scanJob(row rowScanner) (persistence.Job, error) {
	var (
		job                            persistence.Job
		requirements                   string
		postedAt, createdAt, updatedAt string
	)
	err := row.Scan(
		&job.ID,
		&job.CompanyID,
		&job.Title,
		&job.Company,
		&job.Location,
		&job.Type,
		&job.Salary,
		&job.Description,
		&requirements,
		&job.Status,
		&postedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Job{}, mapError(err)
	}

	if job.Requirements, err = decodeList[string]("requirements", requirements); err != nil {
		return persistence.Job{}, err
	}
	if job.PostedAt, err = parseTime("posted_at", postedAt); err != nil {
		return persistence.Job{}, err
	}
	if job.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.Job{}, err
	}
	if job.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.Job{}, err
	}
	return job, nil
}
