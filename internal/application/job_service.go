package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/cache"
)

// JobRepository lists and loads job postings.
type JobRepository interface {
	ListJobs(ctx context.Context, status JobStatus) ([]Job, error)
	GetJob(ctx context.Context, id string) (Job, error)
}

// CompanyRepository loads company records.
type CompanyRepository interface {
	GetCompany(ctx context.Context, id string) (Company, error)
}

// JobListCache stores encoded job listings keyed by status.
type JobListCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}

// JobService serves the job listing and job detail views.
type JobService struct {
	jobs      JobRepository
	companies CompanyRepository
	cache     JobListCache
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// NewJobService constructs a JobService. cache may be nil to disable caching.
func NewJobService(jobs JobRepository, companies CompanyRepository, listCache JobListCache, cacheTTL time.Duration) *JobService {
	return NewJobServiceWithLogger(jobs, companies, listCache, cacheTTL, nil)
}

// NewJobServiceWithLogger constructs a JobService with a specified logger.
func NewJobServiceWithLogger(jobs JobRepository, companies CompanyRepository, listCache JobListCache, cacheTTL time.Duration, logger *slog.Logger) *JobService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &JobService{
		jobs:      jobs,
		companies: companies,
		cache:     listCache,
		cacheTTL:  cacheTTL,
		logger:    defaultLogger(logger),
	}
}

func (s *JobService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "JobService", operation, attrs...)
}

// ListJobs returns the jobs with the requested status (open by default),
// newest first, narrowed by FilterJobs.
func (s *JobService) ListJobs(ctx context.Context, params ListJobsParams) (jobs []Job, err error) {
	if s == nil {
		err = fmt.Errorf("JobService is nil")
		return
	}
	if s.jobs == nil {
		err = fmt.Errorf("job repository not configured")
		return
	}

	status := JobStatus(strings.ToLower(strings.TrimSpace(string(params.Status))))
	if status == "" {
		status = JobStatusOpen
	}

	logger := s.loggerWith(ctx, "ListJobs",
		"status", string(status),
		"search_provided", params.Search != "",
		"location_provided", params.Location != "",
	)
	defer func() {
		logResult(ctx, logger, err, "jobs listed", "failed to list jobs", "count", len(jobs))
	}()

	if status != JobStatusOpen && status != JobStatusClosed {
		vErr := &ValidationError{}
		vErr.fail("Unknown job status")
		vErr.add("status", "status must be open or closed")
		err = vErr
		return
	}

	var all []Job
	all, err = s.listByStatus(ctx, logger, status)
	if err != nil {
		return
	}

	jobs = FilterJobs(all, params.Search, params.Location)
	return
}

func (s *JobService) listByStatus(ctx context.Context, logger *slog.Logger, status JobStatus) ([]Job, error) {
	key := cache.Key("jobs", string(status))
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var cached []Job
			if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
				logger.DebugContext(ctx, "job list cache hit")
				return cached, nil
			}
		case !errors.Is(err, cache.ErrNotFound):
			logger.WarnContext(ctx, "job list cache unavailable", "error", err)
		}
	}

	jobs, err := s.jobs.ListJobs(ctx, status)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, jsonErr := json.Marshal(jobs); jsonErr == nil {
			if setErr := s.cache.Set(ctx, key, data, s.cacheTTL); setErr != nil {
				logger.WarnContext(ctx, "failed to cache job list", "error", setErr)
			}
		}
	}
	return jobs, nil
}

// InvalidateJobs drops every cached job listing.
func (s *JobService) InvalidateJobs(ctx context.Context) error {
	if s == nil || s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.loggerWith(ctx, "InvalidateJobs").ErrorContext(ctx, "failed to clear job list cache", "error", err)
		return err
	}
	return nil
}

// GetJobDetails loads a job and its company. A missing job or a missing
// company both yield ErrNotFound; no partial result is returned.
func (s *JobService) GetJobDetails(ctx context.Context, id string) (details JobDetails, err error) {
	if s == nil {
		err = fmt.Errorf("JobService is nil")
		return
	}
	if s.jobs == nil || s.companies == nil {
		err = fmt.Errorf("job service dependencies not configured")
		return
	}

	id = strings.TrimSpace(id)
	logger := s.loggerWith(ctx, "GetJobDetails", "job_id", id)
	defer func() {
		if errors.Is(err, ErrNotFound) {
			logger.InfoContext(ctx, "job details not found", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logResult(ctx, logger, err, "job details loaded", "failed to load job details")
	}()

	if id == "" {
		err = ErrNotFound
		return
	}

	var job Job
	job, err = s.jobs.GetJob(ctx, id)
	if err != nil {
		return
	}

	var company Company
	company, err = s.companies.GetCompany(ctx, job.CompanyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = fmt.Errorf("company %q of job %q: %w", job.CompanyID, job.ID, ErrNotFound)
		}
		return
	}

	details = JobDetails{Job: job, Company: company}
	return
}
