package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/application"
)

const (
	emptyJobsMessage   = "No jobs found matching your criteria"
	jobNotFoundMessage = "Job not found"
	jobLoadFailMessage = "Failed to load job details"
)

type jobService interface {
	ListJobs(ctx context.Context, params application.ListJobsParams) ([]application.Job, error)
	GetJobDetails(ctx context.Context, id string) (application.JobDetails, error)
}

// JobHandler serves the job listing and job detail endpoints.
type JobHandler struct {
	service   jobService
	responder responder
	logger    *slog.Logger
}

func NewJobHandler(service jobService, logger *slog.Logger) *JobHandler {
	base := defaultLogger(logger)
	return &JobHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *JobHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "JobHandler", operation, attrs...)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	params := application.ListJobsParams{
		Status:   application.JobStatus(query.Get("status")),
		Search:   query.Get("search"),
		Location: query.Get("location"),
	}
	logger := h.log(r.Context(), "List", "status", string(params.Status))

	jobs, err := h.service.ListJobs(r.Context(), params)
	if err != nil {
		logFailure(r.Context(), logger, "failed to list jobs", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	resp := jobListResponse{
		Jobs:  make([]jobDTO, 0, len(jobs)),
		Total: len(jobs),
		Empty: len(jobs) == 0,
	}
	for _, job := range jobs {
		resp.Jobs = append(resp.Jobs, toJobDTO(job))
	}
	if resp.Empty {
		resp.EmptyMessage = emptyJobsMessage
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

// Get returns a job with its company. The job ID is read from the request
// context, where the router stores it.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, _ := JobIDFromContext(r.Context())
	logger := h.log(r.Context(), "Get", "job_id", id)

	details, err := h.service.GetJobDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			logger.InfoContext(r.Context(), "job not found", "error", err, "error_kind", application.ErrorKind(err))
			h.responder.writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Message: jobNotFoundMessage})
			return
		}
		logger.ErrorContext(r.Context(), "failed to load job details", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{Message: jobLoadFailMessage})
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, jobDetailsResponse{
		Job:     toJobDTO(details.Job),
		Company: toCompanyDTO(details.Company),
	})
}

type jobDTO struct {
	ID           string   `json:"id"`
	CompanyID    string   `json:"company_id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Salary       string   `json:"salary"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Status       string   `json:"status"`
	PostedAt     string   `json:"posted_at"`
}

func toJobDTO(job application.Job) jobDTO {
	requirements := job.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	return jobDTO{
		ID:           job.ID,
		CompanyID:    job.CompanyID,
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Type:         job.Type,
		Salary:       job.Salary,
		Description:  job.Description,
		Requirements: requirements,
		Status:       string(job.Status),
		PostedAt:     job.PostedAt.UTC().Format(time.RFC3339),
	}
}

type companyDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toCompanyDTO(company application.Company) companyDTO {
	return companyDTO{ID: company.ID, Name: company.Name, Description: company.Description}
}

type jobListResponse struct {
	Jobs         []jobDTO `json:"jobs"`
	Total        int      `json:"total"`
	Empty        bool     `json:"empty"`
	EmptyMessage string   `json:"empty_message,omitempty"`
}

type jobDetailsResponse struct {
	Job     jobDTO     `json:"job"`
	Company companyDTO `json:"company"`
}
