package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/application"
)

const (
	jobSeekerDashboardPath   = "/dashboard/job-seeker"
	interviewerDashboardPath = "/dashboard/interviewer"
)

type profileService interface {
	GetOrCreateJobSeekerProfile(ctx context.Context, principal application.Principal) (application.JobSeekerProfile, bool, error)
	GetOrCreateInterviewerProfile(ctx context.Context, principal application.Principal) (application.InterviewerProfile, bool, error)
	UpdateJobSeekerProfile(ctx context.Context, principal application.Principal, input application.JobSeekerProfileInput) (application.JobSeekerProfile, error)
	UpdateInterviewerProfile(ctx context.Context, principal application.Principal, input application.InterviewerProfileInput) (application.InterviewerProfile, error)
}

// ProfileHandler serves the profile view and edit endpoints for both roles.
// Every route expects RequireSession to have stored the principal.
type ProfileHandler struct {
	service   profileService
	responder responder
	logger    *slog.Logger
}

func NewProfileHandler(service profileService, logger *slog.Logger) *ProfileHandler {
	base := defaultLogger(logger)
	return &ProfileHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ProfileHandler) log(ctx context.Context, operation string) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ProfileHandler", operation)
}

func (h *ProfileHandler) principal(w http.ResponseWriter, r *http.Request) (application.Principal, bool) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok || principal.UserID == "" {
		h.responder.handleServiceError(r.Context(), w, application.ErrUnauthorized)
		return application.Principal{}, false
	}
	return principal, true
}

func (h *ProfileHandler) GetJobSeeker(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	logger := h.log(r.Context(), "GetJobSeeker")

	profile, isNew, err := h.service.GetOrCreateJobSeekerProfile(r.Context(), principal)
	if err != nil {
		logFailure(r.Context(), logger, "failed to load job seeker profile", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, jobSeekerProfileResponse{
		jobSeekerProfileDTO: toJobSeekerDTO(profile),
		IsNew:               isNew,
		Email:               principal.Email,
		Display:             toJobSeekerDisplayDTO(application.JobSeekerDisplay(profile)),
	})
}

func (h *ProfileHandler) UpdateJobSeeker(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	logger := h.log(r.Context(), "UpdateJobSeeker")

	var req jobSeekerProfileDTO
	if err := decodeJSON(r, &req); err != nil {
		logger.InfoContext(r.Context(), "failed to decode profile request", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	profile, err := h.service.UpdateJobSeekerProfile(r.Context(), principal, application.JobSeekerProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		logFailure(r.Context(), logger, "job seeker profile update rejected", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "job seeker profile saved")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, profileUpdateResponse{
		Profile:    toJobSeekerDTO(profile),
		RedirectTo: jobSeekerDashboardPath,
	})
}

func (h *ProfileHandler) GetInterviewer(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	logger := h.log(r.Context(), "GetInterviewer")

	profile, isNew, err := h.service.GetOrCreateInterviewerProfile(r.Context(), principal)
	if err != nil {
		logFailure(r.Context(), logger, "failed to load interviewer profile", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, interviewerProfileResponse{
		interviewerProfileDTO: toInterviewerDTO(profile),
		IsNew:                 isNew,
		Email:                 principal.Email,
		Display:               toInterviewerDisplayDTO(application.InterviewerDisplay(profile)),
	})
}

func (h *ProfileHandler) UpdateInterviewer(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	logger := h.log(r.Context(), "UpdateInterviewer")

	var req interviewerProfileDTO
	if err := decodeJSON(r, &req); err != nil {
		logger.InfoContext(r.Context(), "failed to decode profile request", "error", err, "error_kind", "bad_request")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	profile, err := h.service.UpdateInterviewerProfile(r.Context(), principal, application.InterviewerProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Company:      req.Company,
		Position:     req.Position,
		Experience:   req.Experience,
		Expertise:    req.Expertise,
		Availability: fromAvailabilityDTOs(req.Availability),
	})
	if err != nil {
		logFailure(r.Context(), logger, "interviewer profile update rejected", err)
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "interviewer profile saved")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, profileUpdateResponse{
		Profile:    toInterviewerDTO(profile),
		RedirectTo: interviewerDashboardPath,
	})
}

// The GET bodies carry the profile fields at the top level so the edit form
// can post the fetched object straight back. The extra keys are ignored on
// decode.
type jobSeekerProfileResponse struct {
	jobSeekerProfileDTO
	IsNew   bool                `json:"is_new"`
	Email   string              `json:"email"`
	Display jobSeekerDisplayDTO `json:"display"`
}

type interviewerProfileResponse struct {
	interviewerProfileDTO
	IsNew   bool                  `json:"is_new"`
	Email   string                `json:"email"`
	Display interviewerDisplayDTO `json:"display"`
}

type profileUpdateResponse struct {
	Profile    any    `json:"profile"`
	RedirectTo string `json:"redirect_to"`
}

type workExperienceDTO struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type educationDTO struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	Marks       string `json:"marks"`
}

type availabilityDTO struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// jobSeekerProfileDTO is both the response shape and the edit request body.
// Only the name and phone fields are read from requests.
type jobSeekerProfileDTO struct {
	UserID     string              `json:"userId"`
	FirstName  string              `json:"firstName"`
	LastName   string              `json:"lastName"`
	Phone      string              `json:"phone"`
	Skills     []string            `json:"skills"`
	Experience []workExperienceDTO `json:"experience"`
	Education  []educationDTO      `json:"education"`
	Resume     string              `json:"resume"`
	CreatedAt  string              `json:"createdAt,omitempty"`
	UpdatedAt  string              `json:"updatedAt,omitempty"`
}

type interviewerProfileDTO struct {
	UserID       string            `json:"userId"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Phone        string            `json:"phone"`
	Expertise    []string          `json:"expertise"`
	Experience   int               `json:"experience"`
	Company      string            `json:"company"`
	Position     string            `json:"position"`
	Availability []availabilityDTO `json:"availability"`
	CreatedAt    string            `json:"createdAt,omitempty"`
	UpdatedAt    string            `json:"updatedAt,omitempty"`
}

type jobSeekerDisplayDTO struct {
	FullName     string              `json:"fullName"`
	Phone        string              `json:"phone"`
	Skills       []string            `json:"skills"`
	Education    []educationDTO      `json:"education"`
	Experience   []workExperienceDTO `json:"experience"`
	Placeholders []string            `json:"placeholders"`
}

type interviewerDisplayDTO struct {
	FullName     string            `json:"fullName"`
	Phone        string            `json:"phone"`
	Experience   int               `json:"experience"`
	Company      string            `json:"company"`
	Position     string            `json:"position"`
	Expertise    []string          `json:"expertise"`
	Availability []availabilityDTO `json:"availability"`
	Placeholders []string          `json:"placeholders"`
}

func toJobSeekerDTO(profile application.JobSeekerProfile) jobSeekerProfileDTO {
	return jobSeekerProfileDTO{
		UserID:     profile.UserID,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Phone:      profile.Phone,
		Skills:     nonNilStrings(profile.Skills),
		Experience: toWorkExperienceDTOs(profile.Experience),
		Education:  toEducationDTOs(profile.Education),
		Resume:     profile.Resume,
		CreatedAt:  formatTimestamp(profile.CreatedAt),
		UpdatedAt:  formatTimestamp(profile.UpdatedAt),
	}
}

func toInterviewerDTO(profile application.InterviewerProfile) interviewerProfileDTO {
	return interviewerProfileDTO{
		UserID:       profile.UserID,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Phone:        profile.Phone,
		Expertise:    nonNilStrings(profile.Expertise),
		Experience:   profile.Experience,
		Company:      profile.Company,
		Position:     profile.Position,
		Availability: toAvailabilityDTOs(profile.Availability),
		CreatedAt:    formatTimestamp(profile.CreatedAt),
		UpdatedAt:    formatTimestamp(profile.UpdatedAt),
	}
}

func toJobSeekerDisplayDTO(view application.JobSeekerView) jobSeekerDisplayDTO {
	return jobSeekerDisplayDTO{
		FullName:     view.FullName,
		Phone:        view.Phone,
		Skills:       nonNilStrings(view.Skills),
		Education:    toEducationDTOs(view.Education),
		Experience:   toWorkExperienceDTOs(view.Experience),
		Placeholders: nonNilStrings(view.Placeholders),
	}
}

func toInterviewerDisplayDTO(view application.InterviewerView) interviewerDisplayDTO {
	return interviewerDisplayDTO{
		FullName:     view.FullName,
		Phone:        view.Phone,
		Experience:   view.Experience,
		Company:      view.Company,
		Position:     view.Position,
		Expertise:    nonNilStrings(view.Expertise),
		Availability: toAvailabilityDTOs(view.Availability),
		Placeholders: nonNilStrings(view.Placeholders),
	}
}

func toWorkExperienceDTOs(entries []application.WorkExperience) []workExperienceDTO {
	out := make([]workExperienceDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, workExperienceDTO{
			Title:       e.Title,
			Company:     e.Company,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Description: e.Description,
		})
	}
	return out
}

func toEducationDTOs(entries []application.Education) []educationDTO {
	out := make([]educationDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, educationDTO{Institution: e.Institution, Degree: e.Degree, Year: e.Year, Marks: e.Marks})
	}
	return out
}

func toAvailabilityDTOs(slots []application.AvailabilitySlot) []availabilityDTO {
	out := make([]availabilityDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, availabilityDTO{Day: s.Day, StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return out
}

func fromAvailabilityDTOs(slots []availabilityDTO) []application.AvailabilitySlot {
	if slots == nil {
		return nil
	}
	out := make([]application.AvailabilitySlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, application.AvailabilitySlot{Day: s.Day, StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return out
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
