package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/application"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/catalog"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence/sqlite"
)

// translateError maps persistence sentinels onto their application
// counterparts while keeping the underlying error in the chain.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return fmt.Errorf("%w: %w", application.ErrNotFound, err)
	case errors.Is(err, persistence.ErrDuplicate):
		return fmt.Errorf("%w: %w", application.ErrAlreadyExists, err)
	default:
		return err
	}
}

// catalogTransactor runs catalog imports inside one SQLite transaction.
func catalogTransactor(store *sqlite.Store) catalog.Transactor {
	return func(ctx context.Context, fn func(w catalog.Writer) error) error {
		return store.WriteCatalog(ctx, func(tx *sqlite.CatalogTx) error {
			return fn(tx)
		})
	}
}

type accountRepositoryAdapter struct {
	repo persistence.UserRepository
}

func newAccountRepositoryAdapter(repo persistence.UserRepository) *accountRepositoryAdapter {
	return &accountRepositoryAdapter{repo: repo}
}

func (a *accountRepositoryAdapter) CreateUser(ctx context.Context, credentials application.UserCredentials) (application.User, error) {
	if err := a.repo.CreateUser(ctx, toPersistenceUser(credentials.User, credentials.PasswordHash)); err != nil {
		return application.User{}, translateError(err)
	}
	stored, err := a.repo.GetUser(ctx, credentials.User.ID)
	if err != nil {
		return application.User{}, translateError(err)
	}
	return toApplicationUser(stored), nil
}

type credentialStoreAdapter struct {
	repo persistence.UserRepository
}

func newCredentialStoreAdapter(repo persistence.UserRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetUserCredentialsByEmail(ctx context.Context, email string) (application.UserCredentials, error) {
	stored, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return application.UserCredentials{}, translateError(err)
	}
	return application.UserCredentials{
		User:         toApplicationUser(stored),
		PasswordHash: stored.PasswordHash,
	}, nil
}

func (a *credentialStoreAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, translateError(err)
	}
	return toApplicationUser(stored), nil
}

type sessionRepositoryAdapter struct {
	repo persistence.SessionRepository
}

func newSessionRepositoryAdapter(repo persistence.SessionRepository) *sessionRepositoryAdapter {
	return &sessionRepositoryAdapter{repo: repo}
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.CreateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, translateError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) GetSession(ctx context.Context, token string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, token)
	if err != nil {
		return application.Session{}, translateError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (application.Session, error) {
	stored, err := a.repo.RevokeSession(ctx, token, revokedAt)
	if err != nil {
		return application.Session{}, translateError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	return translateError(a.repo.DeleteExpiredSessions(ctx, reference))
}

type jobRepositoryAdapter struct {
	repo persistence.JobRepository
}

func newJobRepositoryAdapter(repo persistence.JobRepository) *jobRepositoryAdapter {
	return &jobRepositoryAdapter{repo: repo}
}

func (a *jobRepositoryAdapter) ListJobs(ctx context.Context, status application.JobStatus) ([]application.Job, error) {
	models, err := a.repo.ListJobs(ctx, persistence.JobFilter{Status: string(status)})
	if err != nil {
		return nil, translateError(err)
	}
	return convertAll(models, toApplicationJob), nil
}

func (a *jobRepositoryAdapter) GetJob(ctx context.Context, id string) (application.Job, error) {
	stored, err := a.repo.GetJob(ctx, id)
	if err != nil {
		return application.Job{}, translateError(err)
	}
	return toApplicationJob(stored), nil
}

type companyRepositoryAdapter struct {
	repo persistence.CompanyRepository
}

func newCompanyRepositoryAdapter(repo persistence.CompanyRepository) *companyRepositoryAdapter {
	return &companyRepositoryAdapter{repo: repo}
}

func (a *companyRepositoryAdapter) GetCompany(ctx context.Context, id string) (application.Company, error) {
	stored, err := a.repo.GetCompany(ctx, id)
	if err != nil {
		return application.Company{}, translateError(err)
	}
	return application.Company{
		ID:          stored.ID,
		Name:        stored.Name,
		Description: stored.Description,
		CreatedAt:   stored.CreatedAt,
	}, nil
}

type profileRepositoryAdapter struct {
	repo persistence.ProfileRepository
}

func newProfileRepositoryAdapter(repo persistence.ProfileRepository) *profileRepositoryAdapter {
	return &profileRepositoryAdapter{repo: repo}
}

func (a *profileRepositoryAdapter) EnsureJobSeekerProfile(ctx context.Context, profile application.JobSeekerProfile) (application.JobSeekerProfile, bool, error) {
	stored, created, err := a.repo.EnsureJobSeekerProfile(ctx, toPersistenceJobSeeker(profile))
	if err != nil {
		return application.JobSeekerProfile{}, false, translateError(err)
	}
	return toApplicationJobSeeker(stored), created, nil
}

func (a *profileRepositoryAdapter) UpdateJobSeekerProfile(ctx context.Context, profile application.JobSeekerProfile) error {
	return translateError(a.repo.UpdateJobSeekerProfile(ctx, toPersistenceJobSeeker(profile)))
}

func (a *profileRepositoryAdapter) EnsureInterviewerProfile(ctx context.Context, profile application.InterviewerProfile) (application.InterviewerProfile, bool, error) {
	stored, created, err := a.repo.EnsureInterviewerProfile(ctx, toPersistenceInterviewer(profile))
	if err != nil {
		return application.InterviewerProfile{}, false, translateError(err)
	}
	return toApplicationInterviewer(stored), created, nil
}

func (a *profileRepositoryAdapter) UpdateInterviewerProfile(ctx context.Context, profile application.InterviewerProfile) error {
	return translateError(a.repo.UpdateInterviewerProfile(ctx, toPersistenceInterviewer(profile)))
}

func toApplicationUser(model persistence.User) application.User {
	return application.User{
		ID:         model.ID,
		Name:       model.Name,
		Email:      model.Email,
		Role:       application.Role(model.Role),
		Phone:      model.Phone,
		Company:    model.Company,
		Position:   model.Position,
		Expertise:  model.Expertise,
		Experience: model.Experience,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceUser(user application.User, passwordHash string) persistence.User {
	return persistence.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: passwordHash,
		Role:         string(user.Role),
		Phone:        user.Phone,
		Company:      user.Company,
		Position:     user.Position,
		Expertise:    user.Expertise,
		Experience:   user.Experience,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toApplicationSession(model persistence.Session) application.Session {
	return application.Session{
		ID:          model.ID,
		UserID:      model.UserID,
		Token:       model.Token,
		Fingerprint: model.Fingerprint,
		ExpiresAt:   model.ExpiresAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		RevokedAt:   cloneTime(model.RevokedAt),
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		ID:          session.ID,
		UserID:      session.UserID,
		Token:       session.Token,
		Fingerprint: session.Fingerprint,
		ExpiresAt:   session.ExpiresAt,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
		RevokedAt:   cloneTime(session.RevokedAt),
	}
}

func toApplicationJob(model persistence.Job) application.Job {
	return application.Job{
		ID:           model.ID,
		CompanyID:    model.CompanyID,
		Title:        model.Title,
		Company:      model.Company,
		Location:     model.Location,
		Type:         model.Type,
		Salary:       model.Salary,
		Description:  model.Description,
		Requirements: append([]string(nil), model.Requirements...),
		Status:       application.JobStatus(model.Status),
		PostedAt:     model.PostedAt,
	}
}

func toApplicationJobSeeker(model persistence.JobSeekerProfile) application.JobSeekerProfile {
	experience := convertAll(model.Experience, func(e persistence.WorkExperience) application.WorkExperience {
		return application.WorkExperience(e)
	})
	education := convertAll(model.Education, func(e persistence.Education) application.Education {
		return application.Education(e)
	})
	return application.JobSeekerProfile{
		UserID:     model.UserID,
		FirstName:  model.FirstName,
		LastName:   model.LastName,
		Phone:      model.Phone,
		Skills:     append([]string(nil), model.Skills...),
		Experience: experience,
		Education:  education,
		Resume:     model.Resume,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func toPersistenceJobSeeker(profile application.JobSeekerProfile) persistence.JobSeekerProfile {
	experience := convertAll(profile.Experience, func(e application.WorkExperience) persistence.WorkExperience {
		return persistence.WorkExperience(e)
	})
	education := convertAll(profile.Education, func(e application.Education) persistence.Education {
		return persistence.Education(e)
	})
	return persistence.JobSeekerProfile{
		UserID:     profile.UserID,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Phone:      profile.Phone,
		Skills:     append([]string(nil), profile.Skills...),
		Experience: experience,
		Education:  education,
		Resume:     profile.Resume,
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
	}
}

func toApplicationInterviewer(model persistence.InterviewerProfile) application.InterviewerProfile {
	availability := convertAll(model.Availability, func(s persistence.AvailabilitySlot) application.AvailabilitySlot {
		return application.AvailabilitySlot(s)
	})
	return application.InterviewerProfile{
		UserID:       model.UserID,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Phone:        model.Phone,
		Expertise:    append([]string(nil), model.Expertise...),
		Experience:   model.Experience,
		Company:      model.Company,
		Position:     model.Position,
		Availability: availability,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func toPersistenceInterviewer(profile application.InterviewerProfile) persistence.InterviewerProfile {
	availability := convertAll(profile.Availability, func(s application.AvailabilitySlot) persistence.AvailabilitySlot {
		return persistence.AvailabilitySlot(s)
	})
	return persistence.InterviewerProfile{
		UserID:       profile.UserID,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Phone:        profile.Phone,
		Expertise:    append([]string(nil), profile.Expertise...),
		Experience:   profile.Experience,
		Company:      profile.Company,
		Position:     profile.Position,
		Availability: availability,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}

func convertAll[S, D any](in []S, convert func(S) D) []D {
	if in == nil {
		return nil
	}
	out := make([]D, 0, len(in))
	for _, v := range in {
		out = append(out, convert(v))
	}
	return out
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
