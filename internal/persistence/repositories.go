package persistence

import (
	"context"
	"time"
)

// UserRepository stores platform accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	UpdateSession(ctx context.Context, session Session) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// CompanyRepository stores hiring organisations.
type CompanyRepository interface {
	UpsertCompany(ctx context.Context, company Company) error
	GetCompany(ctx context.Context, id string) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
}

// JobRepository stores job postings.
type JobRepository interface {
	UpsertJob(ctx context.Context, job Job) error
	GetJob(ctx context.Context, id string) (Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, error)
}

// ProfileRepository stores job-seeker and interviewer profiles.
//
// The Ensure methods insert the supplied profile only when no row exists for
// its user and always return the stored row, so concurrent callers converge on
// one record.
type ProfileRepository interface {
	EnsureJobSeekerProfile(ctx context.Context, profile JobSeekerProfile) (JobSeekerProfile, bool, error)
	GetJobSeekerProfile(ctx context.Context, userID string) (JobSeekerProfile, error)
	UpdateJobSeekerProfile(ctx context.Context, profile JobSeekerProfile) error
	EnsureInterviewerProfile(ctx context.Context, profile InterviewerProfile) (InterviewerProfile, bool, error)
	GetInterviewerProfile(ctx context.Context, userID string) (InterviewerProfile, error)
	UpdateInterviewerProfile(ctx context.Context, profile InterviewerProfile) error
}
