package testfixtures

import (
	"log/slog"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock *Clock
	IDs   *Sequence
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock: NewClock(time.Time{}),
		IDs:   NewSequence("id"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDs == nil {
		factory.IDs = NewSequence("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithSequence overrides the id and token source used by the factory.
func WithSequence(seq *Sequence) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDs = seq
	}
}

// AccountServiceDeps captures dependencies for constructing an account service.
type AccountServiceDeps struct {
	Accounts    application.AccountRepository
	Hash        application.PasswordHasher
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewAccountService builds an account service. When Hash is nil the password is
// stored with a "hash:" prefix so tests avoid the cost of argon2id.
func (f *ServiceFactory) NewAccountService(deps AccountServiceDeps) *application.AccountService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDs.ID
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.Now
	}
	hash := deps.Hash
	if hash == nil {
		hash = func(password string) (string, error) { return "hash:" + password, nil }
	}
	return application.NewAccountServiceWithLogger(deps.Accounts, hash, idGen, now, deps.Logger)
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Credentials    application.CredentialStore
	Sessions       application.SessionRepository
	PasswordVerify application.PasswordVerifier
	TokenGenerator func() string
	Now            func() time.Time
	SessionTTL     time.Duration
	Logger         *slog.Logger
}

// NewAuthService builds an auth service using the supplied dependencies.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	token := deps.TokenGenerator
	if token == nil {
		token = f.IDs.Token
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.Now
	}
	return application.NewAuthServiceWithLogger(
		deps.Credentials,
		deps.Sessions,
		deps.PasswordVerify,
		token,
		now,
		deps.SessionTTL,
		deps.Logger,
	)
}

// JobServiceDeps captures dependencies for constructing a job service.
type JobServiceDeps struct {
	Jobs      application.JobRepository
	Companies application.CompanyRepository
	Cache     application.JobListCache
	CacheTTL  time.Duration
	Logger    *slog.Logger
}

// NewJobService builds a job service using the supplied dependencies.
func (f *ServiceFactory) NewJobService(deps JobServiceDeps) *application.JobService {
	return application.NewJobServiceWithLogger(deps.Jobs, deps.Companies, deps.Cache, deps.CacheTTL, deps.Logger)
}

// ProfileServiceDeps captures dependencies for constructing a profile service.
type ProfileServiceDeps struct {
	Profiles application.ProfileRepository
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewProfileService builds a profile service using the supplied dependencies.
func (f *ServiceFactory) NewProfileService(deps ProfileServiceDeps) *application.ProfileService {
	now := deps.Now
	if now == nil {
		now = f.Clock.Now
	}
	return application.NewProfileServiceWithLogger(deps.Profiles, now, deps.Logger)
}
