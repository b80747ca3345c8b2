package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/application"
	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
)

var (
	userCounter    uint64
	sessionCounter uint64
	companyCounter uint64
	jobCounter     uint64
)

var referenceTime = time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- User fixtures -----------------------------

// UserFixture represents a deterministic account that can be materialised for
// application or persistence tests.
type UserFixture struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         application.Role
	Phone        string
	Company      string
	Position     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic job-seeker fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := UserFixture{
		ID:           id,
		Name:         fmt.Sprintf("User %03d", idx),
		Email:        fmt.Sprintf("%s@example.com", id),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		Role:         application.RoleJobSeeker,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(f *UserFixture) {
		f.ID = id
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(f *UserFixture) {
		f.Email = email
	}
}

// WithUserName overrides the generated name.
func WithUserName(name string) UserOption {
	return func(f *UserFixture) {
		f.Name = name
	}
}

// WithUserPasswordHash overrides the generated password hash.
func WithUserPasswordHash(hash string) UserOption {
	return func(f *UserFixture) {
		f.PasswordHash = hash
	}
}

// WithInterviewer turns the fixture into an interviewer account with the
// fields signup requires for that role.
func WithInterviewer(phone, company, position string) UserOption {
	return func(f *UserFixture) {
		f.Role = application.RoleInterviewer
		f.Phone = phone
		f.Company = company
		f.Position = position
	}
}

// WithUserTimestamps sets both created and updated timestamps on the fixture.
func WithUserTimestamps(created, updated time.Time) UserOption {
	return func(f *UserFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Application returns the fixture as an application.User value.
func (f UserFixture) Application() application.User {
	return application.User{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Role:      f.Role,
		Phone:     f.Phone,
		Company:   f.Company,
		Position:  f.Position,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// Credentials returns the fixture as application.UserCredentials.
func (f UserFixture) Credentials() application.UserCredentials {
	return application.UserCredentials{
		User:         f.Application(),
		PasswordHash: f.PasswordHash,
	}
}

// Principal returns an application.Principal derived from the fixture.
func (f UserFixture) Principal() application.Principal {
	return f.Application().Principal()
}

// Persistence returns the fixture as a persistence.User value.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:           f.ID,
		Name:         f.Name,
		Email:        f.Email,
		PasswordHash: f.PasswordHash,
		Role:         string(f.Role),
		Phone:        f.Phone,
		Company:      f.Company,
		Position:     f.Position,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// ----------------------------- Session fixtures -------------------------

// SessionFixture represents a deterministic session record.
type SessionFixture struct {
	ID          string
	UserID      string
	Token       string
	Fingerprint string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RevokedAt   *time.Time
}

// SessionOption configures the generated session fixture.
type SessionOption func(*SessionFixture)

// NewSessionFixture returns a deterministic session fixture with optional overrides.
func NewSessionFixture(opts ...SessionOption) SessionFixture {
	idx := atomic.AddUint64(&sessionCounter, 1)
	created := referenceTime
	fixture := SessionFixture{
		ID:          fmt.Sprintf("session-%03d", idx),
		UserID:      fmt.Sprintf("user-%03d", idx),
		Token:       fmt.Sprintf("token-%03d", idx),
		Fingerprint: fmt.Sprintf("fingerprint-%03d", idx),
		ExpiresAt:   created.Add(8 * time.Hour),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithSessionID overrides the session ID.
func WithSessionID(id string) SessionOption {
	return func(f *SessionFixture) {
		f.ID = id
	}
}

// WithSessionUserID sets the user ID.
func WithSessionUserID(id string) SessionOption {
	return func(f *SessionFixture) {
		f.UserID = id
	}
}

// WithSessionToken overrides the token value.
func WithSessionToken(token string) SessionOption {
	return func(f *SessionFixture) {
		f.Token = token
	}
}

// WithSessionFingerprint sets the session fingerprint.
func WithSessionFingerprint(fp string) SessionOption {
	return func(f *SessionFixture) {
		f.Fingerprint = fp
	}
}

// WithSessionExpiresAt sets the expiration timestamp.
func WithSessionExpiresAt(t time.Time) SessionOption {
	return func(f *SessionFixture) {
		f.ExpiresAt = t
	}
}

// WithSessionUpdatedAt sets the updated timestamp.
func WithSessionUpdatedAt(t time.Time) SessionOption {
	return func(f *SessionFixture) {
		f.UpdatedAt = t
	}
}

// WithSessionRevokedAt sets the optional revoked timestamp.
func WithSessionRevokedAt(t time.Time) SessionOption {
	return func(f *SessionFixture) {
		revoked := t
		f.RevokedAt = &revoked
	}
}

// Application returns the fixture as an application.Session value.
func (f SessionFixture) Application() application.Session {
	return application.Session{
		ID:          f.ID,
		UserID:      f.UserID,
		Token:       f.Token,
		Fingerprint: f.Fingerprint,
		ExpiresAt:   f.ExpiresAt,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		RevokedAt:   copyTimePtr(f.RevokedAt),
	}
}

// Persistence returns the fixture as a persistence.Session value.
func (f SessionFixture) Persistence() persistence.Session {
	return persistence.Session{
		ID:          f.ID,
		UserID:      f.UserID,
		Token:       f.Token,
		Fingerprint: f.Fingerprint,
		ExpiresAt:   f.ExpiresAt,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		RevokedAt:   copyTimePtr(f.RevokedAt),
	}
}

// ----------------------------- Company fixtures -------------------------

// CompanyFixture represents a deterministic employer record.
type CompanyFixture struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyOption configures the generated company fixture.
type CompanyOption func(*CompanyFixture)

// NewCompanyFixture returns a deterministic company fixture with optional overrides.
func NewCompanyFixture(opts ...CompanyOption) CompanyFixture {
	idx := atomic.AddUint64(&companyCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Hour)
	fixture := CompanyFixture{
		ID:          fmt.Sprintf("company-%03d", idx),
		Name:        fmt.Sprintf("Company %03d", idx),
		Description: "Hiring across India",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCompanyID overrides the generated company ID.
func WithCompanyID(id string) CompanyOption {
	return func(f *CompanyFixture) {
		f.ID = id
	}
}

// WithCompanyName overrides the generated company name.
func WithCompanyName(name string) CompanyOption {
	return func(f *CompanyFixture) {
		f.Name = name
	}
}

// Application returns the fixture as an application.Company value.
func (f CompanyFixture) Application() application.Company {
	return application.Company{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
}

// Persistence returns the fixture as a persistence.Company value.
func (f CompanyFixture) Persistence() persistence.Company {
	return persistence.Company{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// ----------------------------- Job fixtures -----------------------------

// JobFixture represents a deterministic job posting.
type JobFixture struct {
	ID           string
	CompanyID    string
	Company      string
	Title        string
	Location     string
	Type         string
	Salary       string
	Description  string
	Requirements []string
	Status       application.JobStatus
	PostedAt     time.Time
}

// JobOption configures the generated job fixture.
type JobOption func(*JobFixture)

// NewJobFixture returns a deterministic open job fixture. The posting time
// advances with every fixture so newer fixtures sort first in listings.
func NewJobFixture(opts ...JobOption) JobFixture {
	idx := atomic.AddUint64(&jobCounter, 1)
	fixture := JobFixture{
		ID:           fmt.Sprintf("job-%03d", idx),
		CompanyID:    "company-001",
		Company:      "Company 001",
		Title:        fmt.Sprintf("Engineer %03d", idx),
		Location:     "Bengaluru",
		Type:         "Full-time",
		Salary:       "10-15 LPA",
		Description:  "Work on the hiring platform",
		Requirements: []string{"Go", "SQL"},
		Status:       application.JobStatusOpen,
		PostedAt:     referenceTime.Add(time.Duration(idx) * time.Hour),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithJobID overrides the generated job ID.
func WithJobID(id string) JobOption {
	return func(f *JobFixture) {
		f.ID = id
	}
}

// WithJobCompany links the job to the supplied company.
func WithJobCompany(company CompanyFixture) JobOption {
	return func(f *JobFixture) {
		f.CompanyID = company.ID
		f.Company = company.Name
	}
}

// WithJobTitle overrides the title.
func WithJobTitle(title string) JobOption {
	return func(f *JobFixture) {
		f.Title = title
	}
}

// WithJobLocation overrides the location.
func WithJobLocation(location string) JobOption {
	return func(f *JobFixture) {
		f.Location = location
	}
}

// WithJobDescription overrides the description.
func WithJobDescription(description string) JobOption {
	return func(f *JobFixture) {
		f.Description = description
	}
}

// WithJobStatus overrides the status.
func WithJobStatus(status application.JobStatus) JobOption {
	return func(f *JobFixture) {
		f.Status = status
	}
}

// WithJobPostedAt overrides the posting time.
func WithJobPostedAt(t time.Time) JobOption {
	return func(f *JobFixture) {
		f.PostedAt = t
	}
}

// Application returns the fixture as an application.Job value.
func (f JobFixture) Application() application.Job {
	return application.Job{
		ID:           f.ID,
		CompanyID:    f.CompanyID,
		Title:        f.Title,
		Company:      f.Company,
		Location:     f.Location,
		Type:         f.Type,
		Salary:       f.Salary,
		Description:  f.Description,
		Requirements: append([]string(nil), f.Requirements...),
		Status:       f.Status,
		PostedAt:     f.PostedAt,
	}
}

// Persistence returns the fixture as a persistence.Job value. The company name
// is left empty because storage derives it from the companies table.
func (f JobFixture) Persistence() persistence.Job {
	return persistence.Job{
		ID:           f.ID,
		CompanyID:    f.CompanyID,
		Title:        f.Title,
		Location:     f.Location,
		Type:         f.Type,
		Salary:       f.Salary,
		Description:  f.Description,
		Requirements: append([]string(nil), f.Requirements...),
		Status:       string(f.Status),
		PostedAt:     f.PostedAt,
		CreatedAt:    f.PostedAt,
		UpdatedAt:    f.PostedAt,
	}
}

func copyTimePtr(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
