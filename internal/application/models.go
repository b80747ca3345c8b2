package application

import "time"

// Role identifies which side of the platform an account belongs to.
type Role string

const (
	RoleJobSeeker   Role = "job-seeker"
	RoleInterviewer Role = "interviewer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleInterviewer
}

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID string
	Name   string
	Email  string
	Role   Role
}

// User is the account record exposed to callers. It never carries the password hash.
type User struct {
	ID         string
	Name       string
	Email      string
	Role       Role
	Phone      string
	Company    string
	Position   string
	Expertise  string
	Experience string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Principal returns the principal that acts on behalf of the user.
func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserCredentials models the authentication attributes persisted for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// SignupInput is the flat field set submitted by the signup form.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            Role
	Phone           string
	Company         string
	Position        string
	Expertise       string
	Experience      string
}

// Session represents an issued authentication session.
type Session struct {
	ID          string
	UserID      string
	Token       string
	Fingerprint string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RevokedAt   *time.Time
}

// Active reports why the session can no longer authenticate requests at now,
// or nil when it still can. Revocation wins over expiry. A zero ExpiresAt
// never expires.
func (s Session) Active(now time.Time) error {
	switch {
	case s.RevokedAt != nil && !s.RevokedAt.IsZero():
		return ErrSessionRevoked
	case !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt):
		return ErrSessionExpired
	}
	return nil
}

// AuthenticateParams carries sign-in input.
type AuthenticateParams struct {
	Email       string
	Password    string
	Fingerprint string
}

// AuthenticateResult is returned by a successful sign-in.
type AuthenticateResult struct {
	User    User
	Session Session
}

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// Job is a posting as shown in listings. Company is the denormalised
// company name.
type Job struct {
	ID           string
	CompanyID    string
	Title        string
	Company      string
	Location     string
	Type         string
	Salary       string
	Description  string
	Requirements []string
	Status       JobStatus
	PostedAt     time.Time
}

// Company is the employer record shown on the job detail view.
type Company struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// JobDetails pairs a job with its company.
type JobDetails struct {
	Job     Job
	Company Company
}

// ListJobsParams selects and filters the job listing.
type ListJobsParams struct {
	Status   JobStatus
	Search   string
	Location string
}

// WorkExperience is one entry of a job seeker's work history.
type WorkExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// Education is one entry of a job seeker's education history.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	Marks       string `json:"marks"`
}

// AvailabilitySlot is a weekly window in which an interviewer takes interviews.
// Times use the 24 hour HH:MM form.
type AvailabilitySlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// JobSeekerProfile is the stored profile of a job seeker.
type JobSeekerProfile struct {
	UserID     string
	FirstName  string
	LastName   string
	Phone      string
	Skills     []string
	Experience []WorkExperience
	Education  []Education
	Resume     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InterviewerProfile is the stored profile of an interviewer.
type InterviewerProfile struct {
	UserID       string
	FirstName    string
	LastName     string
	Phone        string
	Expertise    []string
	Experience   int
	Company      string
	Position     string
	Availability []AvailabilitySlot
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JobSeekerProfileInput holds the editable job seeker fields.
type JobSeekerProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
}

// InterviewerProfileInput holds the editable interviewer fields.
type InterviewerProfileInput struct {
	FirstName    string
	LastName     string
	Phone        string
	Company      string
	Position     string
	Experience   int
	Expertise    []string
	Availability []AvailabilitySlot
}
