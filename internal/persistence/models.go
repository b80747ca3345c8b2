package persistence

import "time"

// User represents a platform account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Phone        string
	Company      string
	Position     string
	Expertise    string
	Experience   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authentication session persisted for a user.
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

// Company represents a hiring organisation.
type Company struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Job represents a posted opening.
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
	Status       string
	PostedAt     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// JobFilter narrows job listings.
type JobFilter struct {
	Status string
}

// WorkExperience is one entry in a job seeker's history.
type WorkExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// Education is one entry in a job seeker's education history.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
	Marks       string `json:"marks"`
}

// AvailabilitySlot is a weekly window during which an interviewer can be booked.
type AvailabilitySlot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// JobSeekerProfile is the stored profile of a job-seeker account.
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

// InterviewerProfile is the stored profile of an interviewer account.
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
