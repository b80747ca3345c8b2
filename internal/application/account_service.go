package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
)

const (
	msgPasswordsMismatch   = "Passwords do not match"
	msgInterviewerRequired = "All interviewer fields are required"
	msgSignupIncomplete    = "Please fill in all required fields"
)

// AccountRepository persists new accounts. Implementations return
// ErrAlreadyExists when the email is taken.
type AccountRepository interface {
	CreateUser(ctx context.Context, credentials UserCredentials) (User, error)
}

// PasswordHasher derives a storable hash from a plaintext password.
type PasswordHasher func(password string) (string, error)

// AccountService registers new accounts.
type AccountService struct {
	accounts     AccountRepository
	hashPassword PasswordHasher
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewAccountService constructs an AccountService with the provided dependencies.
func NewAccountService(accounts AccountRepository, hash PasswordHasher, idGenerator func() string, now func() time.Time) *AccountService {
	return NewAccountServiceWithLogger(accounts, hash, idGenerator, now, nil)
}

// NewAccountServiceWithLogger constructs an AccountService with a specified logger.
func NewAccountServiceWithLogger(accounts AccountRepository, hash PasswordHasher, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AccountService {
	if hash == nil {
		hash = HashPassword
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AccountService{
		accounts:     accounts,
		hashPassword: hash,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *AccountService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AccountService", operation, attrs...)
}

// Signup validates the submitted fields and stores a new account. Validation
// failures never reach the repository.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (user User, err error) {
	if s == nil {
		err = fmt.Errorf("AccountService is nil")
		return
	}
	if s.accounts == nil {
		err = fmt.Errorf("account repository not configured")
		return
	}

	submitted := input
	input = normalizeSignup(input)
	logger := s.loggerWith(ctx, "Signup", "email", input.Email, "role", string(input.Role))
	defer func() {
		logResult(ctx, logger, err, "account created", "signup failed", "user_id", user.ID)
	}()

	if err = ValidateSignup(submitted); err != nil {
		return
	}

	var hash string
	hash, err = s.hashPassword(input.Password)
	if err != nil {
		err = fmt.Errorf("hash password: %w", err)
		return
	}

	now := s.now()
	candidate := User{
		ID:         s.idGenerator(),
		Name:       input.Name,
		Email:      input.Email,
		Role:       input.Role,
		Phone:      input.Phone,
		Company:    input.Company,
		Position:   input.Position,
		Expertise:  input.Expertise,
		Experience: input.Experience,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	user, err = s.accounts.CreateUser(ctx, UserCredentials{User: candidate, PasswordHash: hash})
	return
}

// ValidateSignup applies the signup form rules. The password confirmation is
// checked first, then the interviewer specific fields; either failure is
// reported alone. The interviewer fields are checked as submitted, so only an
// empty value fails. The remaining checks run on trimmed values and are
// collected together.
func ValidateSignup(input SignupInput) error {
	if input.Password != input.ConfirmPassword {
		vErr := &ValidationError{}
		vErr.fail(msgPasswordsMismatch)
		vErr.add("confirmPassword", msgPasswordsMismatch)
		return vErr
	}

	if Role(strings.TrimSpace(string(input.Role))) == RoleInterviewer {
		vErr := &ValidationError{}
		for field, value := range map[string]string{"phone": input.Phone, "company": input.Company, "position": input.Position} {
			if value == "" {
				vErr.fail(msgInterviewerRequired)
				vErr.add(field, "required for interviewers")
			}
		}
		if vErr.HasErrors() {
			return vErr
		}
	}

	input = normalizeSignup(input)
	vErr := &ValidationError{}
	if input.Name == "" {
		vErr.add("name", "name is required")
	}
	if input.Email == "" {
		vErr.add("email", "email is required")
	} else if addr, err := mail.ParseAddress(input.Email); err != nil || addr.Address != input.Email {
		vErr.add("email", "email is not valid")
	}
	if input.Password == "" {
		vErr.add("password", "password is required")
	}
	if !input.Role.Valid() {
		vErr.add("role", "role must be job-seeker or interviewer")
	}
	if vErr.HasErrors() {
		vErr.fail(msgSignupIncomplete)
		return vErr
	}
	return nil
}

func normalizeSignup(input SignupInput) SignupInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Role = Role(strings.TrimSpace(string(input.Role)))
	if input.Role == "" {
		input.Role = RoleJobSeeker
	}
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	input.Position = strings.TrimSpace(input.Position)
	input.Expertise = strings.TrimSpace(input.Expertise)
	input.Experience = strings.TrimSpace(input.Experience)
	return input
}
