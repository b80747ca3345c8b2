package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

type accountRepositoryStub struct {
	created []UserCredentials
	err     error
}

func (a *accountRepositoryStub) CreateUser(ctx context.Context, credentials UserCredentials) (User, error) {
	if a.err != nil {
		return User{}, a.err
	}
	a.created = append(a.created, credentials)
	return credentials.User, nil
}

func fakeHash(password string) (string, error) {
	return "hashed:" + password, nil
}

func validSignup() SignupInput {
	return SignupInput{
		Name:            "Asha Rao",
		Email:           "asha@example.com",
		Password:        "s3cret!",
		ConfirmPassword: "s3cret!",
		Role:            RoleJobSeeker,
	}
}

func TestValidateSignup(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete job seeker signup", func(t *testing.T) {
		t.Parallel()
		if err := ValidateSignup(validSignup()); err != nil {
			t.Fatalf("expected valid input, got %v", err)
		}
	})

	t.Run("defaults empty role to job seeker", func(t *testing.T) {
		t.Parallel()
		input := validSignup()
		input.Role = ""
		if err := ValidateSignup(input); err != nil {
			t.Fatalf("expected empty role to be accepted, got %v", err)
		}
	})

	t.Run("reports password mismatch before anything else", func(t *testing.T) {
		t.Parallel()
		input := SignupInput{Password: "a", ConfirmPassword: "b", Role: RoleInterviewer}

		err := ValidateSignup(input)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.Message != "Passwords do not match" {
			t.Fatalf("expected password mismatch message, got %q", vErr.Message)
		}
		if len(vErr.FieldErrors) != 1 {
			t.Fatalf("expected only the confirmation field to be reported, got %#v", vErr.FieldErrors)
		}
	})

	t.Run("requires interviewer fields", func(t *testing.T) {
		t.Parallel()
		for _, field := range []string{"phone", "company", "position"} {
			input := validSignup()
			input.Role = RoleInterviewer
			input.Phone = "9000000000"
			input.Company = "Acme"
			input.Position = "Staff Engineer"
			switch field {
			case "phone":
				input.Phone = ""
			case "company":
				input.Company = ""
			case "position":
				input.Position = ""
			}

			err := ValidateSignup(input)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("missing %s: expected ValidationError, got %v", field, err)
			}
			if vErr.Message != "All interviewer fields are required" {
				t.Fatalf("missing %s: unexpected message %q", field, vErr.Message)
			}
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("missing %s: expected field error, got %#v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("whitespace interviewer fields count as filled in", func(t *testing.T) {
		t.Parallel()
		input := validSignup()
		input.Role = RoleInterviewer
		input.Phone = " "
		input.Company = "Acme"
		input.Position = "Staff Engineer"

		if err := ValidateSignup(input); err != nil {
			t.Fatalf("expected whitespace phone to pass the required check, got %v", err)
		}

		repo := &accountRepositoryStub{}
		svc := NewAccountService(repo, fakeHash, func() string { return "user-9" }, nil)
		user, err := svc.Signup(context.Background(), input)
		if err != nil {
			t.Fatalf("Signup returned error: %v", err)
		}
		if user.Phone != "" {
			t.Fatalf("expected the stored phone to be trimmed, got %q", user.Phone)
		}
	})

	t.Run("collects remaining field problems", func(t *testing.T) {
		t.Parallel()
		input := SignupInput{Email: "not-an-email", Role: "admin"}

		err := ValidateSignup(input)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "email", "password", "role"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s to be reported, got %#v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestAccountService_Signup(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)

	t.Run("stores a hashed account", func(t *testing.T) {
		t.Parallel()

		repo := &accountRepositoryStub{}
		svc := NewAccountService(repo, fakeHash, func() string { return "user-1" }, func() time.Time { return now })

		input := validSignup()
		input.Email = " Asha@Example.com "
		user, err := svc.Signup(context.Background(), input)
		if err != nil {
			t.Fatalf("Signup failed: %v", err)
		}

		if user.ID != "user-1" || user.Email != "asha@example.com" || user.Role != RoleJobSeeker {
			t.Fatalf("unexpected user: %#v", user)
		}
		if !user.CreatedAt.Equal(now) {
			t.Fatalf("expected created timestamp %v, got %v", now, user.CreatedAt)
		}
		if len(repo.created) != 1 || repo.created[0].PasswordHash != "hashed:s3cret!" {
			t.Fatalf("expected hashed credentials to be stored, got %#v", repo.created)
		}
	})

	t.Run("never reaches storage when validation fails", func(t *testing.T) {
		t.Parallel()

		repo := &accountRepositoryStub{}
		svc := NewAccountService(repo, fakeHash, nil, nil)

		input := validSignup()
		input.ConfirmPassword = "different"
		_, err := svc.Signup(context.Background(), input)

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(repo.created) != 0 {
			t.Fatalf("expected no repository calls, got %d", len(repo.created))
		}
	})

	t.Run("propagates duplicate accounts", func(t *testing.T) {
		t.Parallel()

		repo := &accountRepositoryStub{err: ErrAlreadyExists}
		svc := NewAccountService(repo, fakeHash, func() string { return "user-1" }, nil)

		if _, err := svc.Signup(context.Background(), validSignup()); !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("wraps hashing failures", func(t *testing.T) {
		t.Parallel()

		expected := errors.New("entropy exhausted")
		svc := NewAccountService(&accountRepositoryStub{}, func(string) (string, error) { return "", expected }, nil, nil)

		if _, err := svc.Signup(context.Background(), validSignup()); !errors.Is(err, expected) {
			t.Fatalf("expected hashing error, got %v", err)
		}
	})
}
