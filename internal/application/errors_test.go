package application

import "testing"

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	var err *ValidationError
	if err.Error() != "" {
		t.Fatalf("expected empty string for nil error, got %q", err.Error())
	}

	empty := &ValidationError{}
	if got := empty.Error(); got != "validation failed" {
		t.Fatalf("expected generic message for empty error, got %q", got)
	}

	withMessage := &ValidationError{Message: "Passwords do not match"}
	if got := withMessage.Error(); got != "validation failed: Passwords do not match" {
		t.Fatalf("expected message to be included, got %q", got)
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	t.Parallel()

	if (&ValidationError{}).HasErrors() {
		t.Fatalf("expected HasErrors to report false for empty error")
	}
	if !(&ValidationError{FieldErrors: map[string]string{"field": "bad"}}).HasErrors() {
		t.Fatalf("expected HasErrors to report true when fields are present")
	}
	if !(&ValidationError{Message: "bad"}).HasErrors() {
		t.Fatalf("expected HasErrors to report true when a message is present")
	}
}

func TestValidationError_AddFailAndMerge(t *testing.T) {
	t.Parallel()

	base := &ValidationError{}
	base.add("first", "value")
	if got := base.FieldErrors["first"]; got != "value" {
		t.Fatalf("expected add to populate map, got %q", got)
	}

	base.fail("first message")
	base.fail("second message")
	if base.Message != "first message" {
		t.Fatalf("expected first message to be kept, got %q", base.Message)
	}

	other := &ValidationError{Message: "other", FieldErrors: map[string]string{"second": "another"}}
	base.merge(other)
	if got := base.FieldErrors["second"]; got != "another" {
		t.Fatalf("expected merge to copy field, got %q", got)
	}
	if base.Message != "first message" {
		t.Fatalf("expected merge to keep existing message, got %q", base.Message)
	}

	base.merge(nil)
	if len(base.FieldErrors) != 2 {
		t.Fatalf("expected merge with nil to leave fields unchanged")
	}
}
