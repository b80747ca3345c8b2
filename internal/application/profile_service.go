package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const msgNamesRequired = "First name and last name are required"

// ProfileRepository stores job seeker and interviewer profiles. The Ensure
// methods insert the supplied profile only when the user has none and return
// the stored row together with whether it was created.
type ProfileRepository interface {
	EnsureJobSeekerProfile(ctx context.Context, profile JobSeekerProfile) (JobSeekerProfile, bool, error)
	UpdateJobSeekerProfile(ctx context.Context, profile JobSeekerProfile) error
	EnsureInterviewerProfile(ctx context.Context, profile InterviewerProfile) (InterviewerProfile, bool, error)
	UpdateInterviewerProfile(ctx context.Context, profile InterviewerProfile) error
}

// ProfileService owns profile bootstrap and profile edits for both roles.
type ProfileService struct {
	profiles ProfileRepository
	now      func() time.Time
	logger   *slog.Logger
}

// NewProfileService constructs a ProfileService with the provided dependencies.
func NewProfileService(profiles ProfileRepository, now func() time.Time) *ProfileService {
	return NewProfileServiceWithLogger(profiles, now, nil)
}

// NewProfileServiceWithLogger constructs a ProfileService with a specified logger.
func NewProfileServiceWithLogger(profiles ProfileRepository, now func() time.Time, logger *slog.Logger) *ProfileService {
	if now == nil {
		now = time.Now
	}
	return &ProfileService{
		profiles: profiles,
		now:      now,
		logger:   defaultLogger(logger),
	}
}

func (s *ProfileService) loggerWith(ctx context.Context, operation string, principal Principal) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ProfileService", operation, "principal_id", principal.UserID, "role", string(principal.Role))
}

func (s *ProfileService) ready() error {
	if s == nil {
		return fmt.Errorf("ProfileService is nil")
	}
	if s.profiles == nil {
		return fmt.Errorf("profile repository not configured")
	}
	return nil
}

func requireRole(principal Principal, role Role) error {
	if principal.UserID == "" {
		return ErrUnauthorized
	}
	if principal.Role != role {
		return ErrForbidden
	}
	return nil
}

// GetOrCreateJobSeekerProfile returns the principal's job seeker profile,
// creating the default profile on first access. isNew reports whether this
// call created it. Concurrent first calls result in a single stored profile.
func (s *ProfileService) GetOrCreateJobSeekerProfile(ctx context.Context, principal Principal) (profile JobSeekerProfile, isNew bool, err error) {
	if err = s.ready(); err != nil {
		return
	}
	logger := s.loggerWith(ctx, "GetOrCreateJobSeekerProfile", principal)
	defer func() {
		logResult(ctx, logger, err, "job seeker profile resolved", "failed to resolve job seeker profile", "is_new", isNew)
	}()

	if err = requireRole(principal, RoleJobSeeker); err != nil {
		return
	}
	profile, isNew, err = s.profiles.EnsureJobSeekerProfile(ctx, s.defaultJobSeekerProfile(principal))
	return
}

// GetOrCreateInterviewerProfile is the interviewer counterpart of
// GetOrCreateJobSeekerProfile.
func (s *ProfileService) GetOrCreateInterviewerProfile(ctx context.Context, principal Principal) (profile InterviewerProfile, isNew bool, err error) {
	if err = s.ready(); err != nil {
		return
	}
	logger := s.loggerWith(ctx, "GetOrCreateInterviewerProfile", principal)
	defer func() {
		logResult(ctx, logger, err, "interviewer profile resolved", "failed to resolve interviewer profile", "is_new", isNew)
	}()

	if err = requireRole(principal, RoleInterviewer); err != nil {
		return
	}
	profile, isNew, err = s.profiles.EnsureInterviewerProfile(ctx, s.defaultInterviewerProfile(principal))
	return
}

// UpdateJobSeekerProfile applies the editable job seeker fields, bootstrapping
// the profile first when it does not exist yet.
func (s *ProfileService) UpdateJobSeekerProfile(ctx context.Context, principal Principal, input JobSeekerProfileInput) (profile JobSeekerProfile, err error) {
	if err = s.ready(); err != nil {
		return
	}
	logger := s.loggerWith(ctx, "UpdateJobSeekerProfile", principal)
	defer func() {
		logResult(ctx, logger, err, "job seeker profile updated", "failed to update job seeker profile")
	}()

	if err = requireRole(principal, RoleJobSeeker); err != nil {
		return
	}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Phone = strings.TrimSpace(input.Phone)
	if vErr := validateNames(input.FirstName, input.LastName); vErr != nil {
		err = vErr
		return
	}

	profile, _, err = s.profiles.EnsureJobSeekerProfile(ctx, s.defaultJobSeekerProfile(principal))
	if err != nil {
		return
	}

	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Phone = input.Phone
	profile.UpdatedAt = s.now()

	if err = s.profiles.UpdateJobSeekerProfile(ctx, profile); err != nil {
		profile = JobSeekerProfile{}
	}
	return
}

// UpdateInterviewerProfile applies the editable interviewer fields,
// bootstrapping the profile first when it does not exist yet.
func (s *ProfileService) UpdateInterviewerProfile(ctx context.Context, principal Principal, input InterviewerProfileInput) (profile InterviewerProfile, err error) {
	if err = s.ready(); err != nil {
		return
	}
	logger := s.loggerWith(ctx, "UpdateInterviewerProfile", principal)
	defer func() {
		logResult(ctx, logger, err, "interviewer profile updated", "failed to update interviewer profile")
	}()

	if err = requireRole(principal, RoleInterviewer); err != nil {
		return
	}

	input = normalizeInterviewerInput(input)
	if vErr := validateInterviewerInput(input); vErr != nil {
		err = vErr
		return
	}

	profile, _, err = s.profiles.EnsureInterviewerProfile(ctx, s.defaultInterviewerProfile(principal))
	if err != nil {
		return
	}

	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Phone = input.Phone
	profile.Company = input.Company
	profile.Position = input.Position
	profile.Experience = input.Experience
	profile.Expertise = input.Expertise
	profile.Availability = input.Availability
	profile.UpdatedAt = s.now()

	if err = s.profiles.UpdateInterviewerProfile(ctx, profile); err != nil {
		profile = InterviewerProfile{}
	}
	return
}

func (s *ProfileService) defaultJobSeekerProfile(principal Principal) JobSeekerProfile {
	first, last := SplitDisplayName(principal.Name)
	now := s.now()
	return JobSeekerProfile{
		UserID:     principal.UserID,
		FirstName:  first,
		LastName:   last,
		Skills:     []string{},
		Experience: []WorkExperience{},
		Education:  []Education{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *ProfileService) defaultInterviewerProfile(principal Principal) InterviewerProfile {
	first, last := SplitDisplayName(principal.Name)
	now := s.now()
	return InterviewerProfile{
		UserID:       principal.UserID,
		FirstName:    first,
		LastName:     last,
		Expertise:    []string{},
		Availability: []AvailabilitySlot{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func validateNames(first, last string) *ValidationError {
	vErr := &ValidationError{}
	if first == "" {
		vErr.add("firstName", "first name is required")
	}
	if last == "" {
		vErr.add("lastName", "last name is required")
	}
	if vErr.HasErrors() {
		vErr.fail(msgNamesRequired)
		return vErr
	}
	return nil
}

func normalizeInterviewerInput(input InterviewerProfileInput) InterviewerProfileInput {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Company = strings.TrimSpace(input.Company)
	input.Position = strings.TrimSpace(input.Position)
	input.Expertise = uniqueStrings(input.Expertise)

	slots := make([]AvailabilitySlot, 0, len(input.Availability))
	for _, slot := range input.Availability {
		slots = append(slots, AvailabilitySlot{
			Day:       strings.TrimSpace(slot.Day),
			StartTime: strings.TrimSpace(slot.StartTime),
			EndTime:   strings.TrimSpace(slot.EndTime),
		})
	}
	input.Availability = slots
	return input
}

func validateInterviewerInput(input InterviewerProfileInput) *ValidationError {
	vErr := &ValidationError{}
	vErr.merge(validateNames(input.FirstName, input.LastName))

	if input.Experience < 0 {
		vErr.fail("Experience cannot be negative")
		vErr.add("experience", "experience cannot be negative")
	}

	for i, slot := range input.Availability {
		field := fmt.Sprintf("availability[%d]", i)
		if slot.Day == "" {
			vErr.fail("Availability slots need a day")
			vErr.add(field, "day is required")
			continue
		}
		start, startErr := time.Parse("15:04", slot.StartTime)
		end, endErr := time.Parse("15:04", slot.EndTime)
		if startErr != nil || endErr != nil {
			vErr.fail("Availability times must use HH:MM")
			vErr.add(field, "times must use HH:MM")
			continue
		}
		if !start.Before(end) {
			vErr.fail("Availability must start before it ends")
			vErr.add(field, "start must be before end")
		}
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// uniqueStrings trims values and drops blanks and repeats, keeping first-seen order.
func uniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
