package sqlite

import (
	"context"
	"database/sql"

	"github.com/Lokesh-hub-coder/Nayi-Disha/internal/persistence"
)

// ProfileRepository implements persistence.ProfileRepository using SQLite
type ProfileRepository struct {
	pool *ConnectionPool
}

// NewProfileRepository creates a new SQLite profile repository
func NewProfileRepository(pool *ConnectionPool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const (
	jobSeekerColumns   = `user_id, first_name, last_name, phone, skills, experience, education, resume, created_at, updated_at`
	interviewerColumns = `user_id, first_name, last_name, phone, expertise, experience, company, position, availability, created_at, updated_at`
)

// EnsureJobSeekerProfile inserts profile when the user has none yet and
// returns the stored row. The boolean reports whether a row was created.
func (r *ProfileRepository) EnsureJobSeekerProfile(ctx context.Context, profile persistence.JobSeekerProfile) (persistence.JobSeekerProfile, bool, error) {
	if profile.UserID == "" {
		return persistence.JobSeekerProfile{}, false, persistence.ErrConstraintViolation
	}
	args, err := jobSeekerArgs(profile)
	if err != nil {
		return persistence.JobSeekerProfile{}, false, err
	}

	var (
		stored  persistence.JobSeekerProfile
		created bool
	)
	err = r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO job_seeker_profiles (`+jobSeekerColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO NOTHING
		`, args...)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return mapError(err)
		}
		created = affected > 0
		stored, err = getJobSeekerProfile(ctx, tx, profile.UserID)
		return err
	})
	if err != nil {
		return persistence.JobSeekerProfile{}, false, err
	}
	return stored, created, nil
}

// GetJobSeekerProfile retrieves the job seeker profile owned by userID
func (r *ProfileRepository) GetJobSeekerProfile(ctx context.Context, userID string) (persistence.JobSeekerProfile, error) {
	if userID == "" {
		return persistence.JobSeekerProfile{}, persistence.ErrNotFound
	}
	return getJobSeekerProfile(ctx, r.pool.DB(), userID)
}

// UpdateJobSeekerProfile overwrites the editable fields of an existing profile
func (r *ProfileRepository) UpdateJobSeekerProfile(ctx context.Context, profile persistence.JobSeekerProfile) error {
	skills, err := encodeList(profile.Skills)
	if err != nil {
		return err
	}
	experience, err := encodeList(profile.Experience)
	if err != nil {
		return err
	}
	education, err := encodeList(profile.Education)
	if err != nil {
		return err
	}

	result, err := r.pool.DB().ExecContext(ctx, `
		UPDATE job_seeker_profiles
		SET first_name = ?, last_name = ?, phone = ?, skills = ?, experience = ?, education = ?, resume = ?, updated_at = ?
		WHERE user_id = ?
	`,
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		skills,
		experience,
		education,
		profile.Resume,
		formatTime(profile.UpdatedAt),
		profile.UserID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(result)
}

// EnsureInterviewerProfile inserts profile when the user has none yet and
// returns the stored row. The boolean reports whether a row was created.
func (r *ProfileRepository) EnsureInterviewerProfile(ctx context.Context, profile persistence.InterviewerProfile) (persistence.InterviewerProfile, bool, error) {
	if profile.UserID == "" {
		return persistence.InterviewerProfile{}, false, persistence.ErrConstraintViolation
	}
	args, err := interviewerArgs(profile)
	if err != nil {
		return persistence.InterviewerProfile{}, false, err
	}

	var (
		stored  persistence.InterviewerProfile
		created bool
	)
	err = r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO interviewer_profiles (`+interviewerColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id) DO NOTHING
		`, args...)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return mapError(err)
		}
		created = affected > 0
		stored, err = getInterviewerProfile(ctx, tx, profile.UserID)
		return err
	})
	if err != nil {
		return persistence.InterviewerProfile{}, false, err
	}
	return stored, created, nil
}

// GetInterviewerProfile retrieves the interviewer profile owned by userID
func (r *ProfileRepository) GetInterviewerProfile(ctx context.Context, userID string) (persistence.InterviewerProfile, error) {
	if userID == "" {
		return persistence.InterviewerProfile{}, persistence.ErrNotFound
	}
	return getInterviewerProfile(ctx, r.pool.DB(), userID)
}

// UpdateInterviewerProfile overwrites the editable fields of an existing profile
func (r *ProfileRepository) UpdateInterviewerProfile(ctx context.Context, profile persistence.InterviewerProfile) error {
	if profile.Experience < 0 {
		return persistence.ErrConstraintViolation
	}
	expertise, err := encodeList(profile.Expertise)
	if err != nil {
		return err
	}
	availability, err := encodeList(profile.Availability)
	if err != nil {
		return err
	}

	result, err := r.pool.DB().ExecContext(ctx, `
		UPDATE interviewer_profiles
		SET first_name = ?, last_name = ?, phone = ?, expertise = ?, experience = ?, company = ?, position = ?, availability = ?, updated_at = ?
		WHERE user_id = ?
	`,
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		expertise,
		profile.Experience,
		profile.Company,
		profile.Position,
		availability,
		formatTime(profile.UpdatedAt),
		profile.UserID,
	)
	if err != nil {
		return mapError(err)
	}
	return requireAffected(result)
}

func jobSeekerArgs(profile persistence.JobSeekerProfile) ([]any, error) {
	skills, err := encodeList(profile.Skills)
	if err != nil {
		return nil, err
	}
	experience, err := encodeList(profile.Experience)
	if err != nil {
		return nil, err
	}
	education, err := encodeList(profile.Education)
	if err != nil {
		return nil, err
	}
	return []any{
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		skills,
		experience,
		education,
		profile.Resume,
		formatTime(profile.CreatedAt),
		formatTime(profile.UpdatedAt),
	}, nil
}

func interviewerArgs(profile persistence.InterviewerProfile) ([]any, error) {
	if profile.Experience < 0 {
		return nil, persistence.ErrConstraintViolation
	}
	expertise, err := encodeList(profile.Expertise)
	if err != nil {
		return nil, err
	}
	availability, err := encodeList(profile.Availability)
	if err != nil {
		return nil, err
	}
	return []any{
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		expertise,
		profile.Experience,
		profile.Company,
		profile.Position,
		availability,
		formatTime(profile.CreatedAt),
		formatTime(profile.UpdatedAt),
	}, nil
}

func getJobSeekerProfile(ctx context.Context, q queryer, userID string) (persistence.JobSeekerProfile, error) {
	var (
		profile                       persistence.JobSeekerProfile
		skills, experience, education string
		createdAt, updatedAt          string
	)
	err := q.QueryRowContext(ctx, `SELECT `+jobSeekerColumns+` FROM job_seeker_profiles WHERE user_id = ?`, userID).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&skills,
		&experience,
		&education,
		&profile.Resume,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.JobSeekerProfile{}, mapError(err)
	}

	if profile.Skills, err = decodeList[string]("skills", skills); err != nil {
		return persistence.JobSeekerProfile{}, err
	}
	if profile.Experience, err = decodeList[persistence.WorkExperience]("experience", experience); err != nil {
		return persistence.JobSeekerProfile{}, err
	}
	if profile.Education, err = decodeList[persistence.Education]("education", education); err != nil {
		return persistence.JobSeekerProfile{}, err
	}
	if profile.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.JobSeekerProfile{}, err
	}
	if profile.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.JobSeekerProfile{}, err
	}
	return profile, nil
}

func getInterviewerProfile(ctx context.Context, q queryer, userID string) (persistence.InterviewerProfile, error) {
	var (
		profile                 persistence.InterviewerProfile
		expertise, availability string
		createdAt, updatedAt    string
	)
	err := q.QueryRowContext(ctx, `SELECT `+interviewerColumns+` FROM interviewer_profiles WHERE user_id = ?`, userID).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&expertise,
		&profile.Experience,
		&profile.Company,
		&profile.Position,
		&availability,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.InterviewerProfile{}, mapError(err)
	}

	if profile.Expertise, err = decodeList[string]("expertise", expertise); err != nil {
		return persistence.InterviewerProfile{}, err
	}
	if profile.Availability, err = decodeList[persistence.AvailabilitySlot]("availability", availability); err != nil {
		return persistence.InterviewerProfile{}, err
	}
	if profile.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return persistence.InterviewerProfile{}, err
	}
	if profile.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return persistence.InterviewerProfile{}, err
	}
	return profile, nil
}
