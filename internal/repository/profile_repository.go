package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/pkg/database"
)

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *database.Postgres
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.Postgres) ProfileRepository {
	return &profileRepository{db: db}
}

// current_position instead of current_role: the latter is reserved in Postgres.
const profileColumns = `
	identity_id, email, full_name, display_name, avatar_url, signup_method, provider,
	location, current_position, career_interests, experience_level, motivation, bio,
	profile_completed, created_at, updated_at
`

// GetByIdentityID retrieves a profile by identity id
func (r *profileRepository) GetByIdentityID(ctx context.Context, identityID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE identity_id = $1`

	profile := &domain.Profile{}
	err := r.db.DB.QueryRowContext(ctx, query, identityID).Scan(
		&profile.IdentityID,
		&profile.Email,
		&profile.FullName,
		&profile.DisplayName,
		&profile.AvatarURL,
		&profile.SignupMethod,
		&profile.Provider,
		&profile.Location,
		&profile.CurrentRole,
		pq.Array(&profile.CareerInterests),
		&profile.ExperienceLevel,
		&profile.Motivation,
		&profile.Bio,
		&profile.ProfileCompleted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile for identity %s not found: %w", identityID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// Insert creates a new profile row
func (r *profileRepository) Insert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	r.fillTimestamps(profile)

	_, err := r.db.DB.ExecContext(ctx, query, r.args(profile)...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("profile for identity %s already exists: %w", profile.IdentityID, ErrDuplicateProfile)
			}
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// Upsert inserts or updates a profile keyed by identity id. Last write wins;
// concurrent sign-in attempts for the same identity are safe.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (identity_id) DO UPDATE SET
			email = EXCLUDED.email,
			full_name = EXCLUDED.full_name,
			display_name = EXCLUDED.display_name,
			avatar_url = EXCLUDED.avatar_url,
			signup_method = EXCLUDED.signup_method,
			provider = EXCLUDED.provider,
			location = EXCLUDED.location,
			current_position = EXCLUDED.current_position,
			career_interests = EXCLUDED.career_interests,
			experience_level = EXCLUDED.experience_level,
			motivation = EXCLUDED.motivation,
			bio = EXCLUDED.bio,
			profile_completed = EXCLUDED.profile_completed,
			updated_at = EXCLUDED.updated_at
	`

	r.fillTimestamps(profile)
	profile.UpdatedAt = time.Now()

	_, err := r.db.DB.ExecContext(ctx, query, r.args(profile)...)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func (r *profileRepository) fillTimestamps(profile *domain.Profile) {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}
}

func (r *profileRepository) args(profile *domain.Profile) []interface{} {
	return []interface{}{
		profile.IdentityID,
		profile.Email,
		profile.FullName,
		profile.DisplayName,
		profile.AvatarURL,
		profile.SignupMethod,
		profile.Provider,
		profile.Location,
		profile.CurrentRole,
		pq.Array(profile.CareerInterests),
		profile.ExperienceLevel,
		profile.Motivation,
		profile.Bio,
		profile.ProfileCompleted,
		profile.CreatedAt,
		profile.UpdatedAt,
	}
}
