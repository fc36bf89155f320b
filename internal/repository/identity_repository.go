package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/pkg/database"
)

// identityRepository implements IdentityRepository interface
type identityRepository struct {
	db *database.Postgres
}

// NewIdentityRepository creates a new identity repository
func NewIdentityRepository(db *database.Postgres) IdentityRepository {
	return &identityRepository{db: db}
}

// Create creates a new identity in the database
func (r *identityRepository) Create(ctx context.Context, identity *domain.Identity) error {
	query := `
		INSERT INTO identities (id, email, password_hash, created_at, updated_at, is_active, is_email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if identity.ID == "" {
		identity.ID = uuid.New().String()
	}

	now := time.Now()
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = now
	}
	if identity.UpdatedAt.IsZero() {
		identity.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		identity.ID,
		identity.Email,
		identity.PasswordHash,
		identity.CreatedAt,
		identity.UpdatedAt,
		identity.IsActive,
		identity.IsEmailVerified,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("identity with email %s already exists: %w", identity.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create identity: %w", err)
	}

	return nil
}

// GetByEmail retrieves an identity by email
func (r *identityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at, last_login_at, is_active, is_email_verified
		FROM identities
		WHERE email = $1
	`
	return r.scanIdentity(r.db.DB.QueryRowContext(ctx, query, email), "email", email)
}

// GetByID retrieves an identity by ID
func (r *identityRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at, last_login_at, is_active, is_email_verified
		FROM identities
		WHERE id = $1
	`
	return r.scanIdentity(r.db.DB.QueryRowContext(ctx, query, id), "id", id)
}

func (r *identityRepository) scanIdentity(row *sql.Row, field, value string) (*domain.Identity, error) {
	identity := &domain.Identity{}
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.PasswordHash,
		&identity.CreatedAt,
		&identity.UpdatedAt,
		&lastLoginAt,
		&identity.IsActive,
		&identity.IsEmailVerified,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("identity with %s %s not found: %w", field, value, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get identity by %s: %w", field, err)
	}

	if lastLoginAt.Valid {
		identity.LastLoginAt = &lastLoginAt.Time
	}

	return identity, nil
}

// UpdateLastLogin updates the last login timestamp for an identity
func (r *identityRepository) UpdateLastLogin(ctx context.Context, identityID string) error {
	query := `
		UPDATE identities
		SET last_login_at = $1
		WHERE id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, time.Now(), identityID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("identity with id %s not found: %w", identityID, ErrNotFound)
	}

	return nil
}
