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

// federatedLinkRepository implements FederatedLinkRepository interface
type federatedLinkRepository struct {
	db *database.Postgres
}

// NewFederatedLinkRepository creates a new federated link repository
func NewFederatedLinkRepository(db *database.Postgres) FederatedLinkRepository {
	return &federatedLinkRepository{db: db}
}

// Create creates a new provider connection
func (r *federatedLinkRepository) Create(ctx context.Context, link *domain.FederatedLink) error {
	query := `
		INSERT INTO federated_links (id, identity_id, provider, provider_user_id, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		link.ID,
		link.IdentityID,
		link.Provider,
		link.ProviderUserID,
		link.Email,
		link.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("federated link already exists: %w", ErrDuplicateFederatedLink)
			}
		}
		return fmt.Errorf("failed to create federated link: %w", err)
	}

	return nil
}

// GetByProvider retrieves a connection by provider and provider user id
func (r *federatedLinkRepository) GetByProvider(ctx context.Context, provider, providerUserID string) (*domain.FederatedLink, error) {
	query := `
		SELECT id, identity_id, provider, provider_user_id, email, created_at
		FROM federated_links
		WHERE provider = $1 AND provider_user_id = $2
	`

	link := &domain.FederatedLink{}
	var email sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, provider, providerUserID).Scan(
		&link.ID,
		&link.IdentityID,
		&link.Provider,
		&link.ProviderUserID,
		&email,
		&link.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("federated link not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get federated link: %w", err)
	}

	if email.Valid {
		link.Email = &email.String
	}

	return link, nil
}

// GetByIdentityID retrieves all provider connections for an identity
func (r *federatedLinkRepository) GetByIdentityID(ctx context.Context, identityID string) ([]*domain.FederatedLink, error) {
	query := `
		SELECT id, identity_id, provider, provider_user_id, email, created_at
		FROM federated_links
		WHERE identity_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get federated links by identity id: %w", err)
	}
	defer rows.Close()

	var links []*domain.FederatedLink
	for rows.Next() {
		link := &domain.FederatedLink{}
		var email sql.NullString

		err := rows.Scan(
			&link.ID,
			&link.IdentityID,
			&link.Provider,
			&link.ProviderUserID,
			&email,
			&link.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan federated link: %w", err)
		}

		if email.Valid {
			link.Email = &email.String
		}

		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate federated links: %w", err)
	}

	return links, nil
}
