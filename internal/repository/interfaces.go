package repository

import (
	"context"

	"github.com/techtoearth/onboarding-service/internal/domain"
)

// IdentityRepository defines methods for identity operations
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)
	GetByID(ctx context.Context, id string) (*domain.Identity, error)
	UpdateLastLogin(ctx context.Context, identityID string) error
}

// ProfileRepository defines methods for profile operations.
// A profile row is keyed by identity id; Upsert is insert-or-update on that key.
type ProfileRepository interface {
	GetByIdentityID(ctx context.Context, identityID string) (*domain.Profile, error)
	Insert(ctx context.Context, profile *domain.Profile) error
	Upsert(ctx context.Context, profile *domain.Profile) error
}

// FederatedLinkRepository defines methods for provider connection operations
type FederatedLinkRepository interface {
	Create(ctx context.Context, link *domain.FederatedLink) error
	GetByProvider(ctx context.Context, provider, providerUserID string) (*domain.FederatedLink, error)
	GetByIdentityID(ctx context.Context, identityID string) ([]*domain.FederatedLink, error)
}

// TokenRepository defines methods for refresh token operations
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) error
}
