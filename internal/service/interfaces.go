package service

import (
	"context"

	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/internal/dto"
)

// AuthService defines the sign-up / sign-in operations. Every successful
// operation carries the completion-state destination so the client knows
// whether to land on the wizard or the main area.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*SignInResult, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*SignInResult, error)
	SignInFederated(ctx context.Context, attrs domain.IdentityAttributes) (*SignInResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*SignInResult, error)
	Logout(ctx context.Context, identityID, accessToken, refreshToken string) error
	GetProfile(ctx context.Context, identityID string) (*domain.Profile, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// OnboardingService defines the profile-completion wizard operations.
type OnboardingService interface {
	State(ctx context.Context, identityID string) (*WizardState, error)
	SubmitBasics(ctx context.Context, identityID string, req *dto.WizardBasicsRequest) (*WizardState, error)
	SubmitInterests(ctx context.Context, identityID string, req *dto.WizardInterestsRequest) (*WizardState, error)
	SubmitBackground(ctx context.Context, identityID string, req *dto.WizardBackgroundRequest) (*WizardState, error)
	Complete(ctx context.Context, identityID string) (*WizardState, error)
}

// MetadataStore abstracts the session metadata bag so tests can substitute an
// in-memory fake for the Redis-backed store.
type MetadataStore interface {
	Get(ctx context.Context, identityID string) (SessionMetadata, error)
	Set(ctx context.Context, identityID string, meta SessionMetadata) error
	Delete(ctx context.Context, identityID string) error
}
