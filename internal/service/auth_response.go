package service

import (
	"context"
	"fmt"
	"time"

	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/internal/dto"
)

// SignInResult is the outcome of a successful sign-in: issued tokens plus the
// completion-state destination. ProfileConfirmed is false when reconciliation
// could not guarantee a durable profile; sign-in still succeeds.
type SignInResult struct {
	AuthResponse     *dto.AuthResponse
	RefreshToken     string
	RefreshExpiresIn int // refresh token expiry in seconds
	Destination      Destination
	ProfileConfirmed bool
}

// generateSignInResult issues an access/refresh token pair and stores the
// hashed refresh token.
func (s *authService) generateSignInResult(ctx context.Context, identity *domain.Identity) (*SignInResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(identity.ID, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := s.hashToken(refreshToken)

	refreshTokenEntity := &domain.RefreshToken{
		IdentityID: identity.ID,
		TokenHash:  tokenHash,
		ExpiresAt:  time.Now().Add(s.refreshTokenExpiry),
	}

	if err := s.tokenRepo.Create(ctx, refreshTokenEntity); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &SignInResult{
		AuthResponse: &dto.AuthResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   s.jwtManager.GetAccessTokenExpiry(),
			User: dto.UserInfo{
				ID:    identity.ID,
				Email: identity.Email,
			},
		},
		RefreshToken:     refreshToken,
		RefreshExpiresIn: int(s.refreshTokenExpiry.Seconds()),
		ProfileConfirmed: true,
	}, nil
}
