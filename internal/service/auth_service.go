package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/internal/dto"
	"github.com/techtoearth/onboarding-service/internal/repository"
	"github.com/techtoearth/onboarding-service/internal/utils"
	"go.uber.org/zap"
)

// authService implements AuthService interface
type authService struct {
	identityRepo       repository.IdentityRepository
	linkRepo           repository.FederatedLinkRepository
	tokenRepo          repository.TokenRepository
	reconciler         *ProfileReconciler
	metadata           MetadataStore
	jwtManager         *utils.JWTManager
	blacklistService   *TokenBlacklistService
	logger             *zap.Logger
	bcryptCost         int
	refreshTokenExpiry time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	identityRepo repository.IdentityRepository,
	linkRepo repository.FederatedLinkRepository,
	tokenRepo repository.TokenRepository,
	reconciler *ProfileReconciler,
	metadata MetadataStore,
	jwtManager *utils.JWTManager,
	blacklistService *TokenBlacklistService,
	logger *zap.Logger,
	bcryptCost int,
	refreshTokenExpiry time.Duration,
) AuthService {
	return &authService{
		identityRepo:       identityRepo,
		linkRepo:           linkRepo,
		tokenRepo:          tokenRepo,
		reconciler:         reconciler,
		metadata:           metadata,
		jwtManager:         jwtManager,
		blacklistService:   blacklistService,
		logger:             logger,
		bcryptCost:         bcryptCost,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

// Register creates a new email identity and runs it through the same
// classification and reconciliation as a federated sign-in.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*SignInResult, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, fmt.Errorf("invalid email format")
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("password must be at least 8 characters long and contain uppercase, lowercase, and number")
	}

	_, err := s.identityRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err == nil {
		return nil, fmt.Errorf("identity with email %s already exists", req.Email)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check identity existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &domain.Identity{
		Email:           utils.SanitizeEmail(req.Email),
		PasswordHash:    passwordHash,
		IsActive:        true,
		IsEmailVerified: false,
	}

	if err := s.identityRepo.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	attrs := domain.IdentityAttributes{
		Provider:     domain.ProviderEmail,
		SignupMethod: domain.ProviderEmail,
		Email:        identity.Email,
		FullName:     req.FullName,
		DisplayName:  req.DisplayName,
	}

	return s.completeSignIn(ctx, identity, attrs)
}

// Login authenticates an email identity.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*SignInResult, error) {
	identity, err := s.identityRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid email or password")
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	if !identity.IsActive {
		return nil, fmt.Errorf("identity is inactive")
	}

	if !utils.CheckPasswordHash(req.Password, identity.PasswordHash) {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := s.identityRepo.UpdateLastLogin(ctx, identity.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.String("identity_id", identity.ID), zap.Error(err))
	}

	attrs := domain.IdentityAttributes{
		Provider:     domain.ProviderEmail,
		SignupMethod: domain.ProviderEmail,
		Email:        identity.Email,
	}

	return s.completeSignIn(ctx, identity, attrs)
}

// SignInFederated resolves the external identity to a local one (provisioning
// it on first sign-in), reconciles the profile, and issues a session.
func (s *authService) SignInFederated(ctx context.Context, attrs domain.IdentityAttributes) (*SignInResult, error) {
	if attrs.Subject == "" || attrs.Email == "" {
		return nil, fmt.Errorf("federated identity missing subject or email")
	}

	identity, err := s.resolveFederatedIdentity(ctx, attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve federated identity: %w", err)
	}

	if err := s.identityRepo.UpdateLastLogin(ctx, identity.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.String("identity_id", identity.ID), zap.Error(err))
	}

	return s.completeSignIn(ctx, identity, attrs)
}

// resolveFederatedIdentity maps (provider, subject) to a local identity:
// an existing link wins, then email-based linking, then fresh provisioning.
func (s *authService) resolveFederatedIdentity(ctx context.Context, attrs domain.IdentityAttributes) (*domain.Identity, error) {
	link, err := s.linkRepo.GetByProvider(ctx, attrs.Provider, attrs.Subject)
	if err == nil {
		return s.identityRepo.GetByID(ctx, link.IdentityID)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	identity, err := s.identityRepo.GetByEmail(ctx, utils.SanitizeEmail(attrs.Email))
	if errors.Is(err, repository.ErrNotFound) {
		identity = &domain.Identity{
			Email:           utils.SanitizeEmail(attrs.Email),
			IsActive:        true,
			IsEmailVerified: true,
		}
		if err := s.identityRepo.Create(ctx, identity); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	newLink := &domain.FederatedLink{
		IdentityID:     identity.ID,
		Provider:       attrs.Provider,
		ProviderUserID: attrs.Subject,
		Email:          &identity.Email,
	}
	if err := s.linkRepo.Create(ctx, newLink); err != nil {
		// A concurrent callback for the same identity may have linked first.
		if !errors.Is(err, repository.ErrDuplicateFederatedLink) {
			return nil, err
		}
	}

	return identity, nil
}

// completeSignIn runs the shared tail of every sign-in: classify, reconcile,
// refresh session metadata, compute the destination, and issue tokens.
func (s *authService) completeSignIn(ctx context.Context, identity *domain.Identity, attrs domain.IdentityAttributes) (*SignInResult, error) {
	providerTag := ClassifyProvider(attrs)

	profile, confirmed := s.reconciler.Reconcile(ctx, identity.ID, attrs, providerTag)

	// Merge into the existing bag rather than replacing it: an in-flight
	// wizard run survives a re-login, and answers the user already typed win
	// over provider-derived values.
	meta, err := s.metadata.Get(ctx, identity.ID)
	if err != nil {
		s.logger.Warn("failed to read session metadata", zap.String("identity_id", identity.ID), zap.Error(err))
		meta = SessionMetadata{}
	}
	meta.Provider = providerTag
	meta.Email = identity.Email
	if meta.FullName == "" {
		meta.FullName = profile.FullName
	}
	if meta.DisplayName == "" {
		meta.DisplayName = profile.DisplayName
	}
	if meta.AvatarURL == "" {
		meta.AvatarURL = profile.AvatarURL
	}
	meta.ProfileCompleted = meta.ProfileCompleted || profile.ProfileCompleted

	if err := s.metadata.Set(ctx, identity.ID, meta); err != nil {
		s.logger.Warn("failed to cache session metadata", zap.String("identity_id", identity.ID), zap.Error(err))
	}

	destination := CompletionDestination(providerTag, profile.HasName() || meta.HasName(), meta.ProfileCompleted)

	result, err := s.generateSignInResult(ctx, identity)
	if err != nil {
		return nil, err
	}

	result.Destination = destination
	result.ProfileConfirmed = confirmed
	return result, nil
}

// RefreshToken rotates the refresh token and issues a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*SignInResult, error) {
	identityID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	tokenHash := s.hashToken(refreshToken)

	dbToken, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid refresh token")
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	if time.Now().After(dbToken.ExpiresAt) {
		return nil, fmt.Errorf("refresh token expired")
	}

	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, fmt.Errorf("refresh token is blacklisted")
	}

	identity, err := s.identityRepo.GetByID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	if !identity.IsActive {
		return nil, fmt.Errorf("identity is inactive")
	}

	if err := s.blacklistService.AddToken(ctx, refreshToken, s.refreshTokenExpiry); err != nil {
		s.logger.Warn("failed to blacklist rotated refresh token", zap.Error(err))
	}

	if err := s.tokenRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		s.logger.Warn("failed to delete rotated refresh token", zap.Error(err))
	}

	result, err := s.generateSignInResult(ctx, identity)
	if err != nil {
		return nil, err
	}

	// The router reads cached metadata here: it may lag the profiles table,
	// which is acceptable per the completion-state decision rules.
	meta, err := s.metadata.Get(ctx, identity.ID)
	if err != nil {
		s.logger.Warn("failed to read session metadata", zap.String("identity_id", identity.ID), zap.Error(err))
	}
	result.Destination = CompletionDestination(meta.Provider, meta.HasName(), meta.ProfileCompleted)

	return result, nil
}

// Logout invalidates the refresh token and drops cached session metadata.
func (s *authService) Logout(ctx context.Context, identityID, accessToken, refreshToken string) error {
	if accessToken != "" {
		accessExpiry := time.Duration(s.jwtManager.GetAccessTokenExpiry()) * time.Second
		if err := s.blacklistService.AddToken(ctx, accessToken, accessExpiry); err != nil {
			s.logger.Warn("failed to blacklist access token on logout", zap.Error(err))
		}
	}

	if refreshToken != "" {
		tokenHash := s.hashToken(refreshToken)

		dbToken, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
		if err == nil && dbToken.IdentityID == identityID {
			if err := s.blacklistService.AddToken(ctx, refreshToken, s.refreshTokenExpiry); err != nil {
				s.logger.Warn("failed to blacklist refresh token on logout", zap.Error(err))
			}
			if err := s.tokenRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
				s.logger.Warn("failed to delete refresh token on logout", zap.Error(err))
			}
		}
	}

	if err := s.metadata.Delete(ctx, identityID); err != nil {
		s.logger.Warn("failed to delete session metadata on logout", zap.Error(err))
	}

	return nil
}

// GetProfile returns the durable profile for an identity.
func (s *authService) GetProfile(ctx context.Context, identityID string) (*domain.Profile, error) {
	profile, err := s.reconciler.profileRepo.GetByIdentityID(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// ValidateToken validates an access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, fmt.Errorf("token is blacklisted")
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}

// hashToken hashes a token using SHA256
func (s *authService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
