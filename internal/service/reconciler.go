package service

import (
	"context"
	"errors"

	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/internal/repository"
	"go.uber.org/zap"
)

// ProfileReconciler ensures a profile row exists for a signed-in identity.
// Every step is best-effort: sign-in must never fail because of a transient
// profile read or insert problem, so errors are logged and swallowed and the
// flow proceeds without a confirmed profile. A missed insert is recovered
// later, either by the next sign-in or by the wizard's completion upsert.
type ProfileReconciler struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

// NewProfileReconciler creates a new profile reconciler
func NewProfileReconciler(profileRepo repository.ProfileRepository, logger *zap.Logger) *ProfileReconciler {
	return &ProfileReconciler{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Reconcile returns the existing profile for the identity, or synthesizes and
// inserts one from the provider attributes. The second return value reports
// whether the profile is confirmed durable; callers treat false as "profile
// unknown" and still proceed.
func (r *ProfileReconciler) Reconcile(ctx context.Context, identityID string, attrs domain.IdentityAttributes, providerTag string) (*domain.Profile, bool) {
	existing, err := r.profileRepo.GetByIdentityID(ctx, identityID)
	if err == nil {
		return existing, true
	}

	// Not-found is the expected first-sign-in case. Anything else is a
	// transient read problem: log it and assume not found.
	if !errors.Is(err, repository.ErrNotFound) {
		r.logger.Warn("profile read failed, assuming not found",
			zap.String("identity_id", identityID),
			zap.Error(err),
		)
	}

	profile := r.synthesize(identityID, attrs, providerTag)

	if err := r.profileRepo.Insert(ctx, profile); err != nil {
		// A duplicate insert means a backend trigger or a concurrent sign-in
		// won the race; the row exists, which is all we need.
		if errors.Is(err, repository.ErrDuplicateProfile) {
			return profile, true
		}
		r.logger.Warn("profile insert failed, proceeding without confirmed profile",
			zap.String("identity_id", identityID),
			zap.Error(err),
		)
		return profile, false
	}

	r.logger.Info("profile created",
		zap.String("identity_id", identityID),
		zap.String("provider", providerTag),
		zap.Bool("profile_completed", profile.ProfileCompleted),
	)

	return profile, true
}

// synthesize builds a profile from provider attributes. Name fallback
// precedence differs by origin: social providers populate "name" first, while
// email signups use the application-collected fields.
func (r *ProfileReconciler) synthesize(identityID string, attrs domain.IdentityAttributes, providerTag string) *domain.Profile {
	social := providerTag != "" && providerTag != domain.ProviderEmail

	var fullName, displayName, avatarURL string
	if social {
		fullName = firstNonEmpty(attrs.Name, attrs.FullName)
		displayName = firstNonEmpty(attrs.Name, attrs.GivenName)
		avatarURL = attrs.Picture
	} else {
		fullName = firstNonEmpty(attrs.FullName, attrs.Name)
		displayName = firstNonEmpty(attrs.DisplayName, attrs.FullName)
		avatarURL = attrs.AvatarURL
	}

	return &domain.Profile{
		IdentityID:   identityID,
		Email:        attrs.Email,
		FullName:     fullName,
		DisplayName:  displayName,
		AvatarURL:    avatarURL,
		SignupMethod: providerTag,
		Provider:     providerTag,
		// Social sign-ins are minimally self-describing, but only when a name
		// actually resolved; email sign-ins always require explicit completion.
		ProfileCompleted: social && fullName != "",
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
