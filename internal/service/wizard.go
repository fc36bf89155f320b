package service

import (
	"context"
	"errors"
	"strings"

	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/internal/dto"
	"github.com/techtoearth/onboarding-service/internal/repository"
	"go.uber.org/zap"
)

// Wizard steps. The flow is linear: basics, interests, background, done.
const (
	StepBasics     = 1
	StepInterests  = 2
	StepBackground = 3
	StepDone       = 4
)

// Wizard validation errors
var (
	ErrFullNameRequired   = errors.New("full name is required")
	ErrInterestRequired   = errors.New("at least one career interest is required")
	ErrUnknownInterest    = errors.New("unknown career interest tag")
	ErrMotivationRequired = errors.New("motivation is required")
)

// WizardState describes the wizard position for a given identity.
type WizardState struct {
	Step        int
	BackAllowed bool
	Completed   bool
	Destination Destination
	Answers     SessionMetadata
}

// onboardingService implements OnboardingService. Draft answers live in the
// session metadata bag; only Complete writes the durable profile.
type onboardingService struct {
	profileRepo repository.ProfileRepository
	metadata    MetadataStore
	logger      *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(profileRepo repository.ProfileRepository, metadata MetadataStore, logger *zap.Logger) OnboardingService {
	return &onboardingService{
		profileRepo: profileRepo,
		metadata:    metadata,
		logger:      logger,
	}
}

// State returns the current wizard position, resuming an in-flight run or
// computing the initial step. A social identity with a resolvable name starts
// at interests: basics are pre-filled from the provider and treated as
// satisfied, and that skip-forward is not a reachable back target.
func (s *onboardingService) State(ctx context.Context, identityID string) (*WizardState, error) {
	meta := s.loadMetadata(ctx, identityID)

	if meta.ProfileCompleted {
		return &WizardState{
			Step:        StepDone,
			Completed:   true,
			Destination: DestinationMainArea,
			Answers:     meta,
		}, nil
	}

	floor := s.initialStep(meta)

	step := meta.WizardStep
	if step < floor {
		step = floor
	}

	return &WizardState{
		Step:        step,
		BackAllowed: step > floor,
		Destination: DestinationOnboarding,
		Answers:     meta,
	}, nil
}

// SubmitBasics handles step 1.
func (s *onboardingService) SubmitBasics(ctx context.Context, identityID string, req *dto.WizardBasicsRequest) (*WizardState, error) {
	if strings.TrimSpace(req.FullName) == "" {
		return nil, ErrFullNameRequired
	}

	meta := s.loadMetadata(ctx, identityID)
	meta.FullName = strings.TrimSpace(req.FullName)
	if req.DisplayName != "" {
		meta.DisplayName = strings.TrimSpace(req.DisplayName)
	}
	meta.Location = strings.TrimSpace(req.Location)
	meta.CurrentRole = strings.TrimSpace(req.CurrentRole)
	meta.WizardStep = StepInterests

	if err := s.metadata.Set(ctx, identityID, meta); err != nil {
		return nil, err
	}

	return s.State(ctx, identityID)
}

// SubmitInterests handles step 2. Tags must come from the fixed catalog.
func (s *onboardingService) SubmitInterests(ctx context.Context, identityID string, req *dto.WizardInterestsRequest) (*WizardState, error) {
	if len(req.CareerInterests) == 0 {
		return nil, ErrInterestRequired
	}
	for _, tag := range req.CareerInterests {
		if !domain.ValidInterest(tag) {
			return nil, ErrUnknownInterest
		}
	}

	meta := s.loadMetadata(ctx, identityID)
	meta.CareerInterests = req.CareerInterests
	meta.WizardStep = StepBackground

	if err := s.metadata.Set(ctx, identityID, meta); err != nil {
		return nil, err
	}

	return s.State(ctx, identityID)
}

// SubmitBackground handles step 3. Bio is optional; motivation is not.
func (s *onboardingService) SubmitBackground(ctx context.Context, identityID string, req *dto.WizardBackgroundRequest) (*WizardState, error) {
	if strings.TrimSpace(req.Motivation) == "" {
		return nil, ErrMotivationRequired
	}

	meta := s.loadMetadata(ctx, identityID)
	meta.ExperienceLevel = strings.TrimSpace(req.ExperienceLevel)
	meta.Motivation = strings.TrimSpace(req.Motivation)
	meta.Bio = strings.TrimSpace(req.Bio)
	meta.WizardStep = StepBackground

	if err := s.metadata.Set(ctx, identityID, meta); err != nil {
		return nil, err
	}

	return s.State(ctx, identityID)
}

// Complete persists the collected answers to the profile (best-effort upsert)
// and to session metadata, and marks completion. Re-invoking with the same
// answers re-upserts the same state without error.
func (s *onboardingService) Complete(ctx context.Context, identityID string) (*WizardState, error) {
	meta := s.loadMetadata(ctx, identityID)

	if meta.Motivation == "" {
		return nil, ErrMotivationRequired
	}

	profile, err := s.profileRepo.GetByIdentityID(ctx, identityID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("profile read failed during completion",
				zap.String("identity_id", identityID),
				zap.Error(err),
			)
		}
		// Reconciliation may have missed its insert; the completion upsert
		// creates the row.
		profile = &domain.Profile{
			IdentityID:   identityID,
			Email:        meta.Email,
			Provider:     meta.Provider,
			SignupMethod: meta.Provider,
		}
	}

	if meta.FullName != "" {
		profile.FullName = meta.FullName
	}
	if meta.DisplayName != "" {
		profile.DisplayName = meta.DisplayName
	}
	profile.Location = meta.Location
	profile.CurrentRole = meta.CurrentRole
	profile.CareerInterests = meta.CareerInterests
	profile.ExperienceLevel = meta.ExperienceLevel
	profile.Motivation = meta.Motivation
	profile.Bio = meta.Bio
	profile.ProfileCompleted = true

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.logger.Warn("profile upsert failed on completion, will retry on next sign-in",
			zap.String("identity_id", identityID),
			zap.Error(err),
		)
	}

	meta.ProfileCompleted = true
	meta.WizardStep = StepDone
	if err := s.metadata.Set(ctx, identityID, meta); err != nil {
		return nil, err
	}

	return &WizardState{
		Step:        StepDone,
		Completed:   true,
		Destination: DestinationMainArea,
		Answers:     meta,
	}, nil
}

// loadMetadata reads the session bag, falling back to the durable profile
// when the bag is missing or unreadable. Failures here must not block the
// wizard, so they degrade to an empty bag.
func (s *onboardingService) loadMetadata(ctx context.Context, identityID string) SessionMetadata {
	meta, err := s.metadata.Get(ctx, identityID)
	if err != nil {
		s.logger.Warn("failed to read session metadata",
			zap.String("identity_id", identityID),
			zap.Error(err),
		)
	}

	if meta.Provider != "" || meta.WizardStep > 0 || meta.HasName() {
		return meta
	}

	profile, err := s.profileRepo.GetByIdentityID(ctx, identityID)
	if err != nil {
		return meta
	}

	meta.Provider = profile.Provider
	meta.Email = profile.Email
	meta.FullName = profile.FullName
	meta.DisplayName = profile.DisplayName
	meta.AvatarURL = profile.AvatarURL
	meta.ProfileCompleted = profile.ProfileCompleted
	return meta
}

// initialStep computes the wizard entry point from the identity's metadata.
func (s *onboardingService) initialStep(meta SessionMetadata) int {
	social := meta.Provider != "" && meta.Provider != domain.ProviderEmail
	if social && meta.HasName() {
		return StepInterests
	}
	return StepBasics
}
