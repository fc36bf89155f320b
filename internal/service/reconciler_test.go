package service

import (
	"context"
	"errors"
	"testing"

	"github.com/techtoearth/onboarding-service/internal/domain"
	"github.com/techtoearth/onboarding-service/internal/repository"
	"go.uber.org/zap"
)

// fakeProfileRepo is an in-memory ProfileRepository with injectable failures.
type fakeProfileRepo struct {
	profiles  map[string]*domain.Profile
	getErr    error
	insertErr error
	upsertErr error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (f *fakeProfileRepo) GetByIdentityID(_ context.Context, identityID string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[identityID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Insert(_ context.Context, profile *domain.Profile) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.profiles[profile.IdentityID]; ok {
		return repository.ErrDuplicateProfile
	}
	cp := *profile
	f.profiles[profile.IdentityID] = &cp
	return nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	cp := *profile
	f.profiles[profile.IdentityID] = &cp
	return nil
}

func TestReconcile_CreatesProfileFromSocialAttributes(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewProfileReconciler(repo, zap.NewNop())

	attrs := domain.IdentityAttributes{
		Email:   "jane@example.com",
		Name:    "Jane Doe",
		Picture: "https://lh3.example.com/photo.jpg",
	}

	profile, confirmed := r.Reconcile(context.Background(), "id-1", attrs, domain.ProviderGoogle)
	if !confirmed {
		t.Fatal("expected confirmed profile")
	}
	if profile.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want %q", profile.FullName, "Jane Doe")
	}
	if profile.AvatarURL != "https://lh3.example.com/photo.jpg" {
		t.Errorf("AvatarURL = %q", profile.AvatarURL)
	}
	if !profile.ProfileCompleted {
		t.Error("social profile with a name should be marked completed")
	}
	if _, ok := repo.profiles["id-1"]; !ok {
		t.Error("profile not persisted")
	}
}

func TestReconcile_SocialWithoutNameIsIncomplete(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewProfileReconciler(repo, zap.NewNop())

	attrs := domain.IdentityAttributes{Email: "jane@example.com"}

	profile, confirmed := r.Reconcile(context.Background(), "id-1", attrs, domain.ProviderGoogle)
	if !confirmed {
		t.Fatal("expected confirmed profile")
	}
	if profile.ProfileCompleted {
		t.Error("social profile without a name must not be marked completed")
	}
}

func TestReconcile_EmailNameFallbackOrder(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewProfileReconciler(repo, zap.NewNop())

	attrs := domain.IdentityAttributes{
		Email:       "jane@example.com",
		FullName:    "Jane Doe",
		DisplayName: "jane",
		Name:        "ignored for email",
	}

	profile, _ := r.Reconcile(context.Background(), "id-1", attrs, domain.ProviderEmail)
	if profile.FullName != "Jane Doe" {
		t.Errorf("FullName = %q, want application-collected full name", profile.FullName)
	}
	if profile.DisplayName != "jane" {
		t.Errorf("DisplayName = %q, want %q", profile.DisplayName, "jane")
	}
	if profile.ProfileCompleted {
		t.Error("email profile must require explicit completion")
	}
}

func TestReconcile_ReturnsExistingProfile(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles["id-1"] = &domain.Profile{
		IdentityID: "id-1",
		FullName:   "Existing User",
	}
	r := NewProfileReconciler(repo, zap.NewNop())

	profile, confirmed := r.Reconcile(context.Background(), "id-1", domain.IdentityAttributes{Name: "New Name"}, domain.ProviderGoogle)
	if !confirmed {
		t.Fatal("expected confirmed profile")
	}
	if profile.FullName != "Existing User" {
		t.Errorf("existing profile must not be overwritten, got FullName = %q", profile.FullName)
	}
}

func TestReconcile_IdempotentAcrossSignIns(t *testing.T) {
	repo := newFakeProfileRepo()
	r := NewProfileReconciler(repo, zap.NewNop())

	attrs := domain.IdentityAttributes{Email: "jane@example.com", Name: "Jane Doe"}

	first, _ := r.Reconcile(context.Background(), "id-1", attrs, domain.ProviderGoogle)
	second, confirmed := r.Reconcile(context.Background(), "id-1", attrs, domain.ProviderGoogle)

	if !confirmed {
		t.Fatal("second reconcile should be confirmed")
	}
	if first.FullName != second.FullName || first.Email != second.Email {
		t.Error("repeated reconciliation produced a different profile")
	}
	if len(repo.profiles) != 1 {
		t.Errorf("expected exactly one profile row, got %d", len(repo.profiles))
	}
}

func TestReconcile_ReadFailureAssumesNotFound(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.getErr = errors.New("connection reset")
	r := NewProfileReconciler(repo, zap.NewNop())

	attrs := domain.IdentityAttributes{Email: "jane@example.com", Name: "Jane Doe"}

	profile, confirmed := r.Reconcile(context.Background(), "id-1", attrs, domain.ProviderGoogle)
	if profile == nil {
		t.Fatal("reconcile must still synthesize a profile after a read failure")
	}
	if !confirmed {
		t.Error("insert succeeded, profile should be confirmed")
	}
}

func TestReconcile_InsertFailureDoesNotBlock(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.insertErr = errors.New("disk full")
	r := NewProfileReconciler(repo, zap.NewNop())

	attrs := domain.IdentityAttributes{Email: "jane@example.com", Name: "Jane Doe"}

	profile, confirmed := r.Reconcile(context.Background(), "id-1", attrs, domain.ProviderGoogle)
	if profile == nil {
		t.Fatal("reconcile must return a synthesized profile even when insert fails")
	}
	if confirmed {
		t.Error("failed insert must report an unconfirmed profile")
	}
}

func TestReconcile_DuplicateInsertTreatedAsSuccess(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.getErr = errors.New("read replica down")
	repo.profiles["id-1"] = &domain.Profile{IdentityID: "id-1"}
	r := NewProfileReconciler(repo, zap.NewNop())

	_, confirmed := r.Reconcile(context.Background(), "id-1", domain.IdentityAttributes{Name: "Jane"}, domain.ProviderGoogle)
	if !confirmed {
		t.Error("duplicate insert means the row exists, which is a success")
	}
}
