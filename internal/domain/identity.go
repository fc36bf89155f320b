package domain

import "time"

// Provider tags as stored on profiles and federated links.
const (
	ProviderGoogle = "google"
	ProviderEmail  = "email"
)

// Identity is the authenticated principal. Email identities are created by the
// register endpoint; federated identities are provisioned on first callback.
type Identity struct {
	ID              string     `json:"id" db:"id"`
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password_hash"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt     *time.Time `json:"last_login_at" db:"last_login_at"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	IsEmailVerified bool       `json:"is_email_verified" db:"is_email_verified"`
}

// FederatedLink connects an external provider identity to a local one.
type FederatedLink struct {
	ID             string    `json:"id" db:"id"`
	IdentityID     string    `json:"identity_id" db:"identity_id"`
	Provider       string    `json:"provider" db:"provider"`
	ProviderUserID string    `json:"provider_user_id" db:"provider_user_id"`
	Email          *string   `json:"email" db:"email"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// IdentityAttributes is the raw attribute bag the identity provider reports
// for a sign-in. The classifier and the reconciler read it; nothing writes it
// back to the provider. SignupMethod is the only application-collected field:
// it is set to "email" when the identity was created by the register endpoint,
// and is empty for historical records where the origin was never recorded.
type IdentityAttributes struct {
	Provider     string   `json:"provider"`
	Providers    []string `json:"providers"`
	Subject      string   `json:"sub"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	GivenName    string   `json:"given_name"`
	FamilyName   string   `json:"family_name"`
	FullName     string   `json:"full_name"`
	DisplayName  string   `json:"display_name"`
	Picture      string   `json:"picture"`
	AvatarURL    string   `json:"avatar_url"`
	Locale       string   `json:"locale"`
	SignupMethod string   `json:"signup_method"`
}
