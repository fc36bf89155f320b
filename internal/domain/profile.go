package domain

import "time"

// Profile is the durable record describing a person, keyed by identity id.
// It is created by the reconciler on first sign-in and filled in by the
// onboarding wizard. At most one row exists per identity.
type Profile struct {
	IdentityID       string    `json:"identity_id" db:"identity_id"`
	Email            string    `json:"email" db:"email"`
	FullName         string    `json:"full_name" db:"full_name"`
	DisplayName      string    `json:"display_name" db:"display_name"`
	AvatarURL        string    `json:"avatar_url" db:"avatar_url"`
	SignupMethod     string    `json:"signup_method" db:"signup_method"`
	Provider         string    `json:"provider" db:"provider"`
	Location         string    `json:"location" db:"location"`
	CurrentRole      string    `json:"current_role" db:"current_position"`
	CareerInterests  []string  `json:"career_interests" db:"career_interests"`
	ExperienceLevel  string    `json:"experience_level" db:"experience_level"`
	Motivation       string    `json:"motivation" db:"motivation"`
	Bio              string    `json:"bio" db:"bio"`
	ProfileCompleted bool      `json:"profile_completed" db:"profile_completed"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// HasName reports whether any name-like field is populated. The completion
// router treats a nameless profile as incomplete regardless of the flag.
func (p *Profile) HasName() bool {
	return p.FullName != "" || p.DisplayName != ""
}

// InterestCatalog is the fixed set of career interest tags the wizard offers.
var InterestCatalog = []string{
	"farming",
	"renewable-energy",
	"conservation",
	"agritech",
	"climate-data",
	"sustainability",
	"green-building",
	"water-systems",
}

// ValidInterest reports whether tag belongs to the catalog.
func ValidInterest(tag string) bool {
	for _, t := range InterestCatalog {
		if t == tag {
			return true
		}
	}
	return false
}
