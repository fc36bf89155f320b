package dto

// RegisterRequest represents an email signup request. Name fields are
// optional; users who skip them are routed through the onboarding wizard.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email" validate:"required,email"`
	Password    string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	FullName    string `json:"full_name" binding:"omitempty,max=200"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	Destination string   `json:"destination"`
	User        UserInfo `json:"user"`
}

// UserInfo represents identity information in a response
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ProfileResponse represents a profile read response
type ProfileResponse struct {
	IdentityID       string   `json:"identity_id"`
	Email            string   `json:"email"`
	FullName         string   `json:"full_name"`
	DisplayName      string   `json:"display_name"`
	AvatarURL        string   `json:"avatar_url"`
	SignupMethod     string   `json:"signup_method"`
	Provider         string   `json:"provider"`
	Location         string   `json:"location"`
	CurrentRole      string   `json:"current_role"`
	CareerInterests  []string `json:"career_interests"`
	ExperienceLevel  string   `json:"experience_level"`
	Motivation       string   `json:"motivation"`
	Bio              string   `json:"bio"`
	ProfileCompleted bool     `json:"profile_completed"`
}

// WizardBasicsRequest carries step 1 of the onboarding wizard
type WizardBasicsRequest struct {
	FullName    string `json:"full_name" binding:"required,max=200"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
	Location    string `json:"location" binding:"omitempty,max=200"`
	CurrentRole string `json:"current_role" binding:"omitempty,max=200"`
}

// WizardInterestsRequest carries step 2 of the onboarding wizard
type WizardInterestsRequest struct {
	CareerInterests []string `json:"career_interests" binding:"required,min=1"`
}

// WizardBackgroundRequest carries step 3 of the onboarding wizard
type WizardBackgroundRequest struct {
	ExperienceLevel string `json:"experience_level" binding:"omitempty,max=50"`
	Motivation      string `json:"motivation" binding:"required"`
	Bio             string `json:"bio" binding:"omitempty,max=2000"`
}

// WizardStateResponse describes the wizard position and prefilled answers
type WizardStateResponse struct {
	Step            int      `json:"step"`
	BackAllowed     bool     `json:"back_allowed"`
	Completed       bool     `json:"completed"`
	Destination     string   `json:"destination,omitempty"`
	FullName        string   `json:"full_name,omitempty"`
	DisplayName     string   `json:"display_name,omitempty"`
	Location        string   `json:"location,omitempty"`
	CurrentRole     string   `json:"current_role,omitempty"`
	CareerInterests []string `json:"career_interests,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Motivation      string   `json:"motivation,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	InterestCatalog []string `json:"interest_catalog"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
