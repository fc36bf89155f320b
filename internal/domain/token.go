package domain

import "time"

// TokenClaims represents the claims carried by an application session token.
type TokenClaims struct {
	IdentityID string `json:"identity_id"`
	Email      string `json:"email"`
	Exp        int64  `json:"exp"`
	Iat        int64  `json:"iat"`
}

// TokenPair represents a pair of access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// RefreshToken is the stored (hashed) form of a refresh token.
type RefreshToken struct {
	ID         string    `json:"id" db:"id"`
	IdentityID string    `json:"identity_id" db:"identity_id"`
	TokenHash  string    `json:"-" db:"token_hash"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	DeviceInfo *string   `json:"device_info" db:"device_info"`
	IPAddress  *string   `json:"ip_address" db:"ip_address"`
}

// IsExpired checks if the token is expired.
func (tc TokenClaims) IsExpired() bool {
	return time.Now().Unix() > tc.Exp
}
