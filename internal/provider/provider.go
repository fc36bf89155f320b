package provider

import (
	"context"
	"errors"

	"github.com/techtoearth/onboarding-service/internal/domain"
)

// ErrAuthenticationFailed signals that the exchange failed, or that the
// provider reported success without a usable session or identity. Exchanges
// are never retried because authorization codes are single-use.
var ErrAuthenticationFailed = errors.New("authentication failed")

// OAuthProvider wraps an external identity provider. Implementations return
// identity facts only; classification, reconciliation, and session issuance
// happen elsewhere.
type OAuthProvider interface {
	// Name returns the provider tag (e.g. "google").
	Name() string

	// AuthCodeURL returns the provider's consent URL for the given state nonce.
	AuthCodeURL(state string) string

	// ExchangeCode exchanges an authorization code for the identity's raw
	// attribute bag. A single attempt is made per call.
	ExchangeCode(ctx context.Context, code string) (*domain.IdentityAttributes, error)
}
