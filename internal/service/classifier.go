package service

import "github.com/techtoearth/onboarding-service/internal/domain"

// ClassifyProvider decides whether an identity originated from a federated
// social login or from direct email/password signup.
//
// The declared provider field is not reliably populated across historical
// records, so detection is deliberately permissive: a single social signal is
// enough, and ties resolve in favor of the social provider. An identity is
// classified as google when any of the following holds:
//   - "google" appears in the linked providers list
//   - the declared provider equals "google"
//   - the bag carries provider-characteristic fields (profile picture,
//     external subject id, or a name field the application never collects)
//     without explicit email-signup metadata
func ClassifyProvider(attrs domain.IdentityAttributes) string {
	for _, p := range attrs.Providers {
		if p == domain.ProviderGoogle {
			return domain.ProviderGoogle
		}
	}

	if attrs.Provider == domain.ProviderGoogle {
		return domain.ProviderGoogle
	}

	if attrs.SignupMethod != domain.ProviderEmail {
		if attrs.Picture != "" || attrs.Subject != "" || attrs.Name != "" {
			return domain.ProviderGoogle
		}
	}

	return domain.ProviderEmail
}
