package service

import "github.com/techtoearth/onboarding-service/internal/domain"

// Destination names where the flow sends a user next. The handler maps these
// to configured front-end paths.
type Destination int

const (
	// DestinationMainArea routes to the application's main area.
	DestinationMainArea Destination = iota
	// DestinationOnboarding routes to the profile-completion wizard.
	DestinationOnboarding
)

// CompletionDestination decides where a freshly signed-in user goes.
//
// Social logins always carry some identity info, so the completion flag alone
// differentiates. Email logins may lack even a name; that forces the wizard
// regardless of the flag, since the flag may come from session metadata that
// lags the profile table.
func CompletionDestination(providerTag string, hasName, completed bool) Destination {
	social := providerTag != "" && providerTag != domain.ProviderEmail
	if !social && !hasName {
		return DestinationOnboarding
	}
	if completed {
		return DestinationMainArea
	}
	return DestinationOnboarding
}
