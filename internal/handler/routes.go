package handler

import (
	"net/url"

	"github.com/techtoearth/onboarding-service/internal/config"
	"github.com/techtoearth/onboarding-service/internal/service"
)

// Destinations maps router decisions to the configured front-end paths.
type Destinations struct {
	routes config.RoutesConfig
}

// NewDestinations creates a destination mapper from route config.
func NewDestinations(routes config.RoutesConfig) Destinations {
	return Destinations{routes: routes}
}

// Path returns the front-end path for a destination.
func (d Destinations) Path(dest service.Destination) string {
	switch dest {
	case service.DestinationMainArea:
		return d.routes.MainArea
	default:
		return d.routes.Onboarding
	}
}

// URL returns the absolute front-end URL for a destination.
func (d Destinations) URL(dest service.Destination) string {
	return d.routes.Destination(d.Path(dest))
}

// SignInURL returns the authentication entry page.
func (d Destinations) SignInURL() string {
	return d.routes.Destination(d.routes.SignIn)
}

// ErrorURL returns the error page with the message encoded as a query
// parameter, URL-safe.
func (d Destinations) ErrorURL(message string) string {
	return d.routes.Destination(d.routes.AuthError) + "?message=" + url.QueryEscape(message)
}
