package repository

import (
	"github.com/techtoearth/onboarding-service/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	Identity      IdentityRepository
	Profile       ProfileRepository
	FederatedLink FederatedLinkRepository
	Token         TokenRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		Identity:      NewIdentityRepository(db),
		Profile:       NewProfileRepository(db),
		FederatedLink: NewFederatedLinkRepository(db),
		Token:         NewTokenRepository(db),
	}
}
