package service

import (
	"testing"

	"github.com/techtoearth/onboarding-service/internal/domain"
)

func TestCompletionDestination(t *testing.T) {
	tests := []struct {
		name      string
		provider  string
		hasName   bool
		completed bool
		want      Destination
	}{
		{"social completed", domain.ProviderGoogle, true, true, DestinationMainArea},
		{"social incomplete", domain.ProviderGoogle, true, false, DestinationOnboarding},
		{"social completed without name", domain.ProviderGoogle, false, true, DestinationMainArea},
		{"email completed with name", domain.ProviderEmail, true, true, DestinationMainArea},
		{"email incomplete with name", domain.ProviderEmail, true, false, DestinationOnboarding},
		{"email without name overrides completed flag", domain.ProviderEmail, false, true, DestinationOnboarding},
		{"email without name incomplete", domain.ProviderEmail, false, false, DestinationOnboarding},
		{"empty tag treated as email", "", false, true, DestinationOnboarding},
		{"unknown social provider", "github", false, true, DestinationMainArea},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionDestination(tt.provider, tt.hasName, tt.completed); got != tt.want {
				t.Errorf("CompletionDestination(%q, %v, %v) = %v, want %v",
					tt.provider, tt.hasName, tt.completed, got, tt.want)
			}
		})
	}
}
