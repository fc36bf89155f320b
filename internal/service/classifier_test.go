package service

import (
	"testing"

	"github.com/techtoearth/onboarding-service/internal/domain"
)

func TestClassifyProvider(t *testing.T) {
	tests := []struct {
		name  string
		attrs domain.IdentityAttributes
		want  string
	}{
		{
			name:  "google in providers list",
			attrs: domain.IdentityAttributes{Providers: []string{"google"}},
			want:  domain.ProviderGoogle,
		},
		{
			name:  "google among several providers",
			attrs: domain.IdentityAttributes{Providers: []string{"github", "google"}},
			want:  domain.ProviderGoogle,
		},
		{
			name:  "declared provider google",
			attrs: domain.IdentityAttributes{Provider: "google"},
			want:  domain.ProviderGoogle,
		},
		{
			name:  "picture without email signup metadata",
			attrs: domain.IdentityAttributes{Picture: "https://lh3.example.com/photo.jpg"},
			want:  domain.ProviderGoogle,
		},
		{
			name:  "subject id without email signup metadata",
			attrs: domain.IdentityAttributes{Subject: "108234567890"},
			want:  domain.ProviderGoogle,
		},
		{
			name:  "name field without email signup metadata",
			attrs: domain.IdentityAttributes{Name: "Jane Doe"},
			want:  domain.ProviderGoogle,
		},
		{
			name:  "explicit email signup suppresses weak signals",
			attrs: domain.IdentityAttributes{SignupMethod: "email", Name: "Jane Doe"},
			want:  domain.ProviderEmail,
		},
		{
			name:  "explicit google wins over email signup metadata",
			attrs: domain.IdentityAttributes{SignupMethod: "email", Provider: "google"},
			want:  domain.ProviderGoogle,
		},
		{
			name:  "empty bag defaults to email",
			attrs: domain.IdentityAttributes{},
			want:  domain.ProviderEmail,
		},
		{
			name:  "email signup with application-collected name",
			attrs: domain.IdentityAttributes{SignupMethod: "email", FullName: "Jane Doe"},
			want:  domain.ProviderEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyProvider(tt.attrs); got != tt.want {
				t.Errorf("ClassifyProvider() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyProvider_Deterministic(t *testing.T) {
	attrs := domain.IdentityAttributes{
		Providers: []string{"github", "google"},
		Picture:   "https://lh3.example.com/photo.jpg",
	}

	first := ClassifyProvider(attrs)
	for i := 0; i < 10; i++ {
		if got := ClassifyProvider(attrs); got != first {
			t.Fatalf("classification changed between calls: %q then %q", first, got)
		}
	}
}
