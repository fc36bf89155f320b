package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/techtoearth/onboarding-service/pkg/database"
)

// SessionMetadata is the free-form attribute bag attached to a session. It
// caches the completion flag and wizard answers so the router and the wizard
// need not re-query the profile store on every navigation. It may lag the
// profiles table.
type SessionMetadata struct {
	Provider         string   `json:"provider,omitempty"`
	Email            string   `json:"email,omitempty"`
	FullName         string   `json:"full_name,omitempty"`
	DisplayName      string   `json:"display_name,omitempty"`
	AvatarURL        string   `json:"avatar_url,omitempty"`
	Location         string   `json:"location,omitempty"`
	CurrentRole      string   `json:"current_role,omitempty"`
	CareerInterests  []string `json:"career_interests,omitempty"`
	ExperienceLevel  string   `json:"experience_level,omitempty"`
	Motivation       string   `json:"motivation,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	WizardStep       int      `json:"wizard_step,omitempty"`
	ProfileCompleted bool     `json:"profile_completed"`
}

// HasName reports whether the bag carries any name-like field.
func (m SessionMetadata) HasName() bool {
	return m.FullName != "" || m.DisplayName != ""
}

// SessionMetadataStore keeps per-identity session metadata in Redis.
type SessionMetadataStore struct {
	redis *database.Redis
	ttl   time.Duration
}

// NewSessionMetadataStore creates a session metadata store. The TTL matches
// the refresh token lifetime so the bag outlives any usable session.
func NewSessionMetadataStore(redis *database.Redis, ttl time.Duration) *SessionMetadataStore {
	return &SessionMetadataStore{redis: redis, ttl: ttl}
}

func (s *SessionMetadataStore) key(identityID string) string {
	return fmt.Sprintf("sessionmeta:%s", identityID)
}

// Get retrieves the metadata bag for an identity. A missing bag is not an
// error: the zero value is returned.
func (s *SessionMetadataStore) Get(ctx context.Context, identityID string) (SessionMetadata, error) {
	var meta SessionMetadata

	val, err := s.redis.Client.Get(ctx, s.key(identityID)).Result()
	if errors.Is(err, redis.Nil) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("failed to get session metadata: %w", err)
	}

	if err := json.Unmarshal([]byte(val), &meta); err != nil {
		return SessionMetadata{}, fmt.Errorf("failed to decode session metadata: %w", err)
	}

	return meta, nil
}

// Set replaces the metadata bag for an identity.
func (s *SessionMetadataStore) Set(ctx context.Context, identityID string, meta SessionMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode session metadata: %w", err)
	}

	if err := s.redis.Client.Set(ctx, s.key(identityID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session metadata: %w", err)
	}

	return nil
}

// Delete removes the metadata bag for an identity.
func (s *SessionMetadataStore) Delete(ctx context.Context, identityID string) error {
	if err := s.redis.Client.Del(ctx, s.key(identityID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session metadata: %w", err)
	}
	return nil
}
