package models

import "time"

// ProviderGoogle is the only external calendar provider currently wired.
const ProviderGoogle = "google"

// UserIntegration stores the OAuth credential set linking a local user to an
// external calendar provider account. One record per (user, provider).
type UserIntegration struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	Provider     string    `bson:"provider" json:"provider"`
	AccessToken  string    `bson:"accessToken" json:"-"`
	RefreshToken string    `bson:"refreshToken" json:"-"`
	TokenExpiry  time.Time `bson:"tokenExpiry" json:"tokenExpiry"`
	Active       bool      `bson:"active" json:"active"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SessionIntegration marks a session as already mirrored to a provider, so
// repeated sync calls skip it. One record per (session, provider).
type SessionIntegration struct {
	ID              string    `bson:"id" json:"id"`
	SessionID       string    `bson:"sessionId" json:"sessionId"`
	Provider        string    `bson:"provider" json:"provider"`
	ExternalEventID string    `bson:"externalEventId" json:"externalEventId"`
	SyncedAt        time.Time `bson:"syncedAt" json:"syncedAt"`
}
