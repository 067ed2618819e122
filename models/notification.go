package models

import "time"

// Notification priorities.
const (
	NotificationPriorityNormal = "normal"
	NotificationPriorityHigh   = "high"
)

// Notification is a persisted in-app notification. Created once; only the
// read flag is ever updated afterwards.
type Notification struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"userId" json:"userId"`
	Type      string         `bson:"type" json:"type"` // always "session" in this subsystem
	Title     string         `bson:"title" json:"title"`
	Message   string         `bson:"message" json:"message"`
	Priority  string         `bson:"priority" json:"priority"`
	Read      bool           `bson:"read" json:"read"`
	ActionURL string         `bson:"actionUrl,omitempty" json:"actionUrl,omitempty"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
	ExpiresAt *time.Time     `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}
