package sync

import (
	"context"
	"time"

	integrationRepo "mentorhub/database/repository/integration"
	sessionRepo "mentorhub/database/repository/session"
	"mentorhub/models"

	"github.com/go-redis/redis/v8"
	"golang.org/x/oauth2"
)

// ProviderEvent is the provider-neutral shape of an external calendar event.
type ProviderEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	MeetLink    string    `json:"meetLink,omitempty"`
}

// ProviderClient is the thin surface we need from an external calendar
// provider: the OAuth consent round-trip plus event reads and writes
// authenticated with a stored integration record.
type ProviderClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	ListEvents(ctx context.Context, integ *models.UserIntegration, start, end time.Time) ([]ProviderEvent, error)
	CreateEvent(ctx context.Context, integ *models.UserIntegration, ev *ProviderEvent) (string, error)
}

// SyncResult reports one run of the session mirror loop.
type SyncResult struct {
	Synced  int                 `json:"synced"`
	Total   int                 `json:"total"`
	Results []models.ItemResult `json:"results"`
}

// SyncService links mentors to an external calendar provider and mirrors
// their upcoming sessions into it.
type SyncService interface {
	GetAuthURL(ctx context.Context, userID string) (string, error)
	HandleCallback(ctx context.Context, code, state string) (string, error)
	ListEvents(ctx context.Context, userID string, start, end time.Time) ([]ProviderEvent, error)
	CreateEvent(ctx context.Context, userID string, ev *ProviderEvent) (*ProviderEvent, error)
	SyncSessions(ctx context.Context, userID string) (*SyncResult, error)
}

// DefaultSyncService is the production implementation.
type DefaultSyncService struct {
	Provider     ProviderClient
	ProviderName string
	Integrations integrationRepo.IntegrationRepository
	Sessions     sessionRepo.SessionRepository
	States       *redis.Client // pending OAuth consent nonces
}
