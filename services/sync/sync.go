package sync

import (
	"context"
	"fmt"
	"time"

	"mentorhub/models"
	"mentorhub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetAuthURL issues a provider consent URL for the user. The state nonce is
// parked in Redis so the callback can be tied back to the user without
// trusting the raw round-tripped value.
func (s *DefaultSyncService) GetAuthURL(ctx context.Context, userID string) (string, error) {
	state := uuid.New().String()
	if s.States != nil {
		key := utils.OAuthStatePrefix + state
		if err := s.States.Set(ctx, key, userID, utils.OAuthStateTTL).Err(); err != nil {
			return "", fmt.Errorf("failed to store oauth state: %w", err)
		}
	}
	return s.Provider.AuthCodeURL(state), nil
}

// HandleCallback exchanges the authorization code and upserts the user's
// integration record. Re-running the consent flow refreshes the same record;
// it never duplicates it. Returns the user the consent belonged to.
func (s *DefaultSyncService) HandleCallback(ctx context.Context, code, state string) (string, error) {
	var userID string
	if s.States != nil {
		key := utils.OAuthStatePrefix + state
		val, err := s.States.Get(ctx, key).Result()
		if err != nil {
			return "", ErrInvalidState
		}
		userID = val
		s.States.Del(ctx, key)
	} else {
		// No state store configured; fall back to treating state as the
		// opaque user id, the original round-trip behavior.
		userID = state
	}

	token, err := s.Provider.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("oauth exchange failed: %w", err)
	}

	integ := &models.UserIntegration{
		UserID:       userID,
		Provider:     s.ProviderName,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
		Active:       true,
	}
	if err := s.Integrations.UpsertUserIntegration(ctx, integ); err != nil {
		return "", fmt.Errorf("failed to store integration: %w", err)
	}
	return userID, nil
}

// ListEvents is a passthrough to the provider using the stored tokens.
func (s *DefaultSyncService) ListEvents(ctx context.Context, userID string, start, end time.Time) ([]ProviderEvent, error) {
	integ, err := s.Integrations.GetUserIntegration(ctx, userID, s.ProviderName)
	if err != nil {
		return nil, ErrNotConnected
	}
	return s.Provider.ListEvents(ctx, integ, start, end)
}

// CreateEvent is a passthrough to the provider using the stored tokens.
func (s *DefaultSyncService) CreateEvent(ctx context.Context, userID string, ev *ProviderEvent) (*ProviderEvent, error) {
	integ, err := s.Integrations.GetUserIntegration(ctx, userID, s.ProviderName)
	if err != nil {
		return nil, ErrNotConnected
	}
	id, err := s.Provider.CreateEvent(ctx, integ, ev)
	if err != nil {
		return nil, err
	}
	ev.ID = id
	return ev, nil
}

// SyncSessions mirrors the mentor's future scheduled sessions into the
// provider calendar. A session with an existing sync marker is skipped, which
// is the loop's only idempotency mechanism: the event insert and the marker
// write are not one transaction, so a crash between the two can still leave a
// duplicate behind on the next run. Every session gets its own result entry;
// a provider failure on one never aborts the rest.
func (s *DefaultSyncService) SyncSessions(ctx context.Context, userID string) (*SyncResult, error) {
	integ, err := s.Integrations.GetUserIntegration(ctx, userID, s.ProviderName)
	if err != nil {
		return nil, ErrNotConnected
	}

	sessions, err := s.Sessions.FindUpcomingScheduled(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming sessions: %w", err)
	}

	logger := utils.GetLogger()
	result := &SyncResult{Total: len(sessions)}

	for _, sess := range sessions {
		if _, err := s.Integrations.GetSessionIntegration(ctx, sess.ID, s.ProviderName); err == nil {
			// Already mirrored.
			result.Results = append(result.Results, models.ItemResult{SessionID: sess.ID, Success: true})
			continue
		}

		eventID, err := s.Provider.CreateEvent(ctx, integ, &ProviderEvent{
			Title:       fmt.Sprintf("Tutoring: %s", sess.Subject),
			Description: fmt.Sprintf("%s session with student", sess.Type),
			Start:       sess.ScheduledAt,
			End:         sess.End(),
		})
		if err != nil {
			logger.Warn("sync: provider event creation failed",
				zap.String("sessionID", sess.ID), zap.Error(err))
			result.Results = append(result.Results, models.ItemResult{
				SessionID: sess.ID,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}

		marker := &models.SessionIntegration{
			SessionID:       sess.ID,
			Provider:        s.ProviderName,
			ExternalEventID: eventID,
		}
		if err := s.Integrations.CreateSessionIntegration(ctx, marker); err != nil {
			logger.Warn("sync: marker write failed, session may duplicate on next run",
				zap.String("sessionID", sess.ID), zap.Error(err))
			result.Results = append(result.Results, models.ItemResult{
				SessionID: sess.ID,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}

		result.Synced++
		result.Results = append(result.Results, models.ItemResult{SessionID: sess.ID, Success: true})
	}

	return result, nil
}
