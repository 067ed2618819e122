package notification

import (
	"context"
	"fmt"

	notificationRepo "mentorhub/database/repository/notification"
	"mentorhub/models"
)

// NotificationService writes and reads persisted in-app notifications.
type NotificationService interface {
	NotifySessionChange(ctx context.Context, userID, title, message, priority, actionURL string, metadata map[string]any) error
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

const listLimit = 50

// NotifySessionChange persists a session-typed notification for the given
// recipient. There is no transactional linkage with the session mutation
// that triggered it.
func (s *DefaultNotificationService) NotifySessionChange(
	ctx context.Context,
	userID, title, message, priority, actionURL string,
	metadata map[string]any,
) error {
	n := &models.Notification{
		UserID:    userID,
		Type:      "session",
		Title:     title,
		Message:   message,
		Priority:  priority,
		ActionURL: actionURL,
		Metadata:  metadata,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return fmt.Errorf("NotifySessionChange: failed to persist notification for %s: %w", userID, err)
	}
	return nil
}

func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	return s.Repo.FindByUser(ctx, userID, unreadOnly, listLimit)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.Repo.MarkRead(ctx, id, userID)
}
