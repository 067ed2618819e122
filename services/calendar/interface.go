package calendar

import (
	"context"
	"time"

	notificationSvc "mentorhub/services/notification"

	sessionRepo "mentorhub/database/repository/session"
	userRepo "mentorhub/database/repository/user"
	"mentorhub/models"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// CalendarData is the response of a calendar range query: the in-range
// events plus a stats summary over the caller's full history.
type CalendarData struct {
	Events []models.CalendarEvent `json:"events"`
	Stats  models.SessionStats    `json:"stats"`
}

// CalendarService serves calendar reads and bulk session mutations. Caller
// identity and role are always explicit arguments.
type CalendarService interface {
	GetCalendarData(ctx context.Context, userID, role string, start, end time.Time) (*CalendarData, error)
	BulkStatusUpdate(ctx context.Context, userID, role string, sessionIDs []string, newStatus string) (*models.BulkWriteResult, error)
	BulkReschedule(ctx context.Context, userID, role string, sessionIDs []string, newDateTime time.Time) ([]models.ItemResult, error)
	BulkDelete(ctx context.Context, userID, role string, sessionIDs []string) (int64, error)
}

// DefaultCalendarService is the production implementation.
type DefaultCalendarService struct {
	Sessions     sessionRepo.SessionRepository
	Users        userRepo.UserRepository
	Notifier     notificationSvc.NotificationService
	Cache        *redis.Client // optional stats cache
	ReminderQ    *asynq.Client // optional reminder queue, used on reschedule
	ReminderLead time.Duration // how long before start a reminder fires
}

// partyField maps a role onto the session document field that holds that
// party's user id.
func partyField(role string) (string, error) {
	switch role {
	case models.RoleMentor:
		return "mentorId", nil
	case models.RoleStudent:
		return "studentId", nil
	default:
		return "", ErrInvalidRole
	}
}

// counterpart returns the other party's user id for a session.
func counterpart(s models.Session, role string) string {
	if role == models.RoleMentor {
		return s.StudentID
	}
	return s.MentorID
}
