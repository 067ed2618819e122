package calendar

import (
	"context"
	"fmt"
	"time"

	"mentorhub/models"
	"mentorhub/services/tasks"
	"mentorhub/utils"

	"go.uber.org/zap"
)

var validStatuses = map[string]bool{
	models.SessionStatusScheduled:  true,
	models.SessionStatusInProgress: true,
	models.SessionStatusCompleted:  true,
	models.SessionStatusCancelled:  true,
	models.SessionStatusNoShow:     true,
}

// BulkStatusUpdate overwrites the status of every session in the id set that
// the caller owns in their role, in one multi-document write. Non-owned and
// unknown ids simply fall out of the match set; they are not reported as
// errors. One notification goes to the counterpart of each matched session.
func (s *DefaultCalendarService) BulkStatusUpdate(ctx context.Context, userID, role string, sessionIDs []string, newStatus string) (*models.BulkWriteResult, error) {
	field, err := partyField(role)
	if err != nil {
		return nil, err
	}
	if len(sessionIDs) == 0 {
		return nil, NewValidationError("sessionIds", "must not be empty")
	}
	if !validStatuses[newStatus] {
		return nil, NewValidationError("newStatus", fmt.Sprintf("unknown status %q", newStatus))
	}

	// Load the matched set up front; the updateMany result alone cannot tell
	// us which counterparts to notify.
	matched, err := s.Sessions.FindManyByIDForParty(ctx, sessionIDs, field, userID)
	if err != nil {
		return nil, fmt.Errorf("bulk status update failed: %w", err)
	}

	res, err := s.Sessions.UpdateStatusMany(ctx, sessionIDs, field, userID, newStatus)
	if err != nil {
		return nil, fmt.Errorf("bulk status update failed: %w", err)
	}

	logger := utils.GetLogger()
	touched := []string{userID}
	for _, sess := range matched {
		other := counterpart(sess, role)
		touched = append(touched, other)
		err := s.Notifier.NotifySessionChange(ctx, other,
			"Session status updated",
			fmt.Sprintf("Your %s session was marked %s", sess.Subject, newStatus),
			models.NotificationPriorityNormal,
			"/calendar?session="+sess.ID,
			map[string]any{"sessionId": sess.ID, "newStatus": newStatus},
		)
		if err != nil {
			// The session write already happened; a failed notification is
			// logged, never rolled back.
			logger.Warn("bulk status update: notification write failed",
				zap.String("sessionID", sess.ID), zap.Error(err))
		}
	}

	s.invalidateStats(ctx, touched...)
	return res, nil
}

// BulkReschedule moves each session in the id set to newDateTime, loading and
// re-verifying ownership per id. Partial success is expected: each id gets
// its own success or error entry, and a failure never aborts the batch.
func (s *DefaultCalendarService) BulkReschedule(ctx context.Context, userID, role string, sessionIDs []string, newDateTime time.Time) ([]models.ItemResult, error) {
	field, err := partyField(role)
	if err != nil {
		return nil, err
	}
	if len(sessionIDs) == 0 {
		return nil, NewValidationError("sessionIds", "must not be empty")
	}
	if newDateTime.IsZero() {
		return nil, NewValidationError("rescheduleData", "newDateTime is required")
	}

	logger := utils.GetLogger()
	results := make([]models.ItemResult, 0, len(sessionIDs))
	touched := []string{userID}

	for _, id := range sessionIDs {
		sess, err := s.Sessions.GetByIDForParty(ctx, id, field, userID)
		if err != nil {
			results = append(results, models.ItemResult{
				SessionID: id,
				Success:   false,
				Error:     "session not found",
			})
			continue
		}

		oldTime := sess.ScheduledAt
		if err := s.Sessions.UpdateSchedule(ctx, id, newDateTime); err != nil {
			results = append(results, models.ItemResult{
				SessionID: id,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}

		other := counterpart(*sess, role)
		touched = append(touched, other)
		err = s.Notifier.NotifySessionChange(ctx, other,
			"Session rescheduled",
			fmt.Sprintf("Your %s session moved from %s to %s",
				sess.Subject,
				oldTime.Format(time.RFC3339),
				newDateTime.Format(time.RFC3339)),
			models.NotificationPriorityHigh,
			"/calendar?session="+sess.ID,
			map[string]any{"sessionId": sess.ID, "oldTime": oldTime, "newTime": newDateTime},
		)
		if err != nil {
			logger.Warn("bulk reschedule: notification write failed",
				zap.String("sessionID", sess.ID), zap.Error(err))
		}

		s.enqueueReminder(sess, other, newDateTime)
		results = append(results, models.ItemResult{SessionID: id, Success: true})
	}

	s.invalidateStats(ctx, touched...)
	return results, nil
}

// BulkDelete removes the caller's sessions from the id set that are still in
// "scheduled" status. Mentor-only; sessions in any other status are silently
// excluded from the delete rather than errored. Each actually deleted
// session sends a cancellation notification to its student.
func (s *DefaultCalendarService) BulkDelete(ctx context.Context, userID, role string, sessionIDs []string) (int64, error) {
	if role != models.RoleMentor {
		return 0, ErrMentorOnly
	}
	if len(sessionIDs) == 0 {
		return 0, NewValidationError("sessionIds", "must not be empty")
	}

	deleted, sessions, err := s.Sessions.DeleteScheduledMany(ctx, sessionIDs, userID)
	if err != nil {
		return 0, fmt.Errorf("bulk delete failed: %w", err)
	}

	logger := utils.GetLogger()
	touched := []string{userID}
	for _, sess := range sessions {
		touched = append(touched, sess.StudentID)
		err := s.Notifier.NotifySessionChange(ctx, sess.StudentID,
			"Session cancelled",
			fmt.Sprintf("Your %s session on %s was cancelled", sess.Subject, sess.ScheduledAt.Format("Jan 2, 15:04")),
			models.NotificationPriorityHigh,
			"/calendar",
			map[string]any{"sessionId": sess.ID},
		)
		if err != nil {
			logger.Warn("bulk delete: notification write failed",
				zap.String("sessionID", sess.ID), zap.Error(err))
		}
	}

	s.invalidateStats(ctx, touched...)
	return deleted, nil
}

// enqueueReminder schedules an upcoming-session reminder for the counterpart
// shortly before the new start time. Best effort; rescheduling works without
// the queue.
func (s *DefaultCalendarService) enqueueReminder(sess *models.Session, recipient string, startsAt time.Time) {
	if s.ReminderQ == nil {
		return
	}
	lead := s.ReminderLead
	if lead <= 0 {
		lead = 30 * time.Minute
	}
	fireAt := startsAt.Add(-lead)
	if fireAt.Before(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		SessionID:   sess.ID,
		UserID:      recipient,
		Title:       "Upcoming session",
		Message:     fmt.Sprintf("Your %s session starts %s", sess.Subject, RelativeTime(startsAt, fireAt)),
		ScheduledAt: startsAt,
	}
	task, opts, err := tasks.NewSessionReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Warn("failed to build reminder task", zap.String("sessionID", sess.ID), zap.Error(err))
		return
	}
	if _, err := s.ReminderQ.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Warn("failed to enqueue reminder task", zap.String("sessionID", sess.ID), zap.Error(err))
	}
}
