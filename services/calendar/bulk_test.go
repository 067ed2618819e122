package calendar

import (
	"context"
	"testing"
	"time"

	"mentorhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledSession(id, mentorID, studentID string, at time.Time) models.Session {
	return models.Session{
		ID:          id,
		MentorID:    mentorID,
		StudentID:   studentID,
		ScheduledAt: at,
		Duration:    60,
		Subject:     "Algebra",
		Type:        models.SessionTypeVideo,
		Status:      models.SessionStatusScheduled,
	}
}

func TestBulkStatusUpdateSkipsNonOwnedIDs(t *testing.T) {
	at := time.Now().Add(24 * time.Hour)
	repo := newFakeSessionRepo(
		scheduledSession("s1", "mentor-1", "student-1", at),
		scheduledSession("s2", "mentor-2", "student-2", at),
	)
	notifier := &fakeNotifier{}
	svc := &DefaultCalendarService{Sessions: repo, Notifier: notifier}

	res, err := svc.BulkStatusUpdate(context.Background(), "mentor-1", models.RoleMentor,
		[]string{"s1", "s2", "missing"}, models.SessionStatusCompleted)
	require.NoError(t, err)

	// Only the owned session matches; the rest fall out silently.
	assert.Equal(t, int64(1), res.Matched)
	assert.Equal(t, int64(1), res.Modified)
	assert.Equal(t, models.SessionStatusCompleted, repo.sessions["s1"].Status)
	assert.Equal(t, models.SessionStatusScheduled, repo.sessions["s2"].Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "student-1", notifier.sent[0].UserID)
	assert.Equal(t, models.NotificationPriorityNormal, notifier.sent[0].Priority)
}

func TestBulkStatusUpdateValidation(t *testing.T) {
	svc := &DefaultCalendarService{Sessions: newFakeSessionRepo(), Notifier: &fakeNotifier{}}
	ctx := context.Background()

	_, err := svc.BulkStatusUpdate(ctx, "u1", "admin", []string{"s1"}, models.SessionStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.BulkStatusUpdate(ctx, "u1", models.RoleMentor, nil, models.SessionStatusCompleted)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.BulkStatusUpdate(ctx, "u1", models.RoleMentor, []string{"s1"}, "archived")
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "newStatus", verr.Field)
}

func TestBulkStatusUpdateSurvivesNotificationFailure(t *testing.T) {
	at := time.Now().Add(24 * time.Hour)
	repo := newFakeSessionRepo(scheduledSession("s1", "mentor-1", "student-1", at))
	svc := &DefaultCalendarService{Sessions: repo, Notifier: &fakeNotifier{err: assert.AnError}}

	res, err := svc.BulkStatusUpdate(context.Background(), "mentor-1", models.RoleMentor,
		[]string{"s1"}, models.SessionStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Matched)
	assert.Equal(t, models.SessionStatusCancelled, repo.sessions["s1"].Status)
}

func TestBulkRescheduleReportsPerID(t *testing.T) {
	at := time.Now().Add(24 * time.Hour)
	newTime := at.Add(48 * time.Hour)
	repo := newFakeSessionRepo(
		scheduledSession("s1", "mentor-1", "student-1", at),
		scheduledSession("s2", "mentor-2", "student-2", at),
	)
	notifier := &fakeNotifier{}
	svc := &DefaultCalendarService{Sessions: repo, Notifier: notifier}

	results, err := svc.BulkReschedule(context.Background(), "mentor-1", models.RoleMentor,
		[]string{"s1", "s2"}, newTime)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "s1", results[0].SessionID)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].Error)

	// Unlike status updates, non-owned ids get an explicit error entry.
	assert.Equal(t, "s2", results[1].SessionID)
	assert.False(t, results[1].Success)
	assert.Equal(t, "session not found", results[1].Error)

	assert.True(t, repo.sessions["s1"].ScheduledAt.Equal(newTime))
	assert.True(t, repo.sessions["s2"].ScheduledAt.Equal(at))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "student-1", notifier.sent[0].UserID)
	assert.Equal(t, models.NotificationPriorityHigh, notifier.sent[0].Priority)
}

func TestBulkRescheduleContinuesAfterWriteFailure(t *testing.T) {
	at := time.Now().Add(24 * time.Hour)
	repo := newFakeSessionRepo(
		scheduledSession("s1", "mentor-1", "student-1", at),
		scheduledSession("s2", "mentor-1", "student-2", at),
	)
	repo.updateScheduleErr["s1"] = assert.AnError
	svc := &DefaultCalendarService{Sessions: repo, Notifier: &fakeNotifier{}}

	results, err := svc.BulkReschedule(context.Background(), "mentor-1", models.RoleMentor,
		[]string{"s1", "s2"}, at.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[0].Success)
	assert.True(t, results[1].Success)
}

func TestBulkRescheduleRequiresNewTime(t *testing.T) {
	svc := &DefaultCalendarService{Sessions: newFakeSessionRepo(), Notifier: &fakeNotifier{}}

	_, err := svc.BulkReschedule(context.Background(), "mentor-1", models.RoleMentor,
		[]string{"s1"}, time.Time{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rescheduleData", verr.Field)
}

func TestBulkDeleteMentorOnly(t *testing.T) {
	svc := &DefaultCalendarService{Sessions: newFakeSessionRepo(), Notifier: &fakeNotifier{}}

	_, err := svc.BulkDelete(context.Background(), "student-1", models.RoleStudent, []string{"s1"})
	assert.ErrorIs(t, err, ErrMentorOnly)
}

func TestBulkDeleteOnlyRemovesScheduled(t *testing.T) {
	at := time.Now().Add(24 * time.Hour)
	completed := scheduledSession("s2", "mentor-1", "student-2", at)
	completed.Status = models.SessionStatusCompleted
	repo := newFakeSessionRepo(
		scheduledSession("s1", "mentor-1", "student-1", at),
		completed,
		scheduledSession("s3", "mentor-2", "student-3", at),
	)
	notifier := &fakeNotifier{}
	svc := &DefaultCalendarService{Sessions: repo, Notifier: notifier}

	deleted, err := svc.BulkDelete(context.Background(), "mentor-1", models.RoleMentor,
		[]string{"s1", "s2", "s3"})
	require.NoError(t, err)

	// Completed and non-owned sessions stay; no error surfaces for them.
	assert.Equal(t, int64(1), deleted)
	assert.NotContains(t, repo.sessions, "s1")
	assert.Contains(t, repo.sessions, "s2")
	assert.Contains(t, repo.sessions, "s3")

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "student-1", notifier.sent[0].UserID)
	assert.Equal(t, "Session cancelled", notifier.sent[0].Title)
}
