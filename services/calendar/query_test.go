package calendar

import (
	"context"
	"testing"
	"time"

	"mentorhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCalendarDataJoinsParties(t *testing.T) {
	at := baseDay.Add(10 * time.Hour)
	sess := scheduledSession("s1", "mentor-1", "student-1", at)
	sess.Payment = models.PaymentInfo{Amount: 90, Currency: "USD", Status: models.PaymentStatusPaid}

	repo := newFakeSessionRepo(sess)
	users := &fakeUserRepo{users: map[string]models.User{
		"mentor-1":  {ID: "mentor-1", Name: "Ada", Email: "ada@example.com"},
		"student-1": {ID: "student-1", Name: "Ben", Email: "ben@example.com"},
	}}
	svc := &DefaultCalendarService{Sessions: repo, Users: users, Notifier: &fakeNotifier{}}

	data, err := svc.GetCalendarData(context.Background(), "mentor-1", models.RoleMentor,
		baseDay, baseDay.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, data.Events, 1)

	ev := data.Events[0]
	assert.Equal(t, "s1", ev.ID)
	assert.Equal(t, "Algebra", ev.Title)
	assert.True(t, ev.Start.Equal(at))
	assert.True(t, ev.End.Equal(at.Add(60*time.Minute)))
	assert.Equal(t, "Ada", ev.ExtendedProps.Mentor.Name)
	assert.Equal(t, "Ben", ev.ExtendedProps.Student.Name)
}

func TestGetCalendarDataOrdersEventsByStart(t *testing.T) {
	repo := newFakeSessionRepo(
		scheduledSession("s-late", "mentor-1", "student-1", baseDay.Add(16*time.Hour)),
		scheduledSession("s-early", "mentor-1", "student-2", baseDay.Add(9*time.Hour)),
		scheduledSession("s-mid", "mentor-1", "student-1", baseDay.AddDate(0, 0, 1).Add(11*time.Hour)),
	)
	svc := &DefaultCalendarService{
		Sessions: repo,
		Users:    &fakeUserRepo{users: map[string]models.User{}},
		Notifier: &fakeNotifier{},
	}

	data, err := svc.GetCalendarData(context.Background(), "mentor-1", models.RoleMentor,
		baseDay, baseDay.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, data.Events, 3)

	assert.Equal(t, "s-early", data.Events[0].ID)
	assert.Equal(t, "s-late", data.Events[1].ID)
	assert.Equal(t, "s-mid", data.Events[2].ID)
	for i := 1; i < len(data.Events); i++ {
		assert.False(t, data.Events[i].Start.Before(data.Events[i-1].Start))
	}
}

func TestGetCalendarDataEmptyRangeStillReportsStats(t *testing.T) {
	completed := scheduledSession("s1", "mentor-1", "student-1", baseDay.Add(10*time.Hour))
	completed.Status = models.SessionStatusCompleted
	completed.Payment.Amount = 120

	repo := newFakeSessionRepo(completed)
	svc := &DefaultCalendarService{
		Sessions: repo,
		Users:    &fakeUserRepo{users: map[string]models.User{}},
		Notifier: &fakeNotifier{},
	}

	// A window with no sessions in it.
	start := baseDay.AddDate(0, 2, 0)
	data, err := svc.GetCalendarData(context.Background(), "mentor-1", models.RoleMentor,
		start, start.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Empty(t, data.Events)
	assert.Equal(t, 1, data.Stats.Total)
	assert.Equal(t, 1, data.Stats.Completed)
	assert.Equal(t, 120.0, data.Stats.Earnings)
}

func TestGetCalendarDataKeepsUnknownPartyID(t *testing.T) {
	at := baseDay.Add(10 * time.Hour)
	repo := newFakeSessionRepo(scheduledSession("s1", "mentor-1", "ghost", at))
	users := &fakeUserRepo{users: map[string]models.User{
		"mentor-1": {ID: "mentor-1", Name: "Ada"},
	}}
	svc := &DefaultCalendarService{Sessions: repo, Users: users, Notifier: &fakeNotifier{}}

	data, err := svc.GetCalendarData(context.Background(), "mentor-1", models.RoleMentor,
		baseDay, baseDay.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, data.Events, 1)

	student := data.Events[0].ExtendedProps.Student
	assert.Equal(t, "ghost", student.ID)
	assert.Empty(t, student.Name)
}

func TestGetCalendarDataStatsCoverFullHistory(t *testing.T) {
	now := time.Now()
	inRange := scheduledSession("s1", "mentor-1", "student-1", now.Add(24*time.Hour))
	// Completed long before the queried window; still counted in stats.
	old := scheduledSession("s2", "mentor-1", "student-2", now.AddDate(-1, 0, 0))
	old.Status = models.SessionStatusCompleted
	old.Payment.Amount = 90

	repo := newFakeSessionRepo(inRange, old)
	svc := &DefaultCalendarService{
		Sessions: repo,
		Users:    &fakeUserRepo{users: map[string]models.User{}},
		Notifier: &fakeNotifier{},
	}

	data, err := svc.GetCalendarData(context.Background(), "mentor-1", models.RoleMentor,
		now, now.AddDate(0, 0, 7))
	require.NoError(t, err)

	assert.Len(t, data.Events, 1)
	assert.Equal(t, 2, data.Stats.Total)
	assert.Equal(t, 1, data.Stats.Completed)
	assert.Equal(t, 1, data.Stats.Upcoming)
	assert.Equal(t, 90.0, data.Stats.Earnings)
}

func TestGetCalendarDataRejectsUnknownRole(t *testing.T) {
	svc := &DefaultCalendarService{
		Sessions: newFakeSessionRepo(),
		Users:    &fakeUserRepo{users: map[string]models.User{}},
		Notifier: &fakeNotifier{},
	}

	_, err := svc.GetCalendarData(context.Background(), "u1", "admin", baseDay, baseDay.AddDate(0, 0, 7))
	assert.ErrorIs(t, err, ErrInvalidRole)
}
