package calendar

import (
	"context"
	"errors"
	"sort"
	"time"

	sessionRepo "mentorhub/database/repository/session"
	"mentorhub/models"
)

// fakeSessionRepo keeps sessions in a map and mirrors the ownership filters
// the Mongo repository applies.
type fakeSessionRepo struct {
	sessions map[string]*models.Session

	updateScheduleErr map[string]error
}

func newFakeSessionRepo(sessions ...models.Session) *fakeSessionRepo {
	r := &fakeSessionRepo{
		sessions:          make(map[string]*models.Session),
		updateScheduleErr: make(map[string]error),
	}
	for i := range sessions {
		s := sessions[i]
		r.sessions[s.ID] = &s
	}
	return r
}

func (r *fakeSessionRepo) owns(s *models.Session, partyField, userID string) bool {
	if partyField == "mentorId" {
		return s.MentorID == userID
	}
	return s.StudentID == userID
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) GetByIDForParty(ctx context.Context, id, partyField, userID string) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok || !r.owns(s, partyField, userID) {
		return nil, errors.New("not found")
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Upsert(ctx context.Context, s *models.Session) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) FindInRange(ctx context.Context, partyField, userID string, start, end time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if r.owns(s, partyField, userID) && !s.ScheduledAt.Before(start) && !s.ScheduledAt.After(end) {
			out = append(out, *s)
		}
	}
	// The Mongo query sorts ascending by scheduledAt.
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (r *fakeSessionRepo) FindManyByIDForParty(ctx context.Context, ids []string, partyField, userID string) ([]models.Session, error) {
	var out []models.Session
	for _, id := range ids {
		if s, ok := r.sessions[id]; ok && r.owns(s, partyField, userID) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) StatsForParty(ctx context.Context, partyField, userID string, now time.Time) (*sessionRepo.PartyStats, error) {
	stats := &sessionRepo.PartyStats{}
	for _, s := range r.sessions {
		if !r.owns(s, partyField, userID) {
			continue
		}
		stats.Total++
		switch s.Status {
		case models.SessionStatusCompleted:
			stats.Completed++
			stats.Earnings += s.Amount()
		case models.SessionStatusCancelled:
			stats.Cancelled++
		case models.SessionStatusInProgress:
			stats.InProgress++
		case models.SessionStatusScheduled:
			if s.ScheduledAt.After(now) {
				stats.Upcoming++
			}
		}
	}
	return stats, nil
}

func (r *fakeSessionRepo) UpdateStatusMany(ctx context.Context, ids []string, partyField, userID, newStatus string) (*models.BulkWriteResult, error) {
	res := &models.BulkWriteResult{}
	for _, id := range ids {
		s, ok := r.sessions[id]
		if !ok || !r.owns(s, partyField, userID) {
			continue
		}
		res.Matched++
		if s.Status != newStatus {
			s.Status = newStatus
			res.Modified++
		}
	}
	return res, nil
}

func (r *fakeSessionRepo) UpdateSchedule(ctx context.Context, id string, newDateTime time.Time) error {
	if err := r.updateScheduleErr[id]; err != nil {
		return err
	}
	s, ok := r.sessions[id]
	if !ok {
		return errors.New("not found")
	}
	s.ScheduledAt = newDateTime
	return nil
}

func (r *fakeSessionRepo) DeleteScheduledMany(ctx context.Context, ids []string, mentorID string) (int64, []models.Session, error) {
	var doomed []models.Session
	for _, id := range ids {
		s, ok := r.sessions[id]
		if !ok || s.MentorID != mentorID || s.Status != models.SessionStatusScheduled {
			continue
		}
		doomed = append(doomed, *s)
	}
	for _, s := range doomed {
		delete(r.sessions, s.ID)
	}
	return int64(len(doomed)), doomed, nil
}

func (r *fakeSessionRepo) FindUpcomingScheduled(ctx context.Context, mentorID string, now time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if s.MentorID == mentorID && s.Status == models.SessionStatusScheduled && s.ScheduledAt.After(now) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) FindByMentorBetween(ctx context.Context, mentorID string, start, end time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if s.MentorID == mentorID && !s.ScheduledAt.Before(start) && s.ScheduledAt.Before(end) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) PeriodStatsForMentor(ctx context.Context, mentorID string, start, end time.Time) (*sessionRepo.PeriodStats, error) {
	stats := &sessionRepo.PeriodStats{}
	students := make(map[string]bool)
	for _, s := range r.sessions {
		if s.MentorID != mentorID || s.ScheduledAt.Before(start) || !s.ScheduledAt.Before(end) {
			continue
		}
		if s.Status != models.SessionStatusCancelled {
			stats.Sessions++
		}
		if s.Status == models.SessionStatusCompleted {
			stats.Completed++
			stats.Earnings += s.Amount()
			students[s.StudentID] = true
		}
	}
	stats.Students = len(students)
	return stats, nil
}

func (r *fakeSessionRepo) MonthlySeriesForMentor(ctx context.Context, mentorID string, from time.Time) ([]sessionRepo.MonthBucket, error) {
	byMonth := make(map[[2]int]*sessionRepo.MonthBucket)
	for _, s := range r.sessions {
		if s.MentorID != mentorID || s.ScheduledAt.Before(from) || s.Status == models.SessionStatusCancelled {
			continue
		}
		key := [2]int{s.ScheduledAt.Year(), int(s.ScheduledAt.Month())}
		b, ok := byMonth[key]
		if !ok {
			b = &sessionRepo.MonthBucket{Year: key[0], Month: key[1]}
			byMonth[key] = b
		}
		b.Sessions++
		if s.Status == models.SessionStatusCompleted {
			b.Completed++
			b.Earnings += s.Amount()
		}
	}
	var out []sessionRepo.MonthBucket
	for _, b := range byMonth {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeSessionRepo) SubjectBreakdownForMentor(ctx context.Context, mentorID string, start, end time.Time) ([]sessionRepo.GroupBucket, error) {
	return r.breakdown(mentorID, start, end, func(s *models.Session) sessionRepo.GroupBucket {
		return sessionRepo.GroupBucket{Key: s.Subject}
	})
}

func (r *fakeSessionRepo) HourBreakdownForMentor(ctx context.Context, mentorID string, start, end time.Time) ([]sessionRepo.GroupBucket, error) {
	return r.breakdown(mentorID, start, end, func(s *models.Session) sessionRepo.GroupBucket {
		return sessionRepo.GroupBucket{Hour: s.ScheduledAt.Hour()}
	})
}

func (r *fakeSessionRepo) breakdown(mentorID string, start, end time.Time, keyOf func(*models.Session) sessionRepo.GroupBucket) ([]sessionRepo.GroupBucket, error) {
	buckets := make(map[sessionRepo.GroupBucket]*sessionRepo.GroupBucket)
	for _, s := range r.sessions {
		if s.MentorID != mentorID || s.ScheduledAt.Before(start) || !s.ScheduledAt.Before(end) || s.Status == models.SessionStatusCancelled {
			continue
		}
		key := keyOf(s)
		b, ok := buckets[key]
		if !ok {
			cp := key
			b = &cp
			buckets[key] = b
		}
		b.Sessions++
		if s.Status == models.SessionStatusCompleted {
			b.Completed++
			b.Earnings += s.Amount()
		}
	}
	var out []sessionRepo.GroupBucket
	for _, b := range buckets {
		out = append(out, *b)
	}
	return out, nil
}

// fakeUserRepo serves user joins from a fixed map.
type fakeUserRepo struct {
	users map[string]models.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &u, nil
}

func (r *fakeUserRepo) GetManyByID(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

// sentNotification records one NotifySessionChange call.
type sentNotification struct {
	UserID   string
	Title    string
	Priority string
}

// fakeNotifier records notification writes instead of persisting them.
type fakeNotifier struct {
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) NotifySessionChange(ctx context.Context, userID, title, message, priority, actionURL string, metadata map[string]any) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{UserID: userID, Title: title, Priority: priority})
	return nil
}

func (n *fakeNotifier) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	return nil, nil
}

func (n *fakeNotifier) MarkRead(ctx context.Context, id, userID string) error {
	return nil
}
