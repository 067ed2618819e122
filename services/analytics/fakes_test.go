package analytics

import (
	"context"
	"errors"
	"time"

	sessionRepo "mentorhub/database/repository/session"
	"mentorhub/models"
)

// fakeSessionStore replays aggregates over an in-memory session list with the
// same filters the Mongo pipelines apply.
type fakeSessionStore struct {
	sessions []models.Session
}

func (r *fakeSessionStore) inWindow(s models.Session, mentorID string, start, end time.Time) bool {
	return s.MentorID == mentorID && !s.ScheduledAt.Before(start) && s.ScheduledAt.Before(end)
}

func (r *fakeSessionStore) Upsert(ctx context.Context, s *models.Session) error { return nil }
func (r *fakeSessionStore) GetByID(ctx context.Context, id string) (*models.Session, error) {
	return nil, errors.New("not found")
}
func (r *fakeSessionStore) GetByIDForParty(ctx context.Context, id, partyField, userID string) (*models.Session, error) {
	return nil, errors.New("not found")
}
func (r *fakeSessionStore) FindInRange(ctx context.Context, partyField, userID string, start, end time.Time) ([]models.Session, error) {
	return nil, nil
}
func (r *fakeSessionStore) FindManyByIDForParty(ctx context.Context, ids []string, partyField, userID string) ([]models.Session, error) {
	return nil, nil
}
func (r *fakeSessionStore) StatsForParty(ctx context.Context, partyField, userID string, now time.Time) (*sessionRepo.PartyStats, error) {
	return &sessionRepo.PartyStats{}, nil
}
func (r *fakeSessionStore) UpdateStatusMany(ctx context.Context, ids []string, partyField, userID, newStatus string) (*models.BulkWriteResult, error) {
	return &models.BulkWriteResult{}, nil
}
func (r *fakeSessionStore) UpdateSchedule(ctx context.Context, id string, newDateTime time.Time) error {
	return nil
}
func (r *fakeSessionStore) DeleteScheduledMany(ctx context.Context, ids []string, mentorID string) (int64, []models.Session, error) {
	return 0, nil, nil
}
func (r *fakeSessionStore) FindUpcomingScheduled(ctx context.Context, mentorID string, now time.Time) ([]models.Session, error) {
	return nil, nil
}

func (r *fakeSessionStore) FindByMentorBetween(ctx context.Context, mentorID string, start, end time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if r.inWindow(s, mentorID, start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionStore) PeriodStatsForMentor(ctx context.Context, mentorID string, start, end time.Time) (*sessionRepo.PeriodStats, error) {
	stats := &sessionRepo.PeriodStats{}
	students := make(map[string]bool)
	for _, s := range r.sessions {
		if !r.inWindow(s, mentorID, start, end) {
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

func (r *fakeSessionStore) MonthlySeriesForMentor(ctx context.Context, mentorID string, from time.Time) ([]sessionRepo.MonthBucket, error) {
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

func (r *fakeSessionStore) SubjectBreakdownForMentor(ctx context.Context, mentorID string, start, end time.Time) ([]sessionRepo.GroupBucket, error) {
	bySubject := make(map[string]*sessionRepo.GroupBucket)
	var order []string
	for _, s := range r.sessions {
		if !r.inWindow(s, mentorID, start, end) || s.Status == models.SessionStatusCancelled {
			continue
		}
		b, ok := bySubject[s.Subject]
		if !ok {
			b = &sessionRepo.GroupBucket{Key: s.Subject}
			bySubject[s.Subject] = b
			order = append(order, s.Subject)
		}
		b.Sessions++
		if s.Status == models.SessionStatusCompleted {
			b.Completed++
			b.Earnings += s.Amount()
		}
	}
	out := make([]sessionRepo.GroupBucket, 0, len(order))
	for _, key := range order {
		out = append(out, *bySubject[key])
	}
	return out, nil
}

func (r *fakeSessionStore) HourBreakdownForMentor(ctx context.Context, mentorID string, start, end time.Time) ([]sessionRepo.GroupBucket, error) {
	byHour := make(map[int]*sessionRepo.GroupBucket)
	var order []int
	for _, s := range r.sessions {
		if !r.inWindow(s, mentorID, start, end) || s.Status == models.SessionStatusCancelled {
			continue
		}
		hour := s.ScheduledAt.Hour()
		b, ok := byHour[hour]
		if !ok {
			b = &sessionRepo.GroupBucket{Hour: hour}
			byHour[hour] = b
			order = append(order, hour)
		}
		b.Sessions++
		if s.Status == models.SessionStatusCompleted {
			b.Completed++
			b.Earnings += s.Amount()
		}
	}
	out := make([]sessionRepo.GroupBucket, 0, len(order))
	for _, hour := range order {
		out = append(out, *byHour[hour])
	}
	return out, nil
}

// fakeReviewStore serves a fixed average rating.
type fakeReviewStore struct {
	rating float64
	count  int
}

func (r *fakeReviewStore) AverageRatingForMentor(ctx context.Context, mentorID string, start, end time.Time) (float64, int, error) {
	return r.rating, r.count, nil
}
