package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mentorhub/models"
	"mentorhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GetCalendarData returns the caller's sessions in [start, end] shaped as
// calendar events, plus the stats summary over their full history. Events
// come back ascending by start time; an empty range still yields stats.
func (s *DefaultCalendarService) GetCalendarData(ctx context.Context, userID, role string, start, end time.Time) (*CalendarData, error) {
	field, err := partyField(role)
	if err != nil {
		return nil, err
	}

	sessions, err := s.Sessions.FindInRange(ctx, field, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("calendar query failed: %w", err)
	}

	events, err := s.buildEvents(ctx, sessions)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsWithCache(ctx, field, userID, role)
	if err != nil {
		return nil, err
	}

	return &CalendarData{Events: events, Stats: *stats}, nil
}

// buildEvents projects sessions into display events, joining both parties'
// display fields in a single user lookup.
func (s *DefaultCalendarService) buildEvents(ctx context.Context, sessions []models.Session) ([]models.CalendarEvent, error) {
	ids := make([]string, 0, len(sessions)*2)
	seen := make(map[string]bool, len(sessions)*2)
	for _, sess := range sessions {
		for _, id := range []string{sess.MentorID, sess.StudentID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	var users map[string]models.User
	if len(ids) > 0 {
		var err error
		users, err = s.Users.GetManyByID(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to join session parties: %w", err)
		}
	}

	events := make([]models.CalendarEvent, 0, len(sessions))
	for _, sess := range sessions {
		events = append(events, models.CalendarEvent{
			ID:    sess.ID,
			Title: sess.Subject,
			Start: sess.ScheduledAt,
			End:   sess.End(),
			ExtendedProps: models.EventProps{
				SessionID: sess.ID,
				Status:    sess.Status,
				Type:      sess.Type,
				Subject:   sess.Subject,
				Mentor:    toParty(sess.MentorID, users),
				Student:   toParty(sess.StudentID, users),
			},
		})
	}
	return events, nil
}

func toParty(id string, users map[string]models.User) models.EventParty {
	u, ok := users[id]
	if !ok {
		// Party record missing from the users collection; keep the id so the
		// event can still round-trip into mutations.
		return models.EventParty{ID: id}
	}
	return models.EventParty{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

// statsWithCache serves the full-history summary from Redis when possible.
func (s *DefaultCalendarService) statsWithCache(ctx context.Context, field, userID, role string) (*models.SessionStats, error) {
	key := utils.StatsCachePrefix + role + ":" + userID

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var stats models.SessionStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	agg, err := s.Sessions.StatsForParty(ctx, field, userID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("stats aggregation failed: %w", err)
	}
	stats := &models.SessionStats{
		Total:      agg.Total,
		Completed:  agg.Completed,
		Upcoming:   agg.Upcoming,
		Cancelled:  agg.Cancelled,
		InProgress: agg.InProgress,
		Earnings:   agg.Earnings,
	}

	if s.Cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.Cache.Set(ctx, key, data, utils.StatsCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache calendar stats", zap.String("userID", userID), zap.Error(err))
			}
		}
	}
	return stats, nil
}

// InvalidateStats drops both cached role views for the given users. Shared
// with the webhook ingest path, which mutates sessions outside this service.
func InvalidateStats(ctx context.Context, cache *redis.Client, userIDs ...string) {
	if cache == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(userIDs)*2)
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		keys = append(keys,
			utils.StatsCachePrefix+models.RoleMentor+":"+id,
			utils.StatsCachePrefix+models.RoleStudent+":"+id,
		)
	}
	if len(keys) == 0 {
		return
	}
	if err := cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

func (s *DefaultCalendarService) invalidateStats(ctx context.Context, userIDs ...string) {
	InvalidateStats(ctx, s.Cache, userIDs...)
}
