package analytics

import (
	"context"
	"fmt"
	"time"
)

// Growth computes the period-over-period percent change. A measure growing
// from zero reports 100; a measure flat at zero reports 0. This avoids the
// division by zero without special-casing at every call site.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// periodWindow returns the calendar-aligned [start, end) window containing
// ref for the named period. Weeks start on Sunday.
func periodWindow(period string, ref time.Time) (time.Time, time.Time, error) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	switch period {
	case PeriodWeek:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(0, 1, 0), nil
	case PeriodQuarter:
		q := (int(ref.Month()) - 1) / 3
		start := time.Date(ref.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(0, 3, 0), nil
	case PeriodYear:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

// DashboardStats aggregates the mentor's current and immediately preceding
// period, the trailing 12-month series, and the top subject and hour
// breakdowns.
func (s *DefaultAnalyticsService) DashboardStats(ctx context.Context, mentorID, period string) (*DashboardStats, error) {
	now := s.now()
	curStart, curEnd, err := periodWindow(period, now)
	if err != nil {
		return nil, err
	}
	// The previous window is the period immediately before the current one.
	span := curEnd.Sub(curStart)
	prevStart, prevEnd := curStart.Add(-span), curStart

	current, err := s.metricsFor(ctx, mentorID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	previous, err := s.metricsFor(ctx, mentorID, prevStart, prevEnd)
	if err != nil {
		return nil, err
	}

	monthly, err := s.monthlySeries(ctx, mentorID, now)
	if err != nil {
		return nil, err
	}

	topSubjects, err := s.topSubjects(ctx, mentorID, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	topHours, err := s.topHours(ctx, mentorID, curStart, curEnd)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Period:   period,
		Current:  *current,
		Previous: *previous,
		Growth: GrowthMetrics{
			CompletedSessions: Growth(float64(current.CompletedSessions), float64(previous.CompletedSessions)),
			Students:          Growth(float64(current.Students), float64(previous.Students)),
			TotalEarnings:     Growth(current.TotalEarnings, previous.TotalEarnings),
			CompletionRate:    Growth(current.CompletionRate, previous.CompletionRate),
			AvgRating:         Growth(current.AvgRating, previous.AvgRating),
		},
		Monthly:     monthly,
		TopSubjects: topSubjects,
		TopHours:    topHours,
	}, nil
}

func (s *DefaultAnalyticsService) metricsFor(ctx context.Context, mentorID string, start, end time.Time) (*PeriodMetrics, error) {
	agg, err := s.Sessions.PeriodStatsForMentor(ctx, mentorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("period aggregation failed: %w", err)
	}
	rating, _, err := s.Reviews.AverageRatingForMentor(ctx, mentorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("rating aggregation failed: %w", err)
	}

	m := &PeriodMetrics{
		CompletedSessions: agg.Completed,
		Students:          agg.Students,
		TotalEarnings:     agg.Earnings,
		AvgRating:         rating,
	}
	if agg.Completed > 0 {
		m.AvgEarnings = agg.Earnings / float64(agg.Completed)
	}
	if agg.Sessions > 0 {
		m.CompletionRate = float64(agg.Completed) / float64(agg.Sessions) * 100
	}
	return m, nil
}

// monthlySeries returns exactly 12 points ending at the month containing
// now, zero-filling months the store has no bucket for.
func (s *DefaultAnalyticsService) monthlySeries(ctx context.Context, mentorID string, now time.Time) ([]MonthPoint, error) {
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	from := thisMonth.AddDate(0, -11, 0)

	buckets, err := s.Sessions.MonthlySeriesForMentor(ctx, mentorID, from)
	if err != nil {
		return nil, fmt.Errorf("monthly series aggregation failed: %w", err)
	}

	byMonth := make(map[string]MonthPoint, len(buckets))
	for _, b := range buckets {
		key := fmt.Sprintf("%04d-%02d", b.Year, b.Month)
		byMonth[key] = MonthPoint{
			Month:     key,
			Sessions:  b.Sessions,
			Completed: b.Completed,
			Earnings:  b.Earnings,
		}
	}

	points := make([]MonthPoint, 0, 12)
	for i := 0; i < 12; i++ {
		m := from.AddDate(0, i, 0)
		key := m.Format("2006-01")
		if p, ok := byMonth[key]; ok {
			points = append(points, p)
		} else {
			points = append(points, MonthPoint{Month: key})
		}
	}
	return points, nil
}

// topSubjects returns the period's top five subjects by session count with
// each subject's share of the period total. No "other" bucket; the remainder
// is simply dropped.
func (s *DefaultAnalyticsService) topSubjects(ctx context.Context, mentorID string, start, end time.Time) ([]SubjectShare, error) {
	buckets, err := s.Sessions.SubjectBreakdownForMentor(ctx, mentorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("subject breakdown failed: %w", err)
	}
	agg, err := s.Sessions.PeriodStatsForMentor(ctx, mentorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("period aggregation failed: %w", err)
	}

	shares := make([]SubjectShare, 0, len(buckets))
	for _, b := range buckets {
		share := 0.0
		if agg.Sessions > 0 {
			share = float64(b.Sessions) / float64(agg.Sessions) * 100
		}
		shares = append(shares, SubjectShare{
			Subject:  b.Key,
			Sessions: b.Sessions,
			Share:    share,
			Earnings: b.Earnings,
		})
	}
	return shares, nil
}

func (s *DefaultAnalyticsService) topHours(ctx context.Context, mentorID string, start, end time.Time) ([]HourSlot, error) {
	buckets, err := s.Sessions.HourBreakdownForMentor(ctx, mentorID, start, end)
	if err != nil {
		return nil, fmt.Errorf("hour breakdown failed: %w", err)
	}

	slots := make([]HourSlot, 0, len(buckets))
	for _, b := range buckets {
		rate := 0.0
		if b.Sessions > 0 {
			rate = float64(b.Completed) / float64(b.Sessions) * 100
		}
		slots = append(slots, HourSlot{
			Hour:           b.Hour,
			Sessions:       b.Sessions,
			CompletionRate: rate,
		})
	}
	return slots, nil
}
