package analytics

import (
	"context"
	"time"

	reviewRepo "mentorhub/database/repository/review"
	sessionRepo "mentorhub/database/repository/session"
)

// Analytics periods.
const (
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
)

// PeriodMetrics is one period's worth of dashboard measures.
type PeriodMetrics struct {
	CompletedSessions int     `json:"completedSessions"`
	Students          int     `json:"students"`
	TotalEarnings     float64 `json:"totalEarnings"`
	AvgEarnings       float64 `json:"avgEarnings"`
	CompletionRate    float64 `json:"completionRate"` // percent of non-cancelled sessions completed
	AvgRating         float64 `json:"avgRating"`
}

// GrowthMetrics is the period-over-period percent change of each measure.
type GrowthMetrics struct {
	CompletedSessions float64 `json:"completedSessions"`
	Students          float64 `json:"students"`
	TotalEarnings     float64 `json:"totalEarnings"`
	CompletionRate    float64 `json:"completionRate"`
	AvgRating         float64 `json:"avgRating"`
}

// MonthPoint is one point of the trailing 12-month series.
type MonthPoint struct {
	Month     string  `json:"month"` // "2024-01"
	Sessions  int     `json:"sessions"`
	Completed int     `json:"completed"`
	Earnings  float64 `json:"earnings"`
}

// SubjectShare is one row of the top-subject breakdown.
type SubjectShare struct {
	Subject  string  `json:"subject"`
	Sessions int     `json:"sessions"`
	Share    float64 `json:"share"` // percent of the period's sessions
	Earnings float64 `json:"earnings"`
}

// HourSlot is one row of the top time-of-day breakdown.
type HourSlot struct {
	Hour           int     `json:"hour"`
	Sessions       int     `json:"sessions"`
	CompletionRate float64 `json:"completionRate"`
}

// DashboardStats is the full dashboard aggregation response.
type DashboardStats struct {
	Period      string         `json:"period"`
	Current     PeriodMetrics  `json:"current"`
	Previous    PeriodMetrics  `json:"previous"`
	Growth      GrowthMetrics  `json:"growth"`
	Monthly     []MonthPoint   `json:"monthly"`
	TopSubjects []SubjectShare `json:"topSubjects"`
	TopHours    []HourSlot     `json:"topHours"`
}

// AnalyticsService derives period-over-period dashboard statistics and the
// flat session export. Read-only.
type AnalyticsService interface {
	DashboardStats(ctx context.Context, mentorID, period string) (*DashboardStats, error)
	Export(ctx context.Context, mentorID, period, format string) ([]byte, string, error)
}

// DefaultAnalyticsService is the production implementation.
type DefaultAnalyticsService struct {
	Sessions sessionRepo.SessionRepository
	Reviews  reviewRepo.ReviewRepository
	Now      func() time.Time // overridable for tests; nil means time.Now
}

func (s *DefaultAnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
