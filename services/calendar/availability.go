package calendar

import (
	"fmt"
	"time"

	"mentorhub/models"
)

// Pure time/conflict helpers, deliberately free of any store access so the
// same logic can validate server-side and drive instant client-side
// feedback. Note the conflict check runs over a caller-supplied snapshot,
// not a transactional read: two concurrent bookings for the same slot can
// both pass it. There is no uniqueness constraint backing this up.

// DefaultSlotInterval is the default spacing of generated time-of-day labels.
const DefaultSlotInterval = 30 * time.Minute

// Overlaps reports whether the half-open intervals [aStart, aStart+aDur)
// and [bStart, bStart+bDur) intersect. Durations are in minutes.
func Overlaps(aStart time.Time, aDuration int, bStart time.Time, bDuration int) bool {
	aEnd := aStart.Add(time.Duration(aDuration) * time.Minute)
	bEnd := bStart.Add(time.Duration(bDuration) * time.Minute)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// IsSlotFree reports whether a candidate slot clears every active session in
// the supplied list. The caller is responsible for pre-filtering the list to
// the relevant mentor; cancelled sessions never block a slot.
func IsSlotFree(candidate time.Time, durationMinutes int, existing []models.Session) bool {
	for _, s := range existing {
		if !s.Active() {
			continue
		}
		if Overlaps(candidate, durationMinutes, s.ScheduledAt, s.Duration) {
			return false
		}
	}
	return true
}

// ConflictsWith lists the active sessions a candidate slot would collide with.
func ConflictsWith(candidate time.Time, durationMinutes int, existing []models.Session) []models.Session {
	var conflicts []models.Session
	for _, s := range existing {
		if !s.Active() {
			continue
		}
		if Overlaps(candidate, durationMinutes, s.ScheduledAt, s.Duration) {
			conflicts = append(conflicts, s)
		}
	}
	return conflicts
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WeekDays returns the seven days of the calendar week containing t,
// starting on Sunday.
func WeekDays(t time.Time) []time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start := day.AddDate(0, 0, -int(day.Weekday()))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthGrid returns the 6x7 day grid for the month containing t, padded with
// leading and trailing days so every week is complete.
func MonthGrid(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	start := first.AddDate(0, 0, -int(first.Weekday()))
	grid := make([]time.Time, 42)
	for i := range grid {
		grid[i] = start.AddDate(0, 0, i)
	}
	return grid
}

// TimeSlotLabels generates evenly spaced "HH:MM" labels from start up to but
// not including end. Clock times use the "15:04" layout; a non-positive
// interval falls back to DefaultSlotInterval. Used to render pickable slots,
// not to enforce availability.
func TimeSlotLabels(start, end string, interval time.Duration) ([]string, error) {
	from, err := time.Parse("15:04", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	to, err := time.Parse("15:04", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q: %w", end, err)
	}
	if interval <= 0 {
		interval = DefaultSlotInterval
	}

	var labels []string
	for t := from; t.Before(to); t = t.Add(interval) {
		labels = append(labels, t.Format("15:04"))
	}
	return labels, nil
}

// RelativeTime renders a timestamp relative to now for display only:
// "in 2h 30m", "3 days ago", "just now".
func RelativeTime(t, now time.Time) string {
	diff := t.Sub(now)
	future := diff > 0
	if !future {
		diff = -diff
	}

	var phrase string
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		phrase = fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		h := int(diff.Hours())
		m := int(diff.Minutes()) - h*60
		if m > 0 {
			phrase = fmt.Sprintf("%dh %dm", h, m)
		} else {
			phrase = fmt.Sprintf("%dh", h)
		}
	default:
		days := int(diff.Hours() / 24)
		if days == 1 {
			phrase = "1 day"
		} else {
			phrase = fmt.Sprintf("%d days", days)
		}
	}

	if future {
		return "in " + phrase
	}
	return phrase + " ago"
}
