package models

import "time"

// EventParty holds the display fields of one session party.
type EventParty struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// EventProps carries the original identifiers so an event can round-trip
// back into mutation calls.
type EventProps struct {
	SessionID string     `json:"sessionId"`
	Status    string     `json:"status"`
	Type      string     `json:"type"`
	Subject   string     `json:"subject"`
	Mentor    EventParty `json:"mentor"`
	Student   EventParty `json:"student"`
}

// CalendarEvent is the per-request projection of a Session shaped for
// calendar display. Never persisted.
type CalendarEvent struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	ExtendedProps EventProps `json:"extendedProps"`
}

// SessionStats summarizes a caller's full session history.
type SessionStats struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Upcoming   int     `json:"upcoming"`
	Cancelled  int     `json:"cancelled"`
	InProgress int     `json:"inProgress"`
	Earnings   float64 `json:"earnings"` // sum of payment amounts over completed sessions
}

// BulkActionRequest is the body of POST /api/calendar/bulk-actions.
type BulkActionRequest struct {
	Action         string          `json:"action" binding:"required"`
	SessionIDs     []string        `json:"sessionIds" binding:"required"`
	NewStatus      string          `json:"newStatus,omitempty"`
	RescheduleData *RescheduleData `json:"rescheduleData,omitempty"`
}

// RescheduleData carries the new start time for a bulk reschedule.
type RescheduleData struct {
	NewDateTime time.Time `json:"newDateTime"`
}

// BulkWriteResult reports a multi-document status update.
type BulkWriteResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// ItemResult is the per-id outcome of a non-atomic bulk operation.
type ItemResult struct {
	SessionID string `json:"sessionId"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// ReminderPayload is the asynq task payload for a session reminder.
type ReminderPayload struct {
	SessionID   string    `json:"sessionId"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ScheduledAt time.Time `json:"scheduledAt"`
}
