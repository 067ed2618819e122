package models

import "time"

// Session statuses. Plain labels; transitions are direct field overwrites.
const (
	SessionStatusScheduled  = "scheduled"
	SessionStatusInProgress = "in-progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
	SessionStatusNoShow     = "no-show"
)

// Session types.
const (
	SessionTypeVideo = "video"
	SessionTypeAudio = "audio"
	SessionTypeChat  = "chat"
)

// Payment statuses, distinct from session status.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// DefaultSessionAmount is the flat fallback applied when a session is stored
// without an explicit payment amount.
const DefaultSessionAmount = 75.0

// PaymentInfo is the payment record embedded in a session.
type PaymentInfo struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`
	Status   string  `bson:"status" json:"status"`
}

// Session represents one tutoring engagement between a mentor and a student.
type Session struct {
	ID          string      `bson:"id" json:"id"`
	MentorID    string      `bson:"mentorId" json:"mentorId"`
	StudentID   string      `bson:"studentId" json:"studentId"`
	ScheduledAt time.Time   `bson:"scheduledAt" json:"scheduledAt"`
	Duration    int         `bson:"duration" json:"duration"` // minutes
	Subject     string      `bson:"subject" json:"subject"`
	Type        string      `bson:"type" json:"type"`     // video | audio | chat
	Status      string      `bson:"status" json:"status"` // see status constants
	Payment     PaymentInfo `bson:"payment" json:"payment"`
	Notes       string      `bson:"notes,omitempty" json:"notes,omitempty"`
	Feedback    string      `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Rating      float64     `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// End returns the derived end time (start + duration).
func (s Session) End() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.Duration) * time.Minute)
}

// Active reports whether the session still occupies its time range for
// conflict purposes. Cancelled sessions free their slot.
func (s Session) Active() bool {
	return s.Status != SessionStatusCancelled
}

// Amount returns the payment amount, falling back to DefaultSessionAmount
// when the stored record carries none.
func (s Session) Amount() float64 {
	if s.Payment.Amount <= 0 {
		return DefaultSessionAmount
	}
	return s.Payment.Amount
}
