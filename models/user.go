package models

import "time"

// User roles. A user has exactly one role.
const (
	RoleMentor  = "mentor"
	RoleStudent = "student"
)

// User carries the identity and display fields joined into calendar events.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Avatar    string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Review is a student's post-session rating of a mentor.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	MentorID  string    `bson:"mentorId" json:"mentorId"`
	StudentID string    `bson:"studentId" json:"studentId"`
	SessionID string    `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	Rating    float64   `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
