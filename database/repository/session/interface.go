// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"log"
	"time"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PartyStats mirrors the stats summary aggregated over a party's full
// session history.
type PartyStats struct {
	Total      int     `bson:"total"`
	Completed  int     `bson:"completed"`
	Cancelled  int     `bson:"cancelled"`
	InProgress int     `bson:"inProgress"`
	Upcoming   int     `bson:"upcoming"`
	Earnings   float64 `bson:"earnings"`
}

// PeriodStats is the aggregate over one analytics period.
type PeriodStats struct {
	Sessions  int     `bson:"sessions"`  // all non-cancelled sessions in period
	Completed int     `bson:"completed"` // completed sessions in period
	Students  int     `bson:"students"`  // distinct students over completed sessions
	Earnings  float64 `bson:"earnings"`  // earnings over completed sessions
}

// MonthBucket is one point of the trailing monthly series.
type MonthBucket struct {
	Year      int     `bson:"year"`
	Month     int     `bson:"month"`
	Sessions  int     `bson:"sessions"`
	Completed int     `bson:"completed"`
	Earnings  float64 `bson:"earnings"`
}

// GroupBucket is one row of a subject or hour-of-day breakdown.
type GroupBucket struct {
	Key       string  `bson:"key"`
	Hour      int     `bson:"hour"`
	Sessions  int     `bson:"sessions"`
	Completed int     `bson:"completed"`
	Earnings  float64 `bson:"earnings"`
}

type SessionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Session, error)
	GetByIDForParty(ctx context.Context, id, partyField, userID string) (*models.Session, error)
	Upsert(ctx context.Context, session *models.Session) error

	// Calendar queries.
	FindInRange(ctx context.Context, partyField, userID string, start, end time.Time) ([]models.Session, error)
	FindManyByIDForParty(ctx context.Context, ids []string, partyField, userID string) ([]models.Session, error)
	StatsForParty(ctx context.Context, partyField, userID string, now time.Time) (*PartyStats, error)

	// Bulk mutations.
	UpdateStatusMany(ctx context.Context, ids []string, partyField, userID, newStatus string) (*models.BulkWriteResult, error)
	UpdateSchedule(ctx context.Context, id string, newDateTime time.Time) error
	DeleteScheduledMany(ctx context.Context, ids []string, mentorID string) (int64, []models.Session, error)

	// Sync and analytics reads.
	FindUpcomingScheduled(ctx context.Context, mentorID string, now time.Time) ([]models.Session, error)
	FindByMentorBetween(ctx context.Context, mentorID string, start, end time.Time) ([]models.Session, error)
	PeriodStatsForMentor(ctx context.Context, mentorID string, start, end time.Time) (*PeriodStats, error)
	MonthlySeriesForMentor(ctx context.Context, mentorID string, from time.Time) ([]MonthBucket, error)
	SubjectBreakdownForMentor(ctx context.Context, mentorID string, start, end time.Time) ([]GroupBucket, error)
	HourBreakdownForMentor(ctx context.Context, mentorID string, start, end time.Time) ([]GroupBucket, error)
}

type mongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new MongoDB SessionRepository.
func NewMongoSessionRepo() SessionRepository {
	r := &mongoSessionRepo{
		coll: database.DB().Collection("sessions"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("session repo: %v", err)
	}
	return r
}
