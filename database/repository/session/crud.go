// File: database/repository/session/crud.go
package sessionRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorhub/models"
)

func (r *mongoSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetByIDForParty loads a session only if the given user fills the given
// party field ("mentorId" or "studentId").
func (r *mongoSessionRepo) GetByIDForParty(ctx context.Context, id, partyField, userID string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, partyField: userID}
	var session models.Session
	if err := r.coll.FindOne(ctx, filter).Decode(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Upsert replaces the session keyed by id, inserting it if absent. Used by
// the provider webhook, which may see bookings before we do.
func (r *mongoSessionRepo) Upsert(ctx context.Context, session *models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	if session.Payment.Amount <= 0 {
		session.Payment.Amount = models.DefaultSessionAmount
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": session.ID}, session, opts)
	return err
}

func (r *mongoSessionRepo) UpdateStatusMany(ctx context.Context, ids []string, partyField, userID, newStatus string) (*models.BulkWriteResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":       bson.M{"$in": ids},
		partyField: userID,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    newStatus,
			"updatedAt": time.Now().UTC(),
		},
	}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	return &models.BulkWriteResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (r *mongoSessionRepo) UpdateSchedule(ctx context.Context, id string, newDateTime time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"scheduledAt": newDateTime,
			"updatedAt":   time.Now().UTC(),
		},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}

// DeleteScheduledMany removes the caller's sessions matching the id set that
// are still in "scheduled" status, returning the removed sessions so the
// caller can notify their students. Sessions in other statuses are simply
// not matched.
func (r *mongoSessionRepo) DeleteScheduledMany(ctx context.Context, ids []string, mentorID string) (int64, []models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":       bson.M{"$in": ids},
		"mentorId": mentorID,
		"status":   models.SessionStatusScheduled,
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return 0, nil, err
	}
	var doomed []models.Session
	if err := cursor.All(ctx, &doomed); err != nil {
		return 0, nil, err
	}

	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, nil, err
	}
	return res.DeletedCount, doomed, nil
}
