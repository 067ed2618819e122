// File: database/repository/session/queries.go
package sessionRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorhub/models"
)

// FindInRange returns the party's sessions whose start falls inside
// [start, end], ascending by start time.
func (r *mongoSessionRepo) FindInRange(ctx context.Context, partyField, userID string, start, end time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		partyField:    userID,
		"scheduledAt": bson.M{"$gte": start, "$lte": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindManyByIDForParty returns the subset of the id list the given user
// actually owns in the given role. Non-owned or unknown ids are silently
// dropped from the result.
func (r *mongoSessionRepo) FindManyByIDForParty(ctx context.Context, ids []string, partyField, userID string) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":       bson.M{"$in": ids},
		partyField: userID,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindUpcomingScheduled returns the mentor's future sessions still in
// "scheduled" status, ascending by start time.
func (r *mongoSessionRepo) FindUpcomingScheduled(ctx context.Context, mentorID string, now time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"mentorId":    mentorID,
		"status":      models.SessionStatusScheduled,
		"scheduledAt": bson.M{"$gt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindByMentorBetween returns all of the mentor's sessions in the half-open
// window [start, end), regardless of status, ascending by start time. Used
// by the export path.
func (r *mongoSessionRepo) FindByMentorBetween(ctx context.Context, mentorID string, start, end time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"mentorId":    mentorID,
		"scheduledAt": bson.M{"$gte": start, "$lt": end},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
