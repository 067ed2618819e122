// File: database/repository/session/aggregates.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mentorhub/models"
)

func condCount(field, want string) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{field, want}}, 1, 0,
	}}}
}

// completedEarnings sums payment amounts over completed sessions, applying
// the flat default for sessions stored without an amount, matching
// models.Session.Amount.
func completedEarnings() bson.M {
	amount := bson.M{"$cond": bson.A{
		bson.M{"$gt": bson.A{bson.M{"$ifNull": bson.A{"$payment.amount", 0}}, 0}},
		"$payment.amount", models.DefaultSessionAmount,
	}}
	return bson.M{"$sum": bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{"$status", models.SessionStatusCompleted}},
		amount, 0,
	}}}
}

// StatsForParty aggregates the party's full session history into the
// calendar stats summary. Earnings only count completed sessions.
func (r *mongoSessionRepo) StatsForParty(ctx context.Context, partyField, userID string, now time.Time) (*PartyStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{partyField: userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"total":      bson.M{"$sum": 1},
			"completed":  condCount("$status", models.SessionStatusCompleted),
			"cancelled":  condCount("$status", models.SessionStatusCancelled),
			"inProgress": condCount("$status", models.SessionStatusInProgress),
			"upcoming": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$status", models.SessionStatusScheduled}},
					bson.M{"$gt": bson.A{"$scheduledAt", now}},
				}}, 1, 0,
			}}},
			"earnings": completedEarnings(),
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("stats aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []PartyStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &PartyStats{}, nil
	}
	return &results[0], nil
}

// PeriodStatsForMentor aggregates a mentor's sessions within one analytics
// window. Cancelled sessions are excluded from every measure; the distinct
// student count only considers students with at least one completed session.
func (r *mongoSessionRepo) PeriodStatsForMentor(ctx context.Context, mentorID string, start, end time.Time) (*PeriodStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"mentorId":    mentorID,
			"scheduledAt": bson.M{"$gte": start, "$lt": end},
			"status":      bson.M{"$ne": models.SessionStatusCancelled},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$studentId",
			"sessions":  bson.M{"$sum": 1},
			"completed": condCount("$status", models.SessionStatusCompleted),
			"earnings":  completedEarnings(),
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"sessions":  bson.M{"$sum": "$sessions"},
			"completed": bson.M{"$sum": "$completed"},
			"earnings":  bson.M{"$sum": "$earnings"},
			"students": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$completed", 0}}, 1, 0,
			}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("period stats aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []PeriodStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &PeriodStats{}, nil
	}
	return &results[0], nil
}

// MonthlySeriesForMentor groups the mentor's non-cancelled sessions since
// `from` into calendar-month buckets, ascending.
func (r *mongoSessionRepo) MonthlySeriesForMentor(ctx context.Context, mentorID string, from time.Time) ([]MonthBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"mentorId":    mentorID,
			"scheduledAt": bson.M{"$gte": from},
			"status":      bson.M{"$ne": models.SessionStatusCancelled},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$scheduledAt"},
				"month": bson.M{"$month": "$scheduledAt"},
			},
			"sessions":  bson.M{"$sum": 1},
			"completed": condCount("$status", models.SessionStatusCompleted),
			"earnings":  completedEarnings(),
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"year":      "$_id.year",
			"month":     "$_id.month",
			"sessions":  1,
			"completed": 1,
			"earnings":  1,
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("monthly series aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []MonthBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// SubjectBreakdownForMentor groups the window's non-cancelled sessions by
// subject, descending by session count, top 5 only.
func (r *mongoSessionRepo) SubjectBreakdownForMentor(ctx context.Context, mentorID string, start, end time.Time) ([]GroupBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"mentorId":    mentorID,
			"scheduledAt": bson.M{"$gte": start, "$lt": end},
			"status":      bson.M{"$ne": models.SessionStatusCancelled},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$subject",
			"sessions":  bson.M{"$sum": 1},
			"completed": condCount("$status", models.SessionStatusCompleted),
			"earnings":  completedEarnings(),
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "sessions", Value: -1}}}},
		{{Key: "$limit", Value: 5}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"key":       "$_id",
			"sessions":  1,
			"completed": 1,
			"earnings":  1,
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("subject breakdown aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []GroupBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// HourBreakdownForMentor groups the window's non-cancelled sessions by
// start hour, descending by session count, top 5 only.
func (r *mongoSessionRepo) HourBreakdownForMentor(ctx context.Context, mentorID string, start, end time.Time) ([]GroupBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"mentorId":    mentorID,
			"scheduledAt": bson.M{"$gte": start, "$lt": end},
			"status":      bson.M{"$ne": models.SessionStatusCancelled},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":       bson.M{"$hour": "$scheduledAt"},
			"sessions":  bson.M{"$sum": 1},
			"completed": condCount("$status", models.SessionStatusCompleted),
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "sessions", Value: -1}}}},
		{{Key: "$limit", Value: 5}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"hour":      "$_id",
			"sessions":  1,
			"completed": 1,
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("hour breakdown aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []GroupBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
