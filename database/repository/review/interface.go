// File: database/repository/review/interface.go
package reviewRepo

import (
	"context"
	"time"

	"mentorhub/database"

	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewRepository interface {
	AverageRatingForMentor(ctx context.Context, mentorID string, start, end time.Time) (float64, int, error)
}

type mongoReviewRepo struct {
	coll *mongo.Collection
}

// NewMongoReviewRepo constructs a new MongoDB ReviewRepository.
func NewMongoReviewRepo() ReviewRepository {
	return &mongoReviewRepo{
		coll: database.DB().Collection("reviews"),
	}
}
