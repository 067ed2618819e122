// File: database/repository/integration/crud.go
package integrationRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorhub/models"
)

// UpsertUserIntegration inserts or refreshes the credential record keyed by
// (userId, provider). Repeated OAuth callbacks land on the same record.
func (r *mongoIntegrationRepo) UpsertUserIntegration(ctx context.Context, integ *models.UserIntegration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"userId": integ.UserID, "provider": integ.Provider}
	update := bson.M{
		"$set": bson.M{
			"accessToken":  integ.AccessToken,
			"refreshToken": integ.RefreshToken,
			"tokenExpiry":  integ.TokenExpiry,
			"active":       true,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"userId":    integ.UserID,
			"provider":  integ.Provider,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.userColl.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *mongoIntegrationRepo) GetUserIntegration(ctx context.Context, userID, provider string) (*models.UserIntegration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "provider": provider, "active": true}
	var integ models.UserIntegration
	if err := r.userColl.FindOne(ctx, filter).Decode(&integ); err != nil {
		return nil, err
	}
	return &integ, nil
}

func (r *mongoIntegrationRepo) CreateSessionIntegration(ctx context.Context, marker *models.SessionIntegration) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if marker.ID == "" {
		marker.ID = uuid.New().String()
	}
	if marker.SyncedAt.IsZero() {
		marker.SyncedAt = time.Now().UTC()
	}
	_, err := r.sessionColl.InsertOne(ctx, marker)
	return err
}

func (r *mongoIntegrationRepo) GetSessionIntegration(ctx context.Context, sessionID, provider string) (*models.SessionIntegration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"sessionId": sessionID, "provider": provider}
	var marker models.SessionIntegration
	if err := r.sessionColl.FindOne(ctx, filter).Decode(&marker); err != nil {
		return nil, err
	}
	return &marker, nil
}

// EnsureIndexes creates the uniqueness guarantees both collections rely on.
func (r *mongoIntegrationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.userColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "provider", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_provider_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create userIntegrations index: %w", err)
	}

	_, err = r.sessionColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "provider", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("session_provider_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create sessionIntegrations index: %w", err)
	}
	return nil
}
