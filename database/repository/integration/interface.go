// File: database/repository/integration/interface.go
package integrationRepo

import (
	"context"
	"log"

	"mentorhub/database"
	"mentorhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// IntegrationRepository owns both the per-user provider credential records
// and the per-session sync markers.
type IntegrationRepository interface {
	UpsertUserIntegration(ctx context.Context, integ *models.UserIntegration) error
	GetUserIntegration(ctx context.Context, userID, provider string) (*models.UserIntegration, error)

	CreateSessionIntegration(ctx context.Context, marker *models.SessionIntegration) error
	GetSessionIntegration(ctx context.Context, sessionID, provider string) (*models.SessionIntegration, error)
}

type mongoIntegrationRepo struct {
	userColl    *mongo.Collection
	sessionColl *mongo.Collection
}

// NewMongoIntegrationRepo constructs a new MongoDB IntegrationRepository.
func NewMongoIntegrationRepo() IntegrationRepository {
	r := &mongoIntegrationRepo{
		userColl:    database.DB().Collection("userIntegrations"),
		sessionColl: database.DB().Collection("sessionIntegrations"),
	}
	if err := r.EnsureIndexes(); err != nil {
		log.Printf("integration repo: %v", err)
	}
	return r
}
