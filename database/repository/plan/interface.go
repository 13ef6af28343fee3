package planRepo

import (
	"context"
	"log"
	"time"

	"plannerly/database"
	"plannerly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// PlanRepository persists plan sessions.
type PlanRepository interface {
	Create(ctx context.Context, session models.PlanSession) (string, error)
	GetByID(ctx context.Context, id string) (*models.PlanSession, error)
	Update(ctx context.Context, session *models.PlanSession) error
	DeleteByID(ctx context.Context, id string) error
	ListActiveBefore(ctx context.Context, cutoff time.Time, limit int64) ([]models.PlanSession, error)
}

type mongoPlanRepo struct {
	coll *mongo.Collection
}

// NewMongoPlanRepo returns a new PlanRepository instance using MongoDB.
func NewMongoPlanRepo() PlanRepository {
	db := database.MongoClient.Database("plannerly")
	repo := &mongoPlanRepo{
		coll: db.Collection("plan_sessions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("plan repo: failed to create indexes: %v", err)
	}
	return repo
}
