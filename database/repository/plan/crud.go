package planRepo

import (
	"context"
	"errors"
	"time"

	"plannerly/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new plan session and returns its ID.
func (r *mongoPlanRepo) Create(ctx context.Context, session models.PlanSession) (string, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, session)
	if err != nil {
		return "", err
	}
	return session.ID, nil
}

// GetByID returns a plan session by its ID.
func (r *mongoPlanRepo) GetByID(ctx context.Context, id string) (*models.PlanSession, error) {
	var session models.PlanSession
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Update replaces the stored session document.
func (r *mongoPlanRepo) Update(ctx context.Context, session *models.PlanSession) error {
	session.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": session.ID}, session)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("plan session not found")
	}
	return nil
}

// DeleteByID removes a plan session by ID.
func (r *mongoPlanRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("plan session not found")
	}
	return nil
}

// ListActiveBefore fetches sessions not touched since cutoff, oldest first.
// Used by the review sweep to refresh stale budget snapshots.
func (r *mongoPlanRepo) ListActiveBefore(ctx context.Context, cutoff time.Time, limit int64) ([]models.PlanSession, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: 1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"updatedAt": bson.M{"$lt": cutoff}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.PlanSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
