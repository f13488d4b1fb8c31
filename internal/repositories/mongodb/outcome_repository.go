package mongodb

import (
	"context"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OutcomeRepository implements the repositories.OutcomeRepository interface
type OutcomeRepository struct {
	collection *mongo.Collection
}

// NewOutcomeRepository creates a new OutcomeRepository
func NewOutcomeRepository(db *mongo.Database) repositories.OutcomeRepository {
	return &OutcomeRepository{
		collection: db.Collection("outcomes"),
	}
}

// FindByIssueNo finds the outcome of a drawn issue
func (r *OutcomeRepository) FindByIssueNo(ctx context.Context, lotteryType, issueNo string) (*models.DrawOutcome, error) {
	var outcome models.DrawOutcome
	filter := bson.M{"lotteryType": lotteryType, "issueNo": issueNo}
	err := r.collection.FindOne(ctx, filter).Decode(&outcome)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// FindRecent returns the latest drawn outcomes, newest first
func (r *OutcomeRepository) FindRecent(ctx context.Context, lotteryType string, limit int) ([]*models.DrawOutcome, error) {
	filter := bson.M{"lotteryType": lotteryType}
	opts := options.Find().SetSort(bson.M{"drawnAt": -1}).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var outcomes []*models.DrawOutcome
	if err := cursor.All(ctx, &outcomes); err != nil {
		return nil, err
	}
	if outcomes == nil {
		outcomes = []*models.DrawOutcome{}
	}
	return outcomes, nil
}
