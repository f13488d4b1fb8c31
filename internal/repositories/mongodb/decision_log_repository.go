package mongodb

import (
	"context"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DecisionLogRepository implements the repositories.DecisionLogRepository
// interface. Rows are written by the draw recorder's commit; this
// repository only serves the audit read path.
type DecisionLogRepository struct {
	collection *mongo.Collection
}

// NewDecisionLogRepository creates a new DecisionLogRepository
func NewDecisionLogRepository(db *mongo.Database) repositories.DecisionLogRepository {
	return &DecisionLogRepository{
		collection: db.Collection("decision_logs"),
	}
}

// FindRecent returns the latest decision rows, newest first
func (r *DecisionLogRepository) FindRecent(ctx context.Context, lotteryType string, limit int) ([]*models.DecisionLog, error) {
	filter := bson.M{"lotteryType": lotteryType}
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*models.DecisionLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*models.DecisionLog{}
	}
	return logs, nil
}
