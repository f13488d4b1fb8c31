package mongodb

import (
	"context"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OddsRepository implements the repositories.OddsRepository interface
type OddsRepository struct {
	collection *mongo.Collection
}

// NewOddsRepository creates a new OddsRepository
func NewOddsRepository(db *mongo.Database) repositories.OddsRepository {
	return &OddsRepository{
		collection: db.Collection("odds_configs"),
	}
}

// FindAll returns every odds row
func (r *OddsRepository) FindAll(ctx context.Context) ([]*models.OddsConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "gameType", Value: 1}, {Key: "selection", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []*models.OddsConfig
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*models.OddsConfig{}
	}
	return rows, nil
}

// SeedDefaults inserts any missing rows without touching existing
// operator-tuned values
func (r *OddsRepository) SeedDefaults(ctx context.Context, rows []*models.OddsConfig) error {
	if len(rows) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(rows))
	now := time.Now()
	for _, row := range rows {
		filter := bson.M{"gameType": row.GameType, "selection": row.Selection}
		update := bson.M{"$setOnInsert": bson.M{
			"gameType":  row.GameType,
			"selection": row.Selection,
			"odds":      row.Odds,
			"updatedAt": now,
		}}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true))
	}
	_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}
