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

// avoidWinConfigKey pins the singleton row
const avoidWinConfigKey = "avoid_win"

// AvoidWinConfigRepository implements the
// repositories.AvoidWinConfigRepository interface
type AvoidWinConfigRepository struct {
	collection *mongo.Collection
}

// NewAvoidWinConfigRepository creates a new AvoidWinConfigRepository
func NewAvoidWinConfigRepository(db *mongo.Database) repositories.AvoidWinConfigRepository {
	return &AvoidWinConfigRepository{
		collection: db.Collection("avoid_win_configs"),
	}
}

// Get returns the singleton config row. Returns
// mongo.ErrNoDocuments when the operator has never saved one; the
// service layer substitutes its configured defaults.
func (r *AvoidWinConfigRepository) Get(ctx context.Context) (*models.AvoidWinConfig, error) {
	var cfg models.AvoidWinConfig
	err := r.collection.FindOne(ctx, bson.M{"configKey": avoidWinConfigKey}).Decode(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Upsert stores the singleton config row
func (r *AvoidWinConfigRepository) Upsert(ctx context.Context, cfg *models.AvoidWinConfig) error {
	cfg.UpdatedAt = time.Now()
	filter := bson.M{"configKey": avoidWinConfigKey}
	update := bson.M{"$set": bson.M{
		"configKey":               avoidWinConfigKey,
		"enabled":                 cfg.Enabled,
		"allowedWinProbability":   cfg.AllowedWinProbability,
		"minBetAmount":            cfg.MinBetAmount,
		"maxAnalysisCombinations": cfg.MaxAnalysisCombinations,
		"analysisTimeoutSeconds":  cfg.AnalysisTimeoutSeconds,
		"updatedAt":               cfg.UpdatedAt,
		"updatedBy":               cfg.UpdatedBy,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
