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

// BetRepository implements the repositories.BetRepository interface.
// The engine only ever reads the ledger; bet placement is an external
// collaborator.
type BetRepository struct {
	collection *mongo.Collection
}

// NewBetRepository creates a new BetRepository
func NewBetRepository(db *mongo.Database) repositories.BetRepository {
	return &BetRepository{
		collection: db.Collection("bets"),
	}
}

// FindActiveByIssue returns the bets counted for an issue's draw
// analysis: placed strictly before the betting lock.
func (r *BetRepository) FindActiveByIssue(ctx context.Context, lotteryType, issueNo string, placedBefore time.Time) ([]*models.Bet, error) {
	filter := bson.M{
		"lotteryType": lotteryType,
		"issueNo":     issueNo,
		"placedAt":    bson.M{"$lt": placedBefore},
	}
	opts := options.Find().SetSort(bson.M{"placedAt": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bets []*models.Bet
	if err := cursor.All(ctx, &bets); err != nil {
		return nil, err
	}
	if bets == nil {
		bets = []*models.Bet{}
	}
	return bets, nil
}
