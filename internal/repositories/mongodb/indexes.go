package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness guards the draw pipeline relies
// on. The unique (lotteryType, issueNo) index on outcomes is what
// turns a concurrent second draw into a rejected duplicate instead of
// a double payout.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	issueKey := bson.D{{Key: "lotteryType", Value: 1}, {Key: "issueNo", Value: 1}}

	_, err := db.Collection("issues").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    issueKey,
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("outcomes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    issueKey,
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("bets").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "lotteryType", Value: 1}, {Key: "issueNo", Value: 1}, {Key: "placedAt", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("odds_configs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "gameType", Value: 1}, {Key: "selection", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
