package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// jackpotPoolKey pins the singleton pool row
const jackpotPoolKey = "super"

// JackpotRepository implements the repositories.JackpotRepository interface
type JackpotRepository struct {
	pools  *mongo.Collection
	checks *mongo.Collection
}

// NewJackpotRepository creates a new JackpotRepository
func NewJackpotRepository(db *mongo.Database) repositories.JackpotRepository {
	return &JackpotRepository{
		pools:  db.Collection("jackpot_pools"),
		checks: db.Collection("jackpot_checks"),
	}
}

// GetPool returns the singleton pool, creating it at the floor amount
// on first access
func (r *JackpotRepository) GetPool(ctx context.Context, floor float64) (*models.JackpotPool, error) {
	filter := bson.M{"poolKey": jackpotPoolKey}
	update := bson.M{"$setOnInsert": bson.M{
		"poolKey":            jackpotPoolKey,
		"currentAmount":      floor,
		"totalContributions": 0.0,
		"totalPayouts":       0.0,
		"updatedAt":          time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var pool models.JackpotPool
	if err := r.pools.FindOneAndUpdate(ctx, filter, update, opts).Decode(&pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

// AddContribution increments the pool by one draw's aggregated stake
// contribution
func (r *JackpotRepository) AddContribution(ctx context.Context, amount float64) error {
	if amount <= 0 {
		return nil
	}
	filter := bson.M{"poolKey": jackpotPoolKey}
	update := bson.M{
		"$inc": bson.M{"currentAmount": amount, "totalContributions": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := r.pools.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// PayAndReset pays out the current pool amount and resets it to the
// floor, atomically via findAndModify
func (r *JackpotRepository) PayAndReset(ctx context.Context, floor float64) (float64, error) {
	filter := bson.M{"poolKey": jackpotPoolKey}
	var before models.JackpotPool
	err := r.pools.FindOneAndUpdate(ctx, filter, bson.M{
		"$set": bson.M{"currentAmount": floor, "updatedAt": time.Now()},
	}, options.FindOneAndUpdate().SetReturnDocument(options.Before)).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, errors.New("jackpot pool not initialized")
		}
		return 0, err
	}
	paid := before.CurrentAmount
	if paid < floor {
		paid = floor
	}
	_, err = r.pools.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"totalPayouts": paid}})
	if err != nil {
		return paid, err
	}
	return paid, nil
}

// CreateCheck appends one jackpot audit row
func (r *JackpotRepository) CreateCheck(ctx context.Context, check *models.JackpotCheck) error {
	check.CreatedAt = time.Now()
	_, err := r.checks.InsertOne(ctx, check)
	return err
}

// FindRecentChecks returns the latest audit rows, newest first
func (r *JackpotRepository) FindRecentChecks(ctx context.Context, limit int) ([]*models.JackpotCheck, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))
	cursor, err := r.checks.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var checks []*models.JackpotCheck
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, err
	}
	if checks == nil {
		checks = []*models.JackpotCheck{}
	}
	return checks, nil
}
