package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IssueRepository implements the repositories.IssueRepository interface
type IssueRepository struct {
	collection *mongo.Collection
}

// NewIssueRepository creates a new IssueRepository
func NewIssueRepository(db *mongo.Database) repositories.IssueRepository {
	return &IssueRepository{
		collection: db.Collection("issues"),
	}
}

// Upsert inserts an issue keyed by (lotteryType, issueNo). Re-invoking
// with the same key is a no-op that returns the existing row; the
// unique index on the pair backs this up against racing writers.
func (r *IssueRepository) Upsert(ctx context.Context, issue *models.Issue) (*models.Issue, error) {
	now := time.Now()
	filter := bson.M{
		"lotteryType": issue.LotteryType,
		"issueNo":     issue.IssueNo,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"lotteryType": issue.LotteryType,
			"issueNo":     issue.IssueNo,
			"startTime":   issue.StartTime,
			"endTime":     issue.EndTime,
			"drawTime":    issue.DrawTime,
			"status":      models.IssueStatusPending,
			"createdAt":   now,
			"updatedAt":   now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.Issue
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindByID finds an issue by ID
func (r *IssueRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// FindByIssueNo finds an issue by its number within a lottery type
func (r *IssueRepository) FindByIssueNo(ctx context.Context, lotteryType, issueNo string) (*models.Issue, error) {
	var issue models.Issue
	filter := bson.M{"lotteryType": lotteryType, "issueNo": issueNo}
	err := r.collection.FindOne(ctx, filter).Decode(&issue)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// FindPending returns the single pending issue for a lottery type
func (r *IssueRepository) FindPending(ctx context.Context, lotteryType string) (*models.Issue, error) {
	filter := bson.M{
		"lotteryType": lotteryType,
		"status":      models.IssueStatusPending,
	}
	opts := options.FindOne().SetSort(bson.M{"startTime": -1})

	var issue models.Issue
	err := r.collection.FindOne(ctx, filter, opts).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNoPendingIssue
		}
		return nil, err
	}
	return &issue, nil
}
