package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DrawRecorder implements the repositories.DrawRecorder interface.
// The outcome insert, the pending→drawn status flip and the decision
// log append run inside one session transaction; the unique index on
// (lotteryType, issueNo) in the outcomes collection rejects a
// concurrent second draw even outside the transaction path.
type DrawRecorder struct {
	db        *mongo.Database
	issues    *mongo.Collection
	outcomes  *mongo.Collection
	decisions *mongo.Collection
}

// NewDrawRecorder creates a new DrawRecorder
func NewDrawRecorder(db *mongo.Database) repositories.DrawRecorder {
	return &DrawRecorder{
		db:        db,
		issues:    db.Collection("issues"),
		outcomes:  db.Collection("outcomes"),
		decisions: db.Collection("decision_logs"),
	}
}

// Commit atomically persists one draw. A duplicate draw attempt
// surfaces as models.ErrConcurrencyConflict and must be resolved by
// the caller as a no-op.
func (r *DrawRecorder) Commit(ctx context.Context, issue *models.Issue, outcome *models.DrawOutcome, decision *models.DecisionLog) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()

		// Flip the issue first so a racing draw loses before writing
		// anything else.
		res, err := r.issues.UpdateOne(sc,
			bson.M{"_id": issue.ID, "status": models.IssueStatusPending},
			bson.M{"$set": bson.M{"status": models.IssueStatusDrawn, "updatedAt": now}},
		)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, models.ErrConcurrencyConflict
		}

		outcome.CreatedAt = now
		if _, err := r.outcomes.InsertOne(sc, outcome); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, models.ErrConcurrencyConflict
			}
			return nil, err
		}

		decision.CreatedAt = now
		if _, err := r.decisions.InsertOne(sc, decision); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, models.ErrConcurrencyConflict) {
			return models.ErrConcurrencyConflict
		}
		return err
	}
	return nil
}
