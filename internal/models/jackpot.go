package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JackpotPool is the singleton super-jackpot pool. CurrentAmount never
// drops below the configured floor; a payout resets it to the floor.
type JackpotPool struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PoolKey            string             `bson:"poolKey" json:"poolKey"` // fixed "super"
	CurrentAmount      float64            `bson:"currentAmount" json:"currentAmount"`
	TotalContributions float64            `bson:"totalContributions" json:"totalContributions"`
	TotalPayouts       float64            `bson:"totalPayouts" json:"totalPayouts"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// JackpotCheck is the audit record of one super-jackpot attempt on a
// base-winning bet. Every check is logged, success or not, with the
// probability used and the random draw value.
type JackpotCheck struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LotteryType        string             `bson:"lotteryType" json:"lotteryType"`
	IssueNo            string             `bson:"issueNo" json:"issueNo"`
	BetID              primitive.ObjectID `bson:"betId" json:"betId"`
	UserID             string             `bson:"userId" json:"userId"`
	BaseWinProbability float64            `bson:"baseWinProbability" json:"baseWinProbability"`
	CheckProbability   float64            `bson:"checkProbability" json:"checkProbability"`
	RandomValue        float64            `bson:"randomValue" json:"randomValue"`
	Won                bool               `bson:"won" json:"won"`
	Payout             float64            `bson:"payout" json:"payout"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}
