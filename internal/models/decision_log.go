package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DecisionType classifies how a draw outcome was selected
type DecisionType string

const (
	DecisionAvoided         DecisionType = "avoided"
	DecisionAllowedWin      DecisionType = "allowed_win"
	DecisionDisabledRandom  DecisionType = "disabled_random"
	DecisionTimeoutFallback DecisionType = "timeout_fallback"
	DecisionManual          DecisionType = "manual"
)

// DecisionLog is the append-only audit record of one outcome-selection
// decision. Exactly one row is written per draw, atomically with the
// outcome itself.
type DecisionLog struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	IssueID             primitive.ObjectID `bson:"issueId" json:"issueId"`
	LotteryType         string             `bson:"lotteryType" json:"lotteryType"`
	IssueNo             string             `bson:"issueNo" json:"issueNo"`
	DecisionType        DecisionType       `bson:"decisionType" json:"decisionType"`
	DrawNumbers         string             `bson:"drawNumbers" json:"drawNumbers"`
	TotalBets           int                `bson:"totalBets" json:"totalBets"`
	WinningCombinations int                `bson:"winningCombinations" json:"winningCombinations"` // |unsafe|
	AnalysisTimeMs      int64              `bson:"analysisTimeMs" json:"analysisTimeMs"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}
