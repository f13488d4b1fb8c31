package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Game type tags used in the bet ledger. BetContent is a tagged variant
// keyed by GameType and validated at parse time, never duck-typed in
// the evaluation loop.
const (
	GameDigit       = "digit"        // single-digit position bet
	GameDoubleFace  = "double_face"  // big/small/odd/even/prime/composite on a digit
	GameSumBigSmall = "sum_big_small"
	GameSumOddEven  = "sum_odd_even"
	GameTwoDigit    = "two_digit"   // front2/back2 straight positioning
	GameThreeDigit  = "three_digit" // front3/mid3/back3 straight positioning
	GameSpan        = "span"        // per-triplet span
	GameDragonTiger = "dragon_tiger"
	GameBull        = "bull"      // bull-bull hand rank
	GamePoker       = "poker"     // 5-digit poker hand category
	GameBullFace    = "bull_face" // big/small/odd/even on the bull rank
)

// Bet is a single ledger entry. Bets are immutable once placed and are
// excluded from avoid-win analysis if placed at or after the issue's
// end time.
type Bet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LotteryType string             `bson:"lotteryType" json:"lotteryType"`
	IssueNo     string             `bson:"issueNo" json:"issueNo"`
	UserID      string             `bson:"userId" json:"userId"`
	GameType    string             `bson:"gameType" json:"gameType"`
	BetContent  bson.M             `bson:"betContent" json:"betContent"`
	Amount      float64            `bson:"amount" json:"amount"`
	Odds        float64            `bson:"odds,omitempty" json:"odds,omitempty"` // captured at placement; 0 means "use odds table"
	PlacedAt    time.Time          `bson:"placedAt" json:"placedAt"`
}
