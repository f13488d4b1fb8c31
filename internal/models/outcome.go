package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DrawOutcome is the committed 5-digit result of an issue together
// with its derived attributes. Immutable once persisted; a unique
// index on (lotteryType, issueNo) rejects a concurrent second draw.
type DrawOutcome struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LotteryType string             `bson:"lotteryType" json:"lotteryType"`
	IssueNo     string             `bson:"issueNo" json:"issueNo"`
	Numbers     string             `bson:"numbers" json:"numbers"` // "00000".."99999"
	Wan         int                `bson:"wan" json:"wan"`
	Qian        int                `bson:"qian" json:"qian"`
	Bai         int                `bson:"bai" json:"bai"`
	Shi         int                `bson:"shi" json:"shi"`
	Ge          int                `bson:"ge" json:"ge"`
	Sum         int                `bson:"sum" json:"sum"`
	SumBigSmall string             `bson:"sumBigSmall" json:"sumBigSmall"` // "big" | "small"
	SumOddEven  string             `bson:"sumOddEven" json:"sumOddEven"`   // "odd" | "even"
	DragonTiger string             `bson:"dragonTiger" json:"dragonTiger"` // "dragon" | "tiger" | "tie"
	BullRank    int                `bson:"bullRank" json:"bullRank"`       // 0 no bull .. 10 bull-bull
	PokerHand   string             `bson:"pokerHand" json:"pokerHand"`
	DrawnAt     time.Time          `bson:"drawnAt" json:"drawnAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
