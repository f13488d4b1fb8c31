package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStatus represents the lifecycle state of an issue
type IssueStatus string

const (
	IssueStatusPending IssueStatus = "PENDING"
	IssueStatusDrawn   IssueStatus = "DRAWN"
)

// Issue represents one time-boxed betting-and-draw round. At most one
// PENDING issue exists per lottery type; the issue number is derived
// deterministically from the start time.
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LotteryType string             `bson:"lotteryType" json:"lotteryType"`
	IssueNo     string             `bson:"issueNo" json:"issueNo"`
	StartTime   time.Time          `bson:"startTime" json:"startTime"`
	EndTime     time.Time          `bson:"endTime" json:"endTime"`   // betting lock, start+50s
	DrawTime    time.Time          `bson:"drawTime" json:"drawTime"` // start+60s
	Status      IssueStatus        `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Countdown is the public view of the current pending issue
type Countdown struct {
	IssueNo          string `json:"issueNo"`
	RemainingSeconds int64  `json:"remainingSeconds"` // until betting lock, never negative
	DrawInSeconds    int64  `json:"drawInSeconds"`    // until draw time, never negative
}
