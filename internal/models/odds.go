package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OddsConfig is one operator-maintained odds row. The evaluator never
// hardcodes an odds value; every (gameType, selection) pair it can pay
// out on must have a row.
type OddsConfig struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameType  string             `bson:"gameType" json:"gameType"`
	Selection string             `bson:"selection" json:"selection"`
	Odds      float64            `bson:"odds" json:"odds"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OddsTable is the in-memory lookup used during a draw-analysis pass
type OddsTable map[string]float64

// NewOddsTable builds a lookup table from odds rows
func NewOddsTable(rows []*OddsConfig) OddsTable {
	table := make(OddsTable, len(rows))
	for _, row := range rows {
		table[row.GameType+"/"+row.Selection] = row.Odds
	}
	return table
}

// Lookup returns the odds for a (gameType, selection) pair
func (t OddsTable) Lookup(gameType, selection string) (float64, bool) {
	odds, ok := t[gameType+"/"+selection]
	return odds, ok
}
