package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AvoidWinConfig is the operator-tunable singleton controlling the
// outcome-selection engine. Versioned by UpdatedAt.
type AvoidWinConfig struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Enabled                 bool               `bson:"enabled" json:"enabled"`
	AllowedWinProbability   float64            `bson:"allowedWinProbability" json:"allowedWinProbability"`
	MinBetAmount            float64            `bson:"minBetAmount" json:"minBetAmount"`
	MaxAnalysisCombinations int                `bson:"maxAnalysisCombinations" json:"maxAnalysisCombinations"`
	AnalysisTimeoutSeconds  int                `bson:"analysisTimeoutSeconds" json:"analysisTimeoutSeconds"`
	UpdatedAt               time.Time          `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy               string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
}
