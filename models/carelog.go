package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CareType enumerates the kinds of care events a user can log.
type CareType string

const (
	CareWater       CareType = "water"
	CareFertilize   CareType = "fertilize"
	CareRepot       CareType = "repot"
	CarePrune       CareType = "prune"
	CareHealthCheck CareType = "health_check"
	CareOther       CareType = "other"
)

func (t CareType) Valid() bool {
	switch t {
	case CareWater, CareFertilize, CareRepot, CarePrune, CareHealthCheck, CareOther:
		return true
	}
	return false
}

// CareLog is one logged care event. Immutable once written, except for the
// metadata enrichment appended by the advisory pipeline.
type CareLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlantID   primitive.ObjectID `bson:"plantId"       json:"plantId"`
	CareType  CareType           `bson:"careType"      json:"careType"`
	Timestamp time.Time          `bson:"timestamp"     json:"timestamp"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`

	// Photo is either a URL or an inline data URI.
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"`

	// Metadata holds opaque structured payloads (a stored diagnosis, a
	// journal enrichment). The core writes here through the store only.
	Metadata map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}
