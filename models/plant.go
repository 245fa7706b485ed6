package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plant — main plant card with the owner-provided care profile.
// Next-due dates are NOT stored; they are derived by the schedule package
// whenever a plant view is materialized.
type Plant struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID        primitive.ObjectID `bson:"ownerId"       json:"ownerId"`
	Name           string             `bson:"name"          json:"name"`
	ScientificName string             `bson:"scientificName,omitempty" json:"scientificName,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"     json:"createdAt"`

	// Care profile. WaterFrequencyDays is always > 0 for a stored plant;
	// FertilizerFrequencyDays == 0 means "no fertilizing schedule".
	WaterFrequencyDays      int        `bson:"waterFrequencyDays"              json:"waterFrequencyDays"`
	FertilizerFrequencyDays int        `bson:"fertilizerFrequencyDays"         json:"fertilizerFrequencyDays"`
	LastWateredAt           *time.Time `bson:"lastWateredAt,omitempty"         json:"lastWateredAt,omitempty"`
	LastFertilizedAt        *time.Time `bson:"lastFertilizedAt,omitempty"      json:"lastFertilizedAt,omitempty"`

	// Injected-only (NOT stored in Mongo): derived next-due dates.
	NextWatering    *time.Time `bson:"-" json:"nextWatering,omitempty"`
	NextFertilizing *time.Time `bson:"-" json:"nextFertilizing,omitempty"`

	// Visual
	Photo string `bson:"photo,omitempty" json:"photo,omitempty"` // URL to plant photo

	// Environment metadata consumed by advisory prompts
	Location       string `bson:"location,omitempty"       json:"location,omitempty"`       // indoor | outdoor | balcony
	LightCondition string `bson:"lightCondition,omitempty" json:"lightCondition,omitempty"` // full-sun | partial-shade | low-light
	PotSize        string `bson:"potSize,omitempty"        json:"potSize,omitempty"`
	Notes          string `bson:"notes,omitempty"          json:"notes,omitempty"`
}

// Confidence mirrors the certainty grades the inference service expresses.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// IdentityCheck is the outcome of cross-checking a photographed plant
// against the expected species. DetectedPlant is set only on a mismatch.
type IdentityCheck struct {
	Matches       bool       `bson:"matches"                 json:"matches"`
	Confidence    Confidence `bson:"confidence"              json:"confidence"`
	DetectedPlant string     `bson:"detectedPlant,omitempty" json:"detectedPlant,omitempty"`
}

// JournalEntry is the narrative produced by journal enrichment.
type JournalEntry struct {
	Title          string         `bson:"title"                json:"title"`
	Observations   []string       `bson:"observations"         json:"observations"`
	GrowthProgress string         `bson:"growthProgress"       json:"growthProgress"`
	HealthNotes    string         `bson:"healthNotes,omitempty" json:"healthNotes,omitempty"`
	NextSteps      []string       `bson:"nextSteps,omitempty"  json:"nextSteps,omitempty"`
	Identity       *IdentityCheck `bson:"identity,omitempty"   json:"identity,omitempty"`
}
