package advisor

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"leafline/logging"
	"leafline/models"
)

// recentHistoryLimit caps how many prior entries the enrichment digest uses.
const recentHistoryLimit = 10

// CareHistory reads a plant's recent care logs. Injected so this package
// never depends on the persistence layer directly.
type CareHistory interface {
	// RecentLogs returns up to limit entries for the plant, newest first,
	// excluding the given log id.
	RecentLogs(ctx context.Context, plantID, exclude primitive.ObjectID, limit int64) ([]models.CareLog, error)
}

// Journal composes a care-log entry, recent care history and an identity
// check into a narrative journal entry.
type Journal struct {
	orc      *Orchestrator
	verifier *Verifier
	history  CareHistory
	log      *logging.Logger
}

func NewJournal(orc *Orchestrator, verifier *Verifier, history CareHistory, log *logging.Logger) *Journal {
	return &Journal{
		orc:      orc,
		verifier: verifier,
		history:  history,
		log:      log.With("service", "JournalEnrichment"),
	}
}

// Enrich produces a narrative journal entry for a photographed care event.
// Enrichment is a photo-only feature: a log without a photo returns nil, nil.
// When history is nil, the ten most recent prior entries are fetched from
// the care-history collaborator. Title, observations and growth progress are
// required in the result; missing any of them fails the whole call.
func (j *Journal) Enrich(ctx context.Context, log models.CareLog, plant models.Plant, history []models.CareLog) (*models.JournalEntry, error) {
	if strings.TrimSpace(log.Photo) == "" {
		return nil, nil
	}

	identity := j.verifier.VerifyIdentity(ctx, log.Photo, plant.Name, plant.ScientificName)

	if history == nil {
		fetched, err := j.history.RecentLogs(ctx, plant.ID, log.ID, recentHistoryLimit)
		if err != nil {
			return nil, fmt.Errorf("fetch care history: %w", err)
		}
		history = fetched
	}

	result, err := j.orc.Execute(ctx, Task{
		Kind:          KindJournalEntry,
		Images:        []string{log.Photo},
		Plant:         &plant,
		Log:           &log,
		HistoryDigest: HistoryDigest(history),
	})
	if err != nil {
		return nil, err
	}

	entry := &models.JournalEntry{
		Title:          stringField(result, "title"),
		Observations:   stringList(result, "observations"),
		GrowthProgress: stringField(result, "growthProgress"),
		HealthNotes:    stringField(result, "healthNotes"),
		NextSteps:      stringList(result, "nextSteps"),
		Identity:       &identity,
	}
	return entry, nil
}

// HistoryDigest formats prior entries as a compact chronological digest,
// one line per event, most recent first.
func HistoryDigest(history []models.CareLog) string {
	if len(history) == 0 {
		return ""
	}
	var b strings.Builder
	for _, h := range history {
		fmt.Fprintf(&b, "%s: %s", h.Timestamp.Format("2006-01-02"), h.CareType)
		if h.Notes != "" {
			fmt.Fprintf(&b, " - %s", h.Notes)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func stringField(r Result, key string) string {
	s, _ := r[key].(string)
	return s
}

func stringList(r Result, key string) []string {
	raw, _ := r[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
