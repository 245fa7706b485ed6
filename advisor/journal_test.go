package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"leafline/logging"
	"leafline/models"
)

type fakeHistory struct {
	logs    []models.CareLog
	err     error
	plantID primitive.ObjectID
	exclude primitive.ObjectID
	limit   int64
	calls   int
}

func (f *fakeHistory) RecentLogs(_ context.Context, plantID, exclude primitive.ObjectID, limit int64) ([]models.CareLog, error) {
	f.calls++
	f.plantID = plantID
	f.exclude = exclude
	f.limit = limit
	return f.logs, f.err
}

func newTestJournal(fake *fakeCompleter, history *fakeHistory) *Journal {
	orc, _ := newTestOrchestrator(fake)
	verifier := NewVerifier(orc, logging.NewNop())
	return NewJournal(orc, verifier, history, logging.NewNop())
}

func testPlant() models.Plant {
	return models.Plant{
		ID:                 primitive.NewObjectID(),
		Name:               "Monstera",
		ScientificName:     "Monstera deliciosa",
		WaterFrequencyDays: 7,
		CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEnrichWithoutPhotoReturnsNil(t *testing.T) {
	fake := &fakeCompleter{replies: []fakeReply{{text: "{}"}}}
	history := &fakeHistory{}
	j := newTestJournal(fake, history)

	entry, err := j.Enrich(context.Background(), models.CareLog{CareType: models.CareWater}, testPlant(), nil)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if entry != nil {
		t.Fatalf("entry: want nil without a photo, got %+v", entry)
	}
	if len(fake.calls) != 0 || history.calls != 0 {
		t.Fatalf("no collaborator may be called without a photo")
	}
}

func TestEnrichFetchesHistoryWhenAbsent(t *testing.T) {
	verifyReply := fakeReply{text: `{"matches": true, "confidence": "high"}`}
	journalReply := fakeReply{text: `{
		"title": "New leaf week",
		"observations": ["a fresh fenestrated leaf", "soil drying evenly"],
		"growthProgress": "noticeably taller than last month"
	}`}
	fake := &fakeCompleter{replies: []fakeReply{verifyReply, journalReply}}

	prior := models.CareLog{
		ID:        primitive.NewObjectID(),
		CareType:  models.CareFertilize,
		Timestamp: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Notes:     "half-strength feed",
	}
	history := &fakeHistory{logs: []models.CareLog{prior}}
	j := newTestJournal(fake, history)

	plant := testPlant()
	log := models.CareLog{
		ID:        primitive.NewObjectID(),
		PlantID:   plant.ID,
		CareType:  models.CareWater,
		Timestamp: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		Photo:     pngDataURI,
	}

	entry, err := j.Enrich(context.Background(), log, plant, nil)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if entry == nil {
		t.Fatalf("entry: want non-nil")
	}
	if entry.Title != "New leaf week" {
		t.Fatalf("Title: got %q", entry.Title)
	}
	if len(entry.Observations) != 2 {
		t.Fatalf("Observations: want 2, got %d", len(entry.Observations))
	}
	if entry.GrowthProgress == "" {
		t.Fatalf("GrowthProgress: want non-empty")
	}
	if entry.Identity == nil || !entry.Identity.Matches || entry.Identity.Confidence != models.ConfidenceHigh {
		t.Fatalf("Identity: got %+v", entry.Identity)
	}

	if history.calls != 1 {
		t.Fatalf("history fetches: want 1, got %d", history.calls)
	}
	if history.limit != 10 {
		t.Fatalf("history limit: want 10, got %d", history.limit)
	}
	if history.plantID != plant.ID {
		t.Fatalf("history plantID: want %s, got %s", plant.ID.Hex(), history.plantID.Hex())
	}
	if history.exclude != log.ID {
		t.Fatalf("history exclude: want the current log id")
	}

	// The journal prompt (second call) carries the history digest.
	if len(fake.calls) != 2 {
		t.Fatalf("inference calls: want 2 (verify + journal), got %d", len(fake.calls))
	}
	if !strings.Contains(fake.calls[1].Prompt, "2024-02-10: fertilize - half-strength feed") {
		t.Fatalf("journal prompt missing history digest: %q", fake.calls[1].Prompt)
	}
}

func TestEnrichSkipsFetchWhenHistorySupplied(t *testing.T) {
	fake := &fakeCompleter{replies: []fakeReply{
		{text: `{"matches": true, "confidence": "medium"}`},
		{text: `{"title":"t","observations":["o"],"growthProgress":"g"}`},
	}}
	history := &fakeHistory{}
	j := newTestJournal(fake, history)

	log := models.CareLog{CareType: models.CareWater, Timestamp: time.Now(), Photo: pngDataURI}
	if _, err := j.Enrich(context.Background(), log, testPlant(), []models.CareLog{}); err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if history.calls != 0 {
		t.Fatalf("history must not be fetched when supplied, got %d calls", history.calls)
	}
}

func TestEnrichHardFailsOnMissingRequiredFields(t *testing.T) {
	fake := &fakeCompleter{replies: []fakeReply{
		{text: `{"matches": true, "confidence": "medium"}`},
		{text: `{"title":"t","observations":["o"]}`}, // no growthProgress
	}}
	history := &fakeHistory{}
	j := newTestJournal(fake, history)

	log := models.CareLog{CareType: models.CareWater, Timestamp: time.Now(), Photo: pngDataURI}
	_, err := j.Enrich(context.Background(), log, testPlant(), []models.CareLog{})
	var mre *MalformedResultError
	if !errors.As(err, &mre) {
		t.Fatalf("want *MalformedResultError, got %v", err)
	}
}

func TestEnrichSurvivesVerificationOutage(t *testing.T) {
	// The verify call errors; enrichment still proceeds with the
	// fail-open identity result.
	fake := &fakeCompleter{replies: []fakeReply{
		{err: ErrNoResponse},
		{text: `{"title":"t","observations":["o"],"growthProgress":"g"}`},
	}}
	history := &fakeHistory{}
	j := newTestJournal(fake, history)

	log := models.CareLog{CareType: models.CareWater, Timestamp: time.Now(), Photo: pngDataURI}
	entry, err := j.Enrich(context.Background(), log, testPlant(), []models.CareLog{})
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if entry.Identity == nil || !entry.Identity.Matches || entry.Identity.Confidence != models.ConfidenceLow {
		t.Fatalf("fail-open identity not attached: %+v", entry.Identity)
	}
}

func TestHistoryDigestFormat(t *testing.T) {
	logs := []models.CareLog{
		{CareType: models.CareWater, Timestamp: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)},
		{CareType: models.CarePrune, Timestamp: time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC), Notes: "trimmed dead leaves"},
	}
	digest := HistoryDigest(logs)
	want := "2024-03-02: water\n2024-02-20: prune - trimmed dead leaves"
	if digest != want {
		t.Fatalf("digest:\nwant %q\ngot  %q", want, digest)
	}
}
