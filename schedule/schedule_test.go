package schedule

import (
	"testing"
	"time"

	"leafline/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeNextDatesFromLastWatered(t *testing.T) {
	last := date("2024-01-01")
	p := models.Plant{
		WaterFrequencyDays: 7,
		LastWateredAt:      &last,
		CreatedAt:          date("2023-06-15"),
	}
	next := ComputeNextDates(p)
	if next.NextWatering == nil {
		t.Fatalf("NextWatering: expected non-nil")
	}
	want := date("2024-01-08")
	if !next.NextWatering.Equal(want) {
		t.Fatalf("NextWatering: want=%v got=%v", want, *next.NextWatering)
	}
}

func TestComputeNextDatesFallsBackToCreatedAt(t *testing.T) {
	p := models.Plant{
		WaterFrequencyDays: 7,
		CreatedAt:          date("2024-03-01"),
	}
	next := ComputeNextDates(p)
	if next.NextWatering == nil {
		t.Fatalf("NextWatering: expected non-nil via createdAt anchor")
	}
	want := date("2024-03-08")
	if !next.NextWatering.Equal(want) {
		t.Fatalf("NextWatering: want=%v got=%v", want, *next.NextWatering)
	}
}

func TestComputeNextDatesNoValidAnchor(t *testing.T) {
	p := models.Plant{WaterFrequencyDays: 3}
	next := ComputeNextDates(p)
	if next.NextWatering != nil {
		t.Fatalf("NextWatering: expected nil for zero anchors, got %v", *next.NextWatering)
	}
}

func TestComputeNextDatesZeroFertilizerFrequency(t *testing.T) {
	last := date("2024-01-01")
	p := models.Plant{
		WaterFrequencyDays:      7,
		FertilizerFrequencyDays: 0,
		LastFertilizedAt:        &last,
		CreatedAt:               date("2023-12-01"),
	}
	next := ComputeNextDates(p)
	if next.NextFertilizing != nil {
		t.Fatalf("NextFertilizing: expected nil when frequency is 0, got %v", *next.NextFertilizing)
	}
}

func TestComputeNextDatesFertilizerFromCreatedAt(t *testing.T) {
	p := models.Plant{
		WaterFrequencyDays:      7,
		FertilizerFrequencyDays: 30,
		CreatedAt:               date("2024-01-01"),
	}
	next := ComputeNextDates(p)
	if next.NextFertilizing == nil {
		t.Fatalf("NextFertilizing: expected non-nil")
	}
	want := date("2024-01-31")
	if !next.NextFertilizing.Equal(want) {
		t.Fatalf("NextFertilizing: want=%v got=%v", want, *next.NextFertilizing)
	}
}

func TestPartitionByCareNeeded(t *testing.T) {
	last := date("2024-01-01")
	p := models.Plant{
		Name:               "Monstera",
		WaterFrequencyDays: 7,
		LastWateredAt:      &last,
		CreatedAt:          date("2023-11-01"),
	}

	// Due 2024-01-08; at 2024-01-10 it needs water.
	part := PartitionByCareNeeded([]models.Plant{p}, date("2024-01-10"))
	if len(part.NeedsWater) != 1 {
		t.Fatalf("NeedsWater at 2024-01-10: want 1 plant, got %d", len(part.NeedsWater))
	}

	// At 2024-01-05 it does not.
	part = PartitionByCareNeeded([]models.Plant{p}, date("2024-01-05"))
	if len(part.NeedsWater) != 0 {
		t.Fatalf("NeedsWater at 2024-01-05: want 0 plants, got %d", len(part.NeedsWater))
	}

	// Due exactly now counts as needing care.
	part = PartitionByCareNeeded([]models.Plant{p}, date("2024-01-08"))
	if len(part.NeedsWater) != 1 {
		t.Fatalf("NeedsWater at due instant: want 1 plant, got %d", len(part.NeedsWater))
	}
}

func TestPartitionFertilizerTrack(t *testing.T) {
	lastF := date("2024-01-01")
	plants := []models.Plant{
		{
			Name:                    "Ficus",
			WaterFrequencyDays:      5,
			FertilizerFrequencyDays: 14,
			LastFertilizedAt:        &lastF,
			CreatedAt:               date("2023-10-01"),
		},
		{
			Name:                    "Cactus",
			WaterFrequencyDays:      20,
			FertilizerFrequencyDays: 0,
			CreatedAt:               date("2023-10-01"),
		},
	}
	part := PartitionByCareNeeded(plants, date("2024-02-01"))
	if len(part.NeedsFertilizer) != 1 {
		t.Fatalf("NeedsFertilizer: want 1 plant, got %d", len(part.NeedsFertilizer))
	}
	if part.NeedsFertilizer[0].Name != "Ficus" {
		t.Fatalf("NeedsFertilizer: want Ficus, got %s", part.NeedsFertilizer[0].Name)
	}
}
