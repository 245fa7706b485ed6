// Package schedule derives care due-dates from plant care profiles.
// It is pure date arithmetic, independent of the advisory pipeline.
package schedule

import (
	"time"

	"leafline/models"
)

// NextDates carries the derived next-due instants. A nil date means the
// track has no valid anchor (or, for fertilizing, no schedule at all).
type NextDates struct {
	NextWatering    *time.Time `json:"nextWatering"`
	NextFertilizing *time.Time `json:"nextFertilizing"`
}

// Partition groups plants by which care they currently need.
type Partition struct {
	NeedsWater      []models.Plant `json:"needsWater"`
	NeedsFertilizer []models.Plant `json:"needsFertilizer"`
}

// ComputeNextDates derives next watering/fertilizing dates for a plant.
// The anchor is the last care date when present, else the creation date.
// Invalid anchors yield a nil date rather than an error; a zero
// FertilizerFrequencyDays disables the fertilizing track unconditionally.
func ComputeNextDates(p models.Plant) NextDates {
	var out NextDates
	if anchor, ok := anchorDate(p.LastWateredAt, p.CreatedAt); ok {
		next := anchor.AddDate(0, 0, p.WaterFrequencyDays)
		out.NextWatering = &next
	}
	if p.FertilizerFrequencyDays > 0 {
		if anchor, ok := anchorDate(p.LastFertilizedAt, p.CreatedAt); ok {
			next := anchor.AddDate(0, 0, p.FertilizerFrequencyDays)
			out.NextFertilizing = &next
		}
	}
	return out
}

// PartitionByCareNeeded splits plants into those due for water and those due
// for fertilizer at the given instant. Due exactly now counts as needing
// care; overdue is not distinguished from due.
func PartitionByCareNeeded(plants []models.Plant, now time.Time) Partition {
	var out Partition
	for _, p := range plants {
		next := ComputeNextDates(p)
		if dueAt(next.NextWatering, now) {
			out.NeedsWater = append(out.NeedsWater, p)
		}
		if dueAt(next.NextFertilizing, now) {
			out.NeedsFertilizer = append(out.NeedsFertilizer, p)
		}
	}
	return out
}

// anchorDate picks the last-care date when it is a valid instant, falling
// back to the creation date. Reports false when neither is usable.
func anchorDate(last *time.Time, created time.Time) (time.Time, bool) {
	if last != nil && !last.IsZero() {
		return *last, true
	}
	if !created.IsZero() {
		return created, true
	}
	return time.Time{}, false
}

func dueAt(next *time.Time, now time.Time) bool {
	return next != nil && !next.After(now)
}
