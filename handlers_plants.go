package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"leafline/schedule"
	"leafline/store"
)

// handleGetSchedule returns the derived next-due dates for one plant.
func (a *App) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plant, ok := a.loadPlant(ctx, w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	next := schedule.ComputeNextDates(plant)
	plant.NextWatering = next.NextWatering
	plant.NextFertilizing = next.NextFertilizing
	_ = json.NewEncoder(w).Encode(plant)
}

// handleCareNeeded partitions the whole collection by which care is due now.
func (a *App) handleCareNeeded(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	plants, err := a.plants.GetPlants(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	part := schedule.PartitionByCareNeeded(plants, time.Now().UTC())
	_ = json.NewEncoder(w).Encode(part)
}

// handleEnrichLog runs journal enrichment for a care log and persists the
// result into the log's metadata. A log without a photo yields a null entry;
// enrichment is a photo-only feature.
func (a *App) handleEnrichLog(w http.ResponseWriter, r *http.Request) {
	plantID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "bad plant id", http.StatusBadRequest)
		return
	}
	logID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "logId"))
	if err != nil {
		http.Error(w, "bad log id", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), advisoryTimeout)
	defer cancel()

	plant, err := a.plants.GetPlant(ctx, plantID)
	if err != nil {
		http.Error(w, "plant not found", http.StatusNotFound)
		return
	}
	log, err := a.careLogs.GetLog(ctx, logID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "care log not found", http.StatusNotFound)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	if log.PlantID != plant.ID {
		http.Error(w, "care log does not belong to plant", http.StatusBadRequest)
		return
	}

	entry, err := a.journal.Enrich(ctx, log, plant, nil)
	if err != nil {
		a.writeAdvisorError(w, err)
		return
	}
	if entry == nil {
		_ = json.NewEncoder(w).Encode(nil)
		return
	}

	if _, err := a.careLogs.AttachMetadata(ctx, log.ID, "journal", entry); err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(entry)
}
