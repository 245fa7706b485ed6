package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"leafline/advisor"
	"leafline/imaging"
	"leafline/models"
)

// advisoryTimeout bounds one advisory request including the orchestrator's
// synchronous retry sleeps.
const advisoryTimeout = 90 * time.Second

// handleIdentify identifies the plant on a photo and returns species plus
// derived care defaults usable to seed a new plant record.
func (a *App) handleIdentify(w http.ResponseWriter, r *http.Request) {
	var req identifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	uri, ok := a.ingestImage(w, req.Image)
	if !ok {
		return
	}
	a.runTask(w, r, advisor.Task{Kind: advisor.KindIdentify, Images: []string{uri}})
}

func (a *App) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	var req diagnoseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	uri, ok := a.ingestImage(w, req.Image)
	if !ok {
		return
	}
	task := advisor.Task{Kind: advisor.KindDiagnose, Images: []string{uri}}
	if req.PlantID != "" {
		plant, ok := a.loadPlant(r.Context(), w, req.PlantID)
		if !ok {
			return
		}
		task.Plant = &plant
	}
	a.runTask(w, r, task)
}

func (a *App) handleAdvice(w http.ResponseWriter, r *http.Request) {
	var req adviceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	plant, ok := a.loadPlant(r.Context(), w, req.PlantID)
	if !ok {
		return
	}
	history, err := a.careLogs.RecentLogs(r.Context(), plant.ID, primitive.NilObjectID, 10)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	a.runTask(w, r, advisor.Task{
		Kind:          advisor.KindPersonalizedAdvice,
		Plant:         &plant,
		Environment:   req.Environment,
		HistoryDigest: advisor.HistoryDigest(history),
	})
}

func (a *App) handleSeasonalGuide(w http.ResponseWriter, r *http.Request) {
	var req seasonalGuideReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	plants, ok := a.loadCollection(r.Context(), w)
	if !ok {
		return
	}
	a.runTask(w, r, advisor.Task{
		Kind:     advisor.KindSeasonalGuide,
		Plants:   plants,
		Location: req.Location,
		Season:   req.Season,
	})
}

func (a *App) handleOptimizedSchedule(w http.ResponseWriter, r *http.Request) {
	var req optimizedScheduleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	plants, ok := a.loadCollection(r.Context(), w)
	if !ok {
		return
	}
	a.runTask(w, r, advisor.Task{
		Kind:         advisor.KindOptimizedSchedule,
		Plants:       plants,
		Availability: req.Availability,
	})
}

func (a *App) handleArrangement(w http.ResponseWriter, r *http.Request) {
	plants, ok := a.loadCollection(r.Context(), w)
	if !ok {
		return
	}
	a.runTask(w, r, advisor.Task{Kind: advisor.KindArrangement, Plants: plants})
}

func (a *App) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	task := advisor.Task{Kind: advisor.KindCommunityInsights, Topic: req.Topic}
	if req.PlantID != "" {
		plant, ok := a.loadPlant(r.Context(), w, req.PlantID)
		if !ok {
			return
		}
		task.Plant = &plant
	}
	a.runTask(w, r, task)
}

func (a *App) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}
	task := advisor.Task{Kind: advisor.KindCareAnswer, Question: req.Question}
	if req.PlantID != "" {
		plant, ok := a.loadPlant(r.Context(), w, req.PlantID)
		if !ok {
			return
		}
		task.Plant = &plant
	}
	a.runTask(w, r, task)
}

func (a *App) handleGrowthAnalysis(w http.ResponseWriter, r *http.Request) {
	var req growthReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(req.Images) < 2 {
		http.Error(w, "at least two images are required (oldest, newest)", http.StatusBadRequest)
		return
	}
	plant, ok := a.loadPlant(r.Context(), w, req.PlantID)
	if !ok {
		return
	}
	images := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		uri, ok := a.ingestImage(w, img)
		if !ok {
			return
		}
		images = append(images, uri)
	}
	a.runTask(w, r, advisor.Task{
		Kind:   advisor.KindGrowthAnalysis,
		Plant:  &plant,
		Images: images,
	})
}

func (a *App) handleVerifyIdentity(w http.ResponseWriter, r *http.Request) {
	var req verifyIdentityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ExpectedName) == "" {
		http.Error(w, "expectedName is required", http.StatusBadRequest)
		return
	}
	uri, ok := a.ingestImage(w, req.Image)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), advisoryTimeout)
	defer cancel()

	// Fail-open by contract: this never returns an error.
	check := a.verifier.VerifyIdentity(ctx, uri, req.ExpectedName, req.ExpectedScientificName)
	_ = json.NewEncoder(w).Encode(check)
}

// ---- helpers ----

// runTask executes an advisory task and writes the validated result.
func (a *App) runTask(w http.ResponseWriter, r *http.Request, task advisor.Task) {
	ctx, cancel := context.WithTimeout(r.Context(), advisoryTimeout)
	defer cancel()

	result, err := a.orchestrator.Execute(ctx, task)
	if err != nil {
		a.writeAdvisorError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(result)
}

// ingestImage normalizes a base64 or data-URI payload through the imaging
// pipeline and writes the HTTP error itself on failure.
func (a *App) ingestImage(w http.ResponseWriter, payload string) (string, bool) {
	s := strings.TrimSpace(payload)
	if s == "" {
		http.Error(w, "image is required", http.StatusBadRequest)
		return "", false
	}
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:image/") && i > 0 {
		s = s[i+len(";base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		http.Error(w, "image must be base64 encoded", http.StatusBadRequest)
		return "", false
	}
	uri, err := imaging.Ingest(raw, imaging.DefaultMaxMB)
	if err != nil {
		var sle *imaging.SizeLimitError
		if errors.As(err, &sle) {
			http.Error(w, sle.Error(), http.StatusRequestEntityTooLarge)
			return "", false
		}
		http.Error(w, "image processing failed", http.StatusBadRequest)
		return "", false
	}
	return uri, true
}

func (a *App) loadPlant(ctx context.Context, w http.ResponseWriter, idStr string) (models.Plant, bool) {
	oid, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		http.Error(w, "bad plant id", http.StatusBadRequest)
		return models.Plant{}, false
	}
	plant, err := a.plants.GetPlant(ctx, oid)
	if err != nil {
		http.Error(w, "plant not found", http.StatusNotFound)
		return models.Plant{}, false
	}
	return plant, true
}

func (a *App) loadCollection(ctx context.Context, w http.ResponseWriter) ([]models.Plant, bool) {
	plants, err := a.plants.GetPlants(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return nil, false
	}
	if len(plants) == 0 {
		http.Error(w, "no plants in collection", http.StatusBadRequest)
		return nil, false
	}
	return plants, true
}

// writeAdvisorError maps advisory failure classes onto HTTP statuses so the
// presentation layer can tell "try again" from "feature unavailable" from
// "your input is invalid".
func (a *App) writeAdvisorError(w http.ResponseWriter, err error) {
	var sle *imaging.SizeLimitError
	var mre *advisor.MalformedResultError
	switch {
	case errors.As(err, &sle):
		http.Error(w, sle.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, advisor.ErrRateLimitExhausted):
		http.Error(w, "advisor is rate limited, try again later", http.StatusTooManyRequests)
	case errors.Is(err, advisor.ErrImageFormat):
		http.Error(w, "image reference is not usable", http.StatusBadRequest)
	case errors.As(err, &mre):
		http.Error(w, mre.Error(), http.StatusBadGateway)
	default:
		a.log.Error("advisory call failed", "error", err.Error())
		http.Error(w, "advisor unavailable", http.StatusBadGateway)
	}
}
