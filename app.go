package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"leafline/advisor"
	"leafline/logging"
	"leafline/store"
)

type App struct {
	cfg   Config
	log   *logging.Logger
	mongo *mongo.Client
	db    *mongo.Database

	plants   *store.Plants
	careLogs *store.CareLogs

	orchestrator *advisor.Orchestrator
	verifier     *advisor.Verifier
	journal      *advisor.Journal
}

func newApp(ctx context.Context, cfg Config, log *logging.Logger) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	plants := store.NewPlants(db.Collection("plants"))
	careLogs := store.NewCareLogs(db.Collection("carelogs"))
	if err := plants.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := careLogs.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	// Fails here when the inference credential is missing; startup is the
	// only place the configuration is checked.
	inference, err := advisor.NewClient(advisor.ClientConfig{
		APIKey:  cfg.InferenceAPIKey,
		BaseURL: cfg.InferenceBaseURL,
		Timeout: cfg.InferenceTimeout,
	}, log)
	if err != nil {
		return nil, err
	}

	orchestrator := advisor.NewOrchestrator(inference, advisor.OrchestratorConfig{
		Model:         cfg.Model,
		FallbackModel: cfg.FallbackModel,
	}, log)
	verifier := advisor.NewVerifier(orchestrator, log)
	journal := advisor.NewJournal(orchestrator, verifier, careLogs, log)

	return &App{
		cfg:          cfg,
		log:          log,
		mongo:        client,
		db:           db,
		plants:       plants,
		careLogs:     careLogs,
		orchestrator: orchestrator,
		verifier:     verifier,
		journal:      journal,
	}, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
