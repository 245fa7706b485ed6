package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(a.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Route("/plants", func(pr chi.Router) {
			pr.Get("/care-needed", a.handleCareNeeded)
			pr.Get("/{id}/schedule", a.handleGetSchedule)
			pr.Post("/{id}/logs/{logId}/enrich", a.handleEnrichLog)
		})

		api.Route("/advisor", func(ar chi.Router) {
			ar.Post("/identify", a.handleIdentify)
			ar.Post("/diagnose", a.handleDiagnose)
			ar.Post("/advice", a.handleAdvice)
			ar.Post("/seasonal-guide", a.handleSeasonalGuide)
			ar.Post("/schedule", a.handleOptimizedSchedule)
			ar.Post("/arrangement", a.handleArrangement)
			ar.Post("/insights", a.handleInsights)
			ar.Post("/ask", a.handleAsk)
			ar.Post("/growth", a.handleGrowthAnalysis)
			ar.Post("/verify-identity", a.handleVerifyIdentity)
		})
	})

	return r
}
