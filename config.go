package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string
	Env      string

	// Inference service. The API key is validated once at startup by the
	// advisor client constructor; a missing key is fatal.
	InferenceAPIKey  string
	InferenceBaseURL string
	InferenceTimeout time.Duration
	Model            string
	FallbackModel    string
}

func mustConfig() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		MongoURI:         getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getenv("MONGO_DB", "leafline"),
		Port:             getenv("PORT", "8080"),
		Env:              getenv("APP_ENV", "development"),
		InferenceAPIKey:  os.Getenv("OPENAI_API_KEY"),
		InferenceBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com"),
		InferenceTimeout: 60 * time.Second,
		Model:            getenv("OPENAI_MODEL", "gpt-4o"),
		FallbackModel:    getenv("OPENAI_FALLBACK_MODEL", "gpt-4o-mini"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
