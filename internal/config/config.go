package config

import (
	"log"
	"os"
)

type LLMBackend string

const (
	LLMMock   LLMBackend = "mock"
	LLMOpenAI LLMBackend = "openai"
	LLMVertex LLMBackend = "vertex"
)

type Config struct {
	Port string

	LLMBackend LLMBackend

	// OpenAI backend
	OpenAIKey   string
	OpenAIModel string
	Temperature float64

	// Vertex backend
	GCPProjectID string
	GCPLocation  string
	ModelName    string

	StorageBackend string // "memory" or "firestore"

	// Path to the YAML interview settings file.
	SettingsPath string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads all env vars and builds the config.
func Load() *Config {
	backend := LLMBackend(getEnv("INTERVIEW_LLM_BACKEND", "mock"))
	switch backend {
	case LLMMock, LLMOpenAI, LLMVertex:
	default:
		log.Fatalf("unknown INTERVIEW_LLM_BACKEND %q", backend)
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		LLMBackend: backend,

		OpenAIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel: getEnv("MODEL_QA", "gpt-4o-mini"),
		Temperature: 0.3,

		GCPProjectID: getEnv("INTERVIEW_GCP_PROJECT", ""),
		GCPLocation:  getEnv("INTERVIEW_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("INTERVIEW_MODEL_NAME", "gemini-2.5-flash"),

		StorageBackend: getEnv("INTERVIEW_STORAGE_BACKEND", "memory"),

		SettingsPath: getEnv("INTERVIEW_SETTINGS", "config/interview.yaml"),
	}

	// Minimal validation per backend.
	if cfg.LLMBackend == LLMOpenAI && cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY must be set for the openai backend")
	}
	if cfg.LLMBackend == LLMVertex && cfg.GCPProjectID == "" {
		log.Fatal("INTERVIEW_GCP_PROJECT must be set for the vertex backend")
	}

	return cfg
}
