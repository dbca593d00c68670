package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	httpadapter "github.com/Adithya-srikar/Ai-interview/internal/adapters/http"
	"github.com/Adithya-srikar/Ai-interview/internal/adapters/llm"
	firestorestore "github.com/Adithya-srikar/Ai-interview/internal/adapters/storage/firestore"
	memstore "github.com/Adithya-srikar/Ai-interview/internal/adapters/storage/memory"
	"github.com/Adithya-srikar/Ai-interview/internal/app/agents"
	"github.com/Adithya-srikar/Ai-interview/internal/app/interview"
	"github.com/Adithya-srikar/Ai-interview/internal/app/report"
	"github.com/Adithya-srikar/Ai-interview/internal/config"
	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg := config.Load()

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("error loading interview settings: %v", err)
	}

	// LLM backend
	var llmClient domain.LLMClient
	switch cfg.LLMBackend {
	case config.LLMOpenAI:
		log.Println("[LLM] Using OpenAI client")
		llmClient = llm.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.Temperature)
	case config.LLMVertex:
		log.Println("[LLM] Using Vertex AI client")
		llmClient, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Vertex AI client: %v", err)
		}
	default:
		log.Println("[LLM] Using MOCK client")
		llmClient = llm.NewMockClient()
	}

	// Storage: Firestore or Memory
	var sessionStore domain.SessionStore
	var transcriptStore domain.TranscriptStore
	var memSessions *memstore.SessionStore

	switch cfg.StorageBackend {
	case "firestore":
		if cfg.GCPProjectID == "" {
			log.Fatal("INTERVIEW_GCP_PROJECT is required for the firestore storage backend")
		}

		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// one store, two interfaces
		sessionStore = fsStore
		transcriptStore = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		memSessions = memstore.NewSessionStore(settings.SessionTTL())
		defer memSessions.Close()

		sessionStore = memSessions
		transcriptStore = memstore.NewTranscriptStore()
	}

	// Role agents over the LLM client
	interviewer := agents.NewInterviewer(llmClient)
	evaluator := agents.NewEvaluator(llmClient)
	prescreener := agents.NewPrescreener(llmClient)
	summarizer := agents.NewSummarizer(llmClient)
	reporter := agents.NewReporter(llmClient)

	interviewSvc := interview.NewService(
		interviewer,
		evaluator,
		prescreener,
		sessionStore,
		transcriptStore,
		interview.Options{
			InitialQuestions:  settings.Interview.InitialQuestions,
			Deadline:          settings.Deadline(),
			FallbackQuestions: settings.Interview.FallbackQuestions,
		},
	)
	reportSvc := report.NewService(transcriptStore, summarizer, reporter)

	// The sweeper starts only once the service can release evicted locks.
	if memSessions != nil {
		memSessions.SetEvictHook(interviewSvc.ReleaseSession)
		memSessions.StartSweeper(settings.SweepInterval())
	}

	handler := httpadapter.NewServer(interviewSvc, reportSvc)

	addr := ":" + cfg.Port
	log.Println("Interview API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
