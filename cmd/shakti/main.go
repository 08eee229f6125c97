package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/antoniostano/shakti/internal/brain"
	"github.com/antoniostano/shakti/internal/config"
	"github.com/antoniostano/shakti/internal/httpapi"
	"github.com/antoniostano/shakti/internal/memory"
	"github.com/antoniostano/shakti/internal/observability"
	"github.com/antoniostano/shakti/internal/persona"
	"github.com/antoniostano/shakti/internal/tools"
	"github.com/antoniostano/shakti/internal/voice"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv load skipped: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	archive, err := memory.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("turn archive init failed: %v", err)
	}
	defer archive.Close()

	provider := selectProvider(cfg)

	dispatcher := tools.NewDispatcher(tools.NewConnectors(tools.Config{
		FulfillmentBaseURL: cfg.FulfillmentURL(),
		GeocodeBaseURL:     cfg.GeocodeBaseURL,
		ForecastBaseURL:    cfg.ForecastBaseURL,
		GNewsBaseURL:       cfg.GNewsBaseURL,
		GNewsAPIKey:        cfg.GNewsAPIKey,
	}), cfg.ToolDispatchTimeout, metrics)

	reasoner, err := brain.NewAdapter(brain.Config{
		Mode:   cfg.BrainMode,
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.ReasonerModel,
	}, dispatcher)
	if err != nil {
		log.Fatalf("reasoner init failed: %v", err)
	}
	switch reasoner.(type) {
	case *brain.MockAdapter:
		log.Printf("reasoner: mock")
	default:
		log.Printf("reasoner: openai (%s)", cfg.ReasonerModel)
	}

	personaLoader := persona.NewLoader(cfg.PersonaPromptPath)

	orchestrator := voice.NewOrchestrator(
		provider,
		provider,
		provider,
		reasoner,
		personaLoader,
		archive,
		metrics,
		voice.OrchestratorConfig{
			StageTimeout: cfg.StageTimeout,
			TTSSpeaker:   cfg.TTSSpeaker,
			TTSModel:     cfg.TTSModel,
			TTSPitch:     cfg.TTSPitch,
			TTSSpeed:     cfg.TTSSpeed,
		},
	)

	api := httpapi.New(cfg, orchestrator, provider, provider, provider, archive, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		log.Printf("server listening on %s", cfg.BindAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Printf("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = httpServer.Close()
	}

	log.Printf("shutdown complete")
}

func selectProvider(cfg config.Config) voice.Provider {
	mode := strings.ToLower(strings.TrimSpace(cfg.ProviderMode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "sarvam":
		if strings.TrimSpace(cfg.SarvamAPIKey) == "" {
			log.Fatalf("PROVIDER_MODE=sarvam but SARVAM_API_KEY is not set")
		}
		log.Printf("speech provider: sarvam")
		return voice.NewSarvamProvider(voice.SarvamConfig{APIKey: cfg.SarvamAPIKey, BaseURL: cfg.SarvamBaseURL})
	case "mock":
		log.Printf("speech provider: mock")
		return voice.NewMockProvider()
	case "auto":
		if strings.TrimSpace(cfg.SarvamAPIKey) != "" {
			log.Printf("speech provider: sarvam")
			return voice.NewSarvamProvider(voice.SarvamConfig{APIKey: cfg.SarvamAPIKey, BaseURL: cfg.SarvamBaseURL})
		}
		log.Printf("speech provider: mock (no sarvam key)")
		return voice.NewMockProvider()
	default:
		log.Fatalf("invalid PROVIDER_MODE: %q (expected auto|sarvam|mock)", cfg.ProviderMode)
		return nil
	}
}
