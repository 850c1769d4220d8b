package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/kponna/jobfitai/internal/config"
	"github.com/kponna/jobfitai/internal/services"
)

var rootCmd = &cobra.Command{
	Use:   "jobfit",
	Short: "Match a resume against a job description",
	Long:  "JobFit extracts text from a PDF, DOCX or recorded resume and asks a hosted language model for a profile analysis and job-fit recommendations.",
	// With no subcommand the HTTP server runs.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app holds everything a command needs once the pipeline is wired.
type app struct {
	cfg      *config.Config
	pipeline *services.Pipeline
	worker   services.TranscriptionWorker
}

// setupApp wires the pipeline from configuration and starts the
// transcription worker. Callers must call close when done.
func setupApp(ctx context.Context, cfg *config.Config) (*app, error) {
	httpClient := &http.Client{Timeout: 5 * time.Minute}

	client, err := setupModelClient(ctx, cfg, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model client: %w", err)
	}
	log.Printf("✅ Model client ready (%s, %s)\n", cfg.LLM.Provider, cfg.LLM.Model)

	backend, err := setupSpeechBackend(ctx, cfg, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech backend: %w", err)
	}
	log.Printf("✅ Speech backend ready (%s)\n", cfg.Transcriber.Provider)

	worker := services.NewTranscriptionWorker(backend, cfg.Transcriber.Concurrency)
	worker.Start(ctx)

	prompts := services.NewPromptBuilder()
	profile := services.NewProfileAnalyzer(client, prompts)
	pipeline := services.NewPipeline(
		setupResumeSource(ctx, cfg),
		services.NewResumeNormalizer(
			services.NewPDFParserService(),
			services.NewDOCXParserService(),
			services.NewAudioTranscriber(worker),
		),
		profile,
		services.NewFitEvaluator(profile, prompts),
	)
	log.Println("✅ Pipeline initialized")

	return &app{cfg: cfg, pipeline: pipeline, worker: worker}, nil
}

func (a *app) close() {
	a.worker.Stop()
}

func setupModelClient(ctx context.Context, cfg *config.Config, httpClient *http.Client) (services.ModelClient, error) {
	var client services.ModelClient
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, httpClient)
		if err != nil {
			return nil, err
		}
		client = gemini
	case config.ProviderDeepInfra, config.ProviderOpenAI:
		chat, err := services.NewChatClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, httpClient)
		if err != nil {
			return nil, err
		}
		client = chat
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}

	return services.WithRetry(client, cfg.LLM.MaxAttempts, 2*time.Second), nil
}

func setupSpeechBackend(ctx context.Context, cfg *config.Config, httpClient *http.Client) (services.SpeechBackend, error) {
	tc := cfg.Transcriber
	switch tc.Provider {
	case config.ProviderGemini:
		return services.NewGeminiClient(ctx, tc.APIKey, tc.Model, tc.BaseURL, httpClient)
	case config.ProviderWhisper:
		return services.NewWhisperBackend(tc.BaseURL, tc.APIKey, tc.WhisperModel(), httpClient)
	default:
		return nil, fmt.Errorf("unknown transcriber provider %q", tc.Provider)
	}
}

// setupResumeSource enables s3:// resume locations when an AWS config can be
// loaded, and falls back to local paths only.
func setupResumeSource(ctx context.Context, cfg *config.Config) services.ResumeSource {
	store, err := services.NewS3FileStore(ctx, services.S3Config{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		log.Printf("⚠️  S3 resume source disabled: %v\n", err)
		return services.LocalSource{}
	}
	return services.NewS3Source(store, cfg.Storage.UploadPath)
}
