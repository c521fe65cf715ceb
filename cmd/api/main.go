package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"google.golang.org/genai"

	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/packshot"
	"server/internal/pipeline"
	imageprovider "server/internal/providers/image"
	"server/internal/providers/prompt"
	"server/internal/storage"
)

func main() {
	// Load .env (optional).
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	client, err := newGenAIClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create genai client")
	}

	prompts, err := prompt.NewGeminiGenerator(client, cfg.GeminiModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create prompt generator")
	}
	backgrounds, err := imageprovider.NewImagenGenerator(client, cfg.ImagenModel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create background generator")
	}

	store, err := newStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	app := handlers.NewApp(cfg, logger, &pipeline.Pipeline{
		Prompts:     prompts,
		Backgrounds: backgrounds,
		Packshots:   packshot.NewFetcher(cfg.PackshotTimeout, cfg.PackshotMaxBytes),
		Store:       store,
		Logger:      logger,
	})

	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("location", cfg.Location).
			Str("backend", cfg.StorageBackend).
			Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// newGenAIClient selects the Vertex backend when a project is configured and
// falls back to the public Gemini API with an API key otherwise.
func newGenAIClient(ctx context.Context, cfg *infra.Config) (*genai.Client, error) {
	if cfg.ProjectID != "" {
		return genai.NewClient(ctx, &genai.ClientConfig{
			Project:  cfg.ProjectID,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		})
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
}

func newStore(ctx context.Context, cfg *infra.Config) (storage.Store, error) {
	if cfg.StorageBackend == infra.StorageBackendFilesystem {
		return storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	}
	return storage.NewGCSStore(ctx, cfg.OutputBucket)
}
