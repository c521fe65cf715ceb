package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backend identifiers accepted by STORAGE_BACKEND.
const (
	StorageBackendGCS        = "gcs"
	StorageBackendFilesystem = "filesystem"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv string
	Port   string

	// Vertex AI / Gemini API. When ProjectID is set the Vertex backend is
	// used; otherwise GeminiAPIKey selects the public Gemini API.
	ProjectID    string
	Location     string
	GeminiAPIKey string
	GeminiModel  string
	ImagenModel  string

	// Output storage.
	StorageBackend string
	OutputBucket   string
	StoragePath    string
	StorageBaseURL string

	// Packshot download limits.
	PackshotTimeout  time.Duration
	PackshotMaxBytes int64

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
	AllowedOrigins   []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		ProjectID:        os.Getenv("PROJECT_ID"),
		Location:         getEnv("LOCATION", "europe-west1"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ImagenModel:      getEnv("IMAGEN_MODEL", "imagen-3.0-generate-002"),
		StorageBackend:   getEnv("STORAGE_BACKEND", StorageBackendGCS),
		OutputBucket:     os.Getenv("GCS_OUTPUT_BUCKET"),
		StoragePath:      getEnv("STORAGE_PATH", "./data/generated"),
		StorageBaseURL:   getEnv("STORAGE_BASE_URL", "http://localhost:8080/static"),
		PackshotTimeout:  time.Second * time.Duration(getEnvInt("PACKSHOT_TIMEOUT_SECONDS", 10)),
		PackshotMaxBytes: int64(getEnvInt("PACKSHOT_MAX_BYTES", 20<<20)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		AllowedOrigins:   splitCSV(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.ProjectID == "" && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("either PROJECT_ID or GEMINI_API_KEY is required")
	}

	switch cfg.StorageBackend {
	case StorageBackendGCS:
		if cfg.OutputBucket == "" {
			return nil, fmt.Errorf("GCS_OUTPUT_BUCKET is required when STORAGE_BACKEND=gcs")
		}
	case StorageBackendFilesystem:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
