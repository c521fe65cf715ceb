package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"server/internal/infra"
	"server/internal/pipeline"
)

// Runner abstracts the image generation pipeline so handler tests can swap in
// stubs.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// App is the handler container holding the dependencies shared across routes.
type App struct {
	Config   *infra.Config
	Logger   infra.Logger
	Pipeline Runner
}

// NewApp builds the handler container.
func NewApp(cfg *infra.Config, logger infra.Logger, p Runner) *App {
	return &App{Config: cfg, Logger: logger, Pipeline: p}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message, details string) {
	a.json(w, code, errorResponse{Error: message, Details: details})
}
