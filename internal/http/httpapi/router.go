package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	appmw "server/internal/middleware"
)

// NewRouter wires middleware and routes around the handler container.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		appmw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		appmw.Logger(app.Logger),
	)
	if len(app.Config.AllowedOrigins) > 0 {
		r.Use(appmw.CORS(app.Config.AllowedOrigins))
	}
	if app.Config.RateLimitPerMin > 0 {
		r.Use(appmw.RateLimit(app.Config.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/images/generate", app.GenerateImage)

	// The filesystem backend stores under StoragePath and advertises URLs
	// under /static; serve them from the same process so development works
	// without a bucket.
	if app.Config.StorageBackend == infra.StorageBackendFilesystem {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(app.Config.StoragePath)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}
