package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive-api/internal/auth"
	"github.com/taskhive/taskhive-api/internal/middleware"
)

// NewRouter wires every endpoint. Everything under /api requires a
// verified bearer token; /health stays open for probes.
func NewRouter(
	logger *zap.Logger,
	verifier auth.Verifier,
	tasks *TaskHandler,
	projects *ProjectHandler,
	attachments *AttachmentHandler,
	dashboard *DashboardHandler,
	corsOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(verifier))

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", tasks.List)
			r.Post("/", tasks.Create)
			// registered before /{id} so "reorder" is never parsed as an id
			r.Put("/reorder", tasks.Reorder)
			r.Get("/{id}", tasks.Get)
			r.Put("/{id}", tasks.Update)
			r.Delete("/{id}", tasks.Delete)

			r.Post("/{id}/attachments", attachments.Upload)
			r.Get("/{id}/attachments", attachments.List)
			r.Delete("/{id}/attachments/{attachmentID}", attachments.Delete)
		})

		r.Route("/api/projects", func(r chi.Router) {
			r.Get("/", projects.List)
			r.Post("/", projects.Create)
			r.Get("/{id}", projects.Get)
			r.Put("/{id}", projects.Update)
			r.Delete("/{id}", projects.Delete)
		})

		r.Get("/api/files/{filename}", attachments.Serve)

		r.Get("/api/dashboard/stats", dashboard.Stats)
		r.Get("/api/analytics", dashboard.Analytics)
	})

	return r
}
