package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/puskesmas-sedau/robot-ssa/internal/pkg/httputil"
)

// AppPasswordHeader carries the operator application password. This is
// the gate in front of the robot itself, separate from the per-operator
// Portal Sehat credentials sent with each batch.
const AppPasswordHeader = "X-App-Password"

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, appPassword string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", AppPasswordHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check (no auth required)
	r.Get("/health", h.HealthCheck)

	// API routes (protected by the application password)
	r.Route("/api", func(r chi.Router) {
		r.Use(requireAppPassword(appPassword))

		r.Post("/upload", h.HandleUploadBatch)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.HandleListHistory)
			r.Get("/stats", h.HandleHistoryStats)
			r.Get("/export", h.HandleExportHistory)
			r.Get("/today", h.HandleTodayHistory)
			r.Get("/today/export", h.HandleExportToday)
		})

		r.Get("/drive-links", h.HandleDriveLinks)
	})

	return r
}

// requireAppPassword rejects requests without the configured application
// password. An empty configured password disables the gate (local use).
func requireAppPassword(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if password != "" {
				got := req.Header.Get(AppPasswordHeader)
				if subtle.ConstantTimeCompare([]byte(got), []byte(password)) != 1 {
					httputil.Unauthorized(w, "password aplikasi salah")
					return
				}
			}
			next.ServeHTTP(w, req)
		})
	}
}
