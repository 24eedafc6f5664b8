package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Wardrobe/internal/broker"
)

func NewRouter(b *broker.Broker, adminToken string, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	outfits := NewOutfitsHandler(b)
	scores := NewScoringHandler(b)
	catalog := NewCatalogHandler(b)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", scores.Score)
		r.Get("/agents", scores.Agents)
		r.Get("/agents/{id}/priorities", scores.Priorities)

		r.Get("/outfits", outfits.List)
		r.Get("/outfits/{id}", outfits.Get)
		r.Get("/outfits/{id}/events", outfits.Events)
		r.Get("/outfits/{id}/stats/available", catalog.UnassignedStats)

		r.Get("/stats/available", catalog.AvailableStats)
		r.Get("/worktypes", catalog.WorkTypes)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Post("/outfits", outfits.Create)
			r.Post("/outfits/legacy", outfits.ImportLegacy)
			r.Patch("/outfits/{id}", outfits.Update)
			r.Delete("/outfits/{id}", outfits.Delete)
			r.Post("/outfits/{id}/copy/{src}", outfits.Copy)
			r.Post("/outfits/{id}/temperatures/reset", outfits.ResetTemperatures)

			r.Post("/outfits/{id}/stats", outfits.AddStat)
			r.Patch("/outfits/{id}/stats/{stat}", outfits.SetStatWeight)
			r.Delete("/outfits/{id}/stats/{stat}", outfits.RemoveStat)
			r.Post("/outfits/{id}/stats/{stat}/reset", outfits.ResetStat)

			r.Post("/tick", scores.Tick)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
