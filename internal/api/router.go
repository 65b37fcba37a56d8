package api

import (
	"net/http"

	"github.com/athebyme/gomarket-platform/catalog-loadgen/pkg/interfaces"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// SetupRouter настраивает маршрутизатор заглушки
func SetupRouter(handler *BulkHandler, logger interfaces.LoggerPort) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chimiddleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/products/bulk", handler.BulkCreate)
		r.Get("/stats", handler.Stats)
	})

	return r
}
