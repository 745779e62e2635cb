package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBus(
	r chi.Router,
	busHandler *adaptor.BusHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Browsing buses and their schedules needs no login
	r.Get("/api/buses", busHandler.GetBuses)
	r.Get("/api/buses/{id}", busHandler.GetBusByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/buses", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/", busHandler.CreateBus)
		r.Put("/{id}", busHandler.UpdateBus)
		r.Delete("/{id}", busHandler.DeleteBus)
	})
}
