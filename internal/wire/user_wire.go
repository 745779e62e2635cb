package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/user - current profile
		r.Get("/api/user", userHandler.GetProfile)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		// GET /api/admin/users - list all users (admin)
		r.Get("/api/admin/users", userHandler.GetAllUsers)
	})
}
