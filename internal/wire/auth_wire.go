package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public
	r.Post("/api/signup", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// Authenticated
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/logout", authHandler.Logout)
	})

	// Admin: create admin accounts
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(log))

		r.Post("/api/admin/users", authHandler.CreateAdmin)
	})
}
