package usecase

import (
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/database"
	"bus-booking/pkg/mailer"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Bus     BusService
	Booking BookingService
}

func NewService(repo *repository.Repository, db database.PgxIface, mail mailer.Mailer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, log),
		User:    NewUserService(repo.User, log),
		Bus:     NewBusService(repo.Bus, log),
		Booking: NewBookingService(repo, db, mail, config.Support, log),
	}
}
