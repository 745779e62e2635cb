package wire

import (
	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/bookings?busId&bookingDate&time - seat availability lookup
	r.Get("/api/bookings", bookingHandler.GetBookedSeats)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/bookings - create new booking (passengers only)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/bookings/getbookings - own bookings, or all for admins
		r.Get("/api/bookings/getbookings", bookingHandler.GetBookings)

		// DELETE /api/bookings/{id} - cancel booking (owner or admin)
		r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)
	})
}
