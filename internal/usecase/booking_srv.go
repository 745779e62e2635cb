package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/database"
	"bus-booking/pkg/mailer"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// cancelWindow: a booking cannot be cancelled this close to departure.
const cancelWindow = 2 * time.Hour

type BookingService interface {
	// CreateBooking reserves seats for a passenger. The existence, schedule,
	// conflict checks and the insert run in one serializable transaction.
	CreateBooking(ctx context.Context, callerID uuid.UUID, callerRole string, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// GetBookedSeats returns the seat union for an exact (bus, date, time)
	// triple. Public.
	GetBookedSeats(ctx context.Context, busID, bookingDate, departureTime string) (*response.BookedSeatsResponse, error)

	// GetBookings lists the caller's bookings, or all bookings for admins.
	GetBookings(ctx context.Context, callerID uuid.UUID, callerRole string) ([]response.BookingResponse, error)

	// CancelBooking deletes a booking if the caller owns it (or is admin)
	// and departure is more than the cancel window away.
	CancelBooking(ctx context.Context, bookingID string, callerID uuid.UUID, callerRole string) error
}

type bookingService struct {
	repo    *repository.Repository
	db      database.PgxIface
	mail    mailer.Mailer
	support utils.SupportConfig
	log     *zap.Logger
	now     func() time.Time
}

func NewBookingService(repo *repository.Repository, db database.PgxIface, mail mailer.Mailer, support utils.SupportConfig, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		db:      db,
		mail:    mail,
		support: support,
		log:     log.With(zap.String("service", "booking")),
		now:     time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, callerID uuid.UUID, callerRole string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Only passengers may book
	if callerRole != string(entity.RolePassenger) {
		return nil, fmt.Errorf("%w: please login as a passenger to make bookings", ErrAuthorization)
	}

	// 2. All fields required
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID format %s", ErrValidation, req.UserID)
	}

	busID, err := uuid.Parse(req.BusID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus ID format %s", ErrValidation, req.BusID)
	}

	requestedDate, err := utils.ParseBookingDate(req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking date %s", ErrValidation, req.BookingDate)
	}

	// Single unit of work: two racing requests for overlapping seats cannot
	// both commit under serializable isolation.
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		s.log.Error("Failed to begin booking transaction", zap.Error(err))
		return nil, fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 3. User must exist
	user, err := s.repo.User.FindByIDTx(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	// 4. Bus must exist
	bus, err := s.repo.Bus.FindByIDTx(ctx, tx, busID)
	if err != nil {
		return nil, fmt.Errorf("check bus: %w", err)
	}
	if bus == nil {
		return nil, fmt.Errorf("%w: bus not found", ErrNotFound)
	}

	// 5. Schedule must have the date, compared as calendar dates so
	// "15-03-2025" matches "2025-03-15"
	entry := bus.FindScheduleEntry(func(storedDate string) bool {
		d, err := utils.ParseBookingDate(storedDate)
		return err == nil && d.Equal(requestedDate)
	})
	if entry == nil {
		return nil, fmt.Errorf("%w: bus not available on selected date", ErrValidation)
	}

	// 6. Slot start time must match exactly
	if !entry.HasTimeSlot(req.Time) {
		return nil, fmt.Errorf("%w: bus not available at selected time", ErrValidation)
	}

	// 7. No requested seat may already be booked for this trip. The trip
	// lookup matches the stored date string verbatim.
	existing, err := s.repo.Booking.FindByTripTx(ctx, tx, busID, req.BookingDate, req.Time)
	if err != nil {
		return nil, fmt.Errorf("check seat availability: %w", err)
	}

	if conflicts := entity.ConflictingSeats(req.Seats, existing); len(conflicts) > 0 {
		s.log.Warn("Seat conflict on booking attempt",
			zap.String("bus_id", req.BusID),
			zap.String("booking_date", req.BookingDate),
			zap.String("time", req.Time),
			zap.Strings("conflicting_seats", conflicts),
		)
		return nil, fmt.Errorf("%w: seats %s are already booked", ErrSeatConflict, strings.Join(conflicts, ", "))
	}

	// 8. Seat count within bus capacity
	if len(req.Seats) > bus.NoOfSeats {
		return nil, fmt.Errorf("%w: selected seats exceed bus capacity", ErrValidation)
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		UserID:         userID,
		BusID:          busID,
		StartLocation:  req.StartLocation,
		EndLocation:    req.EndLocation,
		BookingDate:    req.BookingDate,
		DepartureTime:  req.Time,
		Seats:          req.Seats,
		PassengerName:  req.PassengerName,
		PassengerPhone: req.PassengerPhone,
		TotalPrice:     req.TotalPrice,
	}

	if err := s.repo.Booking.CreateTx(ctx, tx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("commit booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("bus_id", busID.String()),
		zap.Strings("seats", booking.Seats),
		zap.Float64("total_price", booking.TotalPrice),
	)

	// Confirmation mail after commit. A delivery failure must not void the
	// reservation, so it runs detached and only logs.
	go s.sendConfirmation(user.Email, booking)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBookedSeats(ctx context.Context, busID, bookingDate, departureTime string) (*response.BookedSeatsResponse, error) {
	id, err := uuid.Parse(busID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus ID format %s", ErrValidation, busID)
	}

	bookings, err := s.repo.Booking.FindByTrip(ctx, id, bookingDate, departureTime)
	if err != nil {
		s.log.Error("Failed to get booked seats",
			zap.Error(err),
			zap.String("bus_id", busID),
		)
		return nil, fmt.Errorf("get booked seats: %w", err)
	}

	return &response.BookedSeatsResponse{BookedSeats: entity.SeatUnion(bookings)}, nil
}

func (s *bookingService) GetBookings(ctx context.Context, callerID uuid.UUID, callerRole string) ([]response.BookingResponse, error) {
	var (
		bookings []*entity.Booking
		err      error
	)

	switch callerRole {
	case string(entity.RolePassenger):
		bookings, err = s.repo.Booking.FindByUserID(ctx, callerID)
	case string(entity.RoleAdmin):
		bookings, err = s.repo.Booking.FindAll(ctx)
	default:
		return nil, fmt.Errorf("%w: please login to view bookings", ErrAuthorization)
	}

	if err != nil {
		s.log.Error("Failed to get bookings",
			zap.Error(err),
			zap.String("caller_id", callerID.String()),
			zap.String("role", callerRole),
		)
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, callerID uuid.UUID, callerRole string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("%w: invalid booking ID format %s", ErrValidation, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return fmt.Errorf("%w: booking not found", ErrNotFound)
	}

	// Only the owner or an admin may cancel
	if booking.UserID != callerID && callerRole != string(entity.RoleAdmin) {
		s.log.Warn("Cancellation attempt by non-owner",
			zap.String("booking_id", bookingID),
			zap.String("caller_id", callerID.String()),
		)
		return fmt.Errorf("%w: you can only cancel your own bookings", ErrAuthorization)
	}

	departure, err := utils.ParseDeparture(booking.BookingDate, booking.DepartureTime)
	if err != nil {
		s.log.Error("Stored booking has unparsable departure",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("booking_date", booking.BookingDate),
			zap.String("time", booking.DepartureTime),
		)
		return fmt.Errorf("parse departure for booking %s: %w", bookingID, err)
	}

	if departure.Sub(s.now()) <= cancelWindow {
		return fmt.Errorf("%w: cannot cancel within 2 hours of departure", ErrValidation)
	}

	if err := s.repo.Booking.Delete(ctx, id); err != nil {
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("caller_id", callerID.String()),
	)
	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) sendConfirmation(email string, booking *entity.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	details := mailer.BookingDetails{
		CustomerName:   booking.PassengerName,
		BookingID:      booking.ID.String(),
		Route:          fmt.Sprintf("%s → %s", booking.StartLocation, booking.EndLocation),
		BookingDate:    booking.BookingDate,
		BookingTime:    booking.DepartureTime,
		Seats:          strings.Join(booking.Seats, ", "),
		Amount:         fmt.Sprintf("Rs. %.2f", booking.TotalPrice),
		BookingLink:    fmt.Sprintf("%s/ticket/%s", s.support.ClientURL, booking.ID.String()),
		SupportPhone:   s.support.Phone,
		SupportEmail:   s.support.Email,
		CompanyName:    s.support.CompanyName,
		CompanyAddress: s.support.CompanyAddress,
	}

	if err := s.mail.SendBookingConfirmation(ctx, email, details); err != nil {
		s.log.Error("Failed to send booking confirmation",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("email", email),
		)
	}
}
