package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreateTx inserts on the caller's transaction so the insert shares the
	// unit of work with the conflict read.
	CreateTx(ctx context.Context, q database.Querier, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByTrip matches the stored date and time strings exactly, no
	// calendar normalization.
	FindByTrip(ctx context.Context, busID uuid.UUID, bookingDate, departureTime string) ([]*entity.Booking, error)
	FindByTripTx(ctx context.Context, q database.Querier, busID uuid.UUID, bookingDate, departureTime string) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, bus_id, start_location, end_location,
		       booking_date, departure_time, seats, passenger_name,
		       passenger_phone, total_price, created_at`

func (r *bookingRepository) CreateTx(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, bus_id, start_location, end_location,
		                      booking_date, departure_time, seats, passenger_name,
		                      passenger_phone, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.BusID,
		booking.StartLocation,
		booking.EndLocation,
		booking.BookingDate,
		booking.DepartureTime,
		booking.Seats,
		booking.PassengerName,
		booking.PassengerPhone,
		booking.TotalPrice,
		booking.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all bookings", zap.Error(err))
		return nil, fmt.Errorf("find all bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) FindByTrip(ctx context.Context, busID uuid.UUID, bookingDate, departureTime string) ([]*entity.Booking, error) {
	return r.findByTrip(ctx, r.db, busID, bookingDate, departureTime)
}

func (r *bookingRepository) FindByTripTx(ctx context.Context, q database.Querier, busID uuid.UUID, bookingDate, departureTime string) ([]*entity.Booking, error) {
	return r.findByTrip(ctx, q, busID, bookingDate, departureTime)
}

func (r *bookingRepository) findByTrip(ctx context.Context, q database.Querier, busID uuid.UUID, bookingDate, departureTime string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE bus_id = $1 AND booking_date = $2 AND departure_time = $3
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, busID, bookingDate, departureTime)
	if err != nil {
		r.log.Error("Failed to find bookings by trip",
			zap.Error(err),
			zap.String("bus_id", busID.String()),
			zap.String("booking_date", bookingDate),
			zap.String("departure_time", departureTime),
		)
		return nil, fmt.Errorf("find bookings for bus %s on %s at %s: %w",
			busID.String(), bookingDate, departureTime, err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.BusID,
		&booking.StartLocation,
		&booking.EndLocation,
		&booking.BookingDate,
		&booking.DepartureTime,
		&booking.Seats,
		&booking.PassengerName,
		&booking.PassengerPhone,
		&booking.TotalPrice,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
