package entity

import (
	"github.com/google/uuid"
)

// Booking is immutable after create; it is removed on cancellation.
// BookingDate and DepartureTime keep the exact strings the client sent.
type Booking struct {
	BaseSimple
	UserID         uuid.UUID `db:"user_id"`
	BusID          uuid.UUID `db:"bus_id"`
	StartLocation  string    `db:"start_location"`
	EndLocation    string    `db:"end_location"`
	BookingDate    string    `db:"booking_date"`
	DepartureTime  string    `db:"departure_time"`
	Seats          []string  `db:"seats"`
	PassengerName  string    `db:"passenger_name"`
	PassengerPhone string    `db:"passenger_phone"`
	TotalPrice     float64   `db:"total_price"`
}

// ConflictingSeats returns the requested seats already present in the union
// of seats across existing bookings, preserving request order.
func ConflictingSeats(requested []string, existing []*Booking) []string {
	booked := make(map[string]struct{})
	for _, b := range existing {
		for _, seat := range b.Seats {
			booked[seat] = struct{}{}
		}
	}

	var conflicts []string
	for _, seat := range requested {
		if _, ok := booked[seat]; ok {
			conflicts = append(conflicts, seat)
		}
	}
	return conflicts
}

// SeatUnion flattens the seats of all bookings, de-duplicated, in first-seen
// order.
func SeatUnion(bookings []*Booking) []string {
	seen := make(map[string]struct{})
	union := []string{}
	for _, b := range bookings {
		for _, seat := range b.Seats {
			if _, ok := seen[seat]; ok {
				continue
			}
			seen[seat] = struct{}{}
			union = append(union, seat)
		}
	}
	return union
}
