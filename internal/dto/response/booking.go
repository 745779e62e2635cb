package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	BusID          string    `json:"busId"`
	StartLocation  string    `json:"startLocation"`
	EndLocation    string    `json:"endLocation"`
	BookingDate    string    `json:"bookingDate"`
	Time           string    `json:"time"`
	Seats          []string  `json:"seats"`
	PassengerName  string    `json:"passengerName"`
	PassengerPhone string    `json:"passengerPhone"`
	TotalPrice     float64   `json:"totalPrice"`
	CreatedAt      time.Time `json:"created_at"`
}

type BookedSeatsResponse struct {
	BookedSeats []string `json:"bookedSeats"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:             booking.ID.String(),
		UserID:         booking.UserID.String(),
		BusID:          booking.BusID.String(),
		StartLocation:  booking.StartLocation,
		EndLocation:    booking.EndLocation,
		BookingDate:    booking.BookingDate,
		Time:           booking.DepartureTime,
		Seats:          booking.Seats,
		PassengerName:  booking.PassengerName,
		PassengerPhone: booking.PassengerPhone,
		TotalPrice:     booking.TotalPrice,
		CreatedAt:      booking.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		responses[i] = BookingToResponse(booking)
	}
	return responses
}
