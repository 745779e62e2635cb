package request

// CreateBookingRequest mirrors the booking form. BookingDate accepts either
// DD-MM-YYYY or ISO YYYY-MM-DD; Time must match a schedule slot exactly.
type CreateBookingRequest struct {
	UserID         string   `json:"userId" validate:"required,uuid4"`
	StartLocation  string   `json:"startLocation" validate:"required"`
	EndLocation    string   `json:"endLocation" validate:"required"`
	BookingDate    string   `json:"bookingDate" validate:"required"`
	Time           string   `json:"time" validate:"required"`
	BusID          string   `json:"busId" validate:"required,uuid4"`
	Seats          []string `json:"seats" validate:"required,min=1,dive,required"`
	PassengerName  string   `json:"passengerName" validate:"required"`
	PassengerPhone string   `json:"passengerPhone" validate:"required"`
	TotalPrice     float64  `json:"totalPrice" validate:"required,gt=0"`
}
