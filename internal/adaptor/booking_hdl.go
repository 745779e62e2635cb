package adaptor

import (
	"encoding/json"
	"net/http"

	"bus-booking/internal/dto/request"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (passenger only)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), callerID, role, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBookedSeats handles GET /api/bookings?busId&bookingDate&time (public)
func (h *BookingHandler) GetBookedSeats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	busID := query.Get("busId")
	bookingDate := query.Get("bookingDate")
	departureTime := query.Get("time")

	if busID == "" || bookingDate == "" || departureTime == "" {
		utils.ResponseBadRequest(w, "busId, bookingDate and time are required", nil)
		return
	}

	seats, err := h.service.GetBookedSeats(r.Context(), busID, bookingDate, departureTime)
	if err != nil {
		writeServiceError(w, h.log, err, "get booked seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// GetBookings handles GET /api/bookings/getbookings (authenticated)
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookings, err := h.service.GetBookings(r.Context(), callerID, role)
	if err != nil {
		writeServiceError(w, h.log, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// CancelBooking handles DELETE /api/bookings/{id} (owner or admin)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	role, _ := utils.GetRoleFromContext(r.Context())

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	if err := h.service.CancelBooking(r.Context(), bookingID, callerID, role); err != nil {
		writeServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", nil)
}
