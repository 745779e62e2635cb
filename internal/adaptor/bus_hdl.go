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

type BusHandler struct {
	service usecase.BusService
	log     *zap.Logger
}

func NewBusHandler(service usecase.BusService, log *zap.Logger) *BusHandler {
	return &BusHandler{
		service: service,
		log:     log.With(zap.String("handler", "bus")),
	}
}

// GetBuses handles GET /api/buses (public)
func (h *BusHandler) GetBuses(w http.ResponseWriter, r *http.Request) {
	buses, err := h.service.GetBuses(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get buses")
		return
	}

	utils.ResponseSuccess(w, "success", buses)
}

// GetBusByID handles GET /api/buses/{id} (public)
func (h *BusHandler) GetBusByID(w http.ResponseWriter, r *http.Request) {
	busID := chi.URLParam(r, "id")
	if busID == "" {
		utils.ResponseBadRequest(w, "Bus ID is required", nil)
		return
	}

	bus, err := h.service.GetBusByID(r.Context(), busID)
	if err != nil {
		writeServiceError(w, h.log, err, "get bus by ID")
		return
	}

	utils.ResponseSuccess(w, "success", bus)
}

// CreateBus handles POST /api/admin/buses (admin only)
func (h *BusHandler) CreateBus(w http.ResponseWriter, r *http.Request) {
	role, _ := utils.GetRoleFromContext(r.Context())

	var req request.CreateBusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	bus, err := h.service.CreateBus(r.Context(), role, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create bus")
		return
	}

	utils.ResponseCreated(w, "success", bus)
}

// UpdateBus handles PUT /api/admin/buses/{id} (admin only)
func (h *BusHandler) UpdateBus(w http.ResponseWriter, r *http.Request) {
	role, _ := utils.GetRoleFromContext(r.Context())

	busID := chi.URLParam(r, "id")
	if busID == "" {
		utils.ResponseBadRequest(w, "Bus ID is required", nil)
		return
	}

	var req request.UpdateBusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	bus, err := h.service.UpdateBus(r.Context(), role, busID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update bus")
		return
	}

	utils.ResponseSuccess(w, "success", bus)
}

// DeleteBus handles DELETE /api/admin/buses/{id} (admin only)
func (h *BusHandler) DeleteBus(w http.ResponseWriter, r *http.Request) {
	role, _ := utils.GetRoleFromContext(r.Context())

	busID := chi.URLParam(r, "id")
	if busID == "" {
		utils.ResponseBadRequest(w, "Bus ID is required", nil)
		return
	}

	if err := h.service.DeleteBus(r.Context(), role, busID); err != nil {
		writeServiceError(w, h.log, err, "delete bus")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
