package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BusService interface {
	// Public browsing
	GetBuses(ctx context.Context) ([]response.BusResponse, error)
	GetBusByID(ctx context.Context, busID string) (*response.BusResponse, error)

	// Admin management
	CreateBus(ctx context.Context, callerRole string, req *request.CreateBusRequest) (*response.BusResponse, error)
	UpdateBus(ctx context.Context, callerRole string, busID string, req *request.UpdateBusRequest) (*response.BusResponse, error)
	DeleteBus(ctx context.Context, callerRole string, busID string) error
}

type busService struct {
	repo repository.BusRepository
	log  *zap.Logger
}

func NewBusService(repo repository.BusRepository, log *zap.Logger) BusService {
	return &busService{
		repo: repo,
		log:  log.With(zap.String("service", "bus")),
	}
}

func (s *busService) GetBuses(ctx context.Context) ([]response.BusResponse, error) {
	buses, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get buses", zap.Error(err))
		return nil, fmt.Errorf("get buses: %w", err)
	}

	return response.BusesToResponse(buses), nil
}

func (s *busService) GetBusByID(ctx context.Context, busID string) (*response.BusResponse, error) {
	id, err := uuid.Parse(busID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus ID format %s", ErrValidation, busID)
	}

	bus, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bus %s: %w", busID, err)
	}
	if bus == nil {
		return nil, fmt.Errorf("%w: bus not found", ErrNotFound)
	}

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) CreateBus(ctx context.Context, callerRole string, req *request.CreateBusRequest) (*response.BusResponse, error) {
	if callerRole != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("%w: admin access required", ErrAuthorization)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create bus validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	schedule, err := convertSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bus := &entity.Bus{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:      req.Name,
		BusNumber: req.BusNumber,
		NoOfSeats: req.NoOfSeats,
		Schedule:  schedule,
	}

	if err := s.repo.Create(ctx, bus); err != nil {
		return nil, fmt.Errorf("create bus: %w", err)
	}

	s.log.Info("Bus created",
		zap.String("bus_id", bus.ID.String()),
		zap.String("bus_number", bus.BusNumber),
		zap.Int("no_of_seats", bus.NoOfSeats),
	)

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) UpdateBus(ctx context.Context, callerRole string, busID string, req *request.UpdateBusRequest) (*response.BusResponse, error) {
	if callerRole != string(entity.RoleAdmin) {
		return nil, fmt.Errorf("%w: admin access required", ErrAuthorization)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update bus validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(busID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid bus ID format %s", ErrValidation, busID)
	}

	bus, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bus %s: %w", busID, err)
	}
	if bus == nil {
		return nil, fmt.Errorf("%w: bus not found", ErrNotFound)
	}

	schedule, err := convertSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}

	bus.Name = req.Name
	bus.BusNumber = req.BusNumber
	bus.NoOfSeats = req.NoOfSeats
	bus.Schedule = schedule
	bus.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, bus); err != nil {
		return nil, fmt.Errorf("update bus %s: %w", busID, err)
	}

	s.log.Info("Bus updated", zap.String("bus_id", busID))

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) DeleteBus(ctx context.Context, callerRole string, busID string) error {
	if callerRole != string(entity.RoleAdmin) {
		return fmt.Errorf("%w: admin access required", ErrAuthorization)
	}

	id, err := uuid.Parse(busID)
	if err != nil {
		return fmt.Errorf("%w: invalid bus ID format %s", ErrValidation, busID)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete bus %s: %w", busID, err)
	}

	s.log.Info("Bus deleted", zap.String("bus_id", busID))
	return nil
}

// convertSchedule maps the request schedule, rejecting dates neither
// DD-MM-YYYY nor ISO so bookings can always re-parse them.
func convertSchedule(entries []request.ScheduleEntryRequest) ([]entity.ScheduleEntry, error) {
	schedule := make([]entity.ScheduleEntry, len(entries))
	for i, e := range entries {
		if _, err := utils.ParseBookingDate(e.Date); err != nil {
			return nil, fmt.Errorf("%w: invalid schedule date %s", ErrValidation, e.Date)
		}

		times := make([]entity.TimeSlot, len(e.Times))
		for j, t := range e.Times {
			times[j] = entity.TimeSlot{StartTime: t.StartTime}
		}
		schedule[i] = entity.ScheduleEntry{Date: e.Date, Times: times}
	}
	return schedule, nil
}
