package response

import (
	"time"

	"bus-booking/internal/data/entity"
)

type BusResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	BusNumber string                 `json:"busNumber"`
	NoOfSeats int                    `json:"noOfSeats"`
	Schedule  []entity.ScheduleEntry `json:"schedule"`
	CreatedAt time.Time              `json:"created_at"`
}

func BusToResponse(bus *entity.Bus) BusResponse {
	return BusResponse{
		ID:        bus.ID.String(),
		Name:      bus.Name,
		BusNumber: bus.BusNumber,
		NoOfSeats: bus.NoOfSeats,
		Schedule:  bus.Schedule,
		CreatedAt: bus.CreatedAt,
	}
}

func BusesToResponse(buses []*entity.Bus) []BusResponse {
	responses := make([]BusResponse, len(buses))
	for i, bus := range buses {
		responses[i] = BusToResponse(bus)
	}
	return responses
}
