package request

type TimeSlotRequest struct {
	StartTime string `json:"startTime" validate:"required"`
}

type ScheduleEntryRequest struct {
	Date  string            `json:"date" validate:"required"`
	Times []TimeSlotRequest `json:"times" validate:"required,min=1,dive"`
}

type CreateBusRequest struct {
	Name      string                 `json:"name" validate:"required"`
	BusNumber string                 `json:"busNumber" validate:"required"`
	NoOfSeats int                    `json:"noOfSeats" validate:"required,gt=0"`
	Schedule  []ScheduleEntryRequest `json:"schedule" validate:"omitempty,dive"`
}

type UpdateBusRequest struct {
	Name      string                 `json:"name" validate:"required"`
	BusNumber string                 `json:"busNumber" validate:"required"`
	NoOfSeats int                    `json:"noOfSeats" validate:"required,gt=0"`
	Schedule  []ScheduleEntryRequest `json:"schedule" validate:"omitempty,dive"`
}
