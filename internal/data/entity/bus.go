package entity

// TimeSlot is a single scheduled departure within a schedule entry.
type TimeSlot struct {
	StartTime string `json:"startTime"`
}

// ScheduleEntry holds the departures of one calendar date. The date is kept
// as the string the admin sent, either DD-MM-YYYY or ISO.
type ScheduleEntry struct {
	Date  string     `json:"date"`
	Times []TimeSlot `json:"times"`
}

type Bus struct {
	Base
	Name      string          `db:"name"`
	BusNumber string          `db:"bus_number"`
	NoOfSeats int             `db:"no_of_seats"`
	Schedule  []ScheduleEntry `db:"schedule"`
}

// FindScheduleEntry returns the first schedule entry whose calendar date
// matches, comparing through the dual-format parser. Nil when none match.
func (b *Bus) FindScheduleEntry(match func(storedDate string) bool) *ScheduleEntry {
	for i := range b.Schedule {
		if match(b.Schedule[i].Date) {
			return &b.Schedule[i]
		}
	}
	return nil
}

// HasTimeSlot reports whether the entry contains a slot with exactly this
// start time.
func (e *ScheduleEntry) HasTimeSlot(startTime string) bool {
	for _, t := range e.Times {
		if t.StartTime == startTime {
			return true
		}
	}
	return false
}
