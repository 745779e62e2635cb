package usecase

import (
	"context"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	svc      *bookingService
	db       *fakeDB
	tx       *fakeTx
	users    *fakeUserRepo
	buses    *fakeBusRepo
	bookings *fakeBookingRepo
	mail     *fakeMailer

	userID uuid.UUID
	busID  uuid.UUID
}

// newBookingFixture seeds one passenger and one 40-seat bus scheduled for
// 10-06-2025 at 08:00 and 14:30.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		tx:       &fakeTx{},
		users:    newFakeUserRepo(),
		buses:    newFakeBusRepo(),
		bookings: &fakeBookingRepo{},
		mail:     newFakeMailer(),
		userID:   uuid.New(),
		busID:    uuid.New(),
	}
	f.db = &fakeDB{tx: f.tx}

	f.users.users[f.userID] = &entity.User{
		Base:  entity.Base{ID: f.userID},
		Name:  "Nimal Perera",
		Email: "nimal@example.com",
		Role:  entity.RolePassenger,
	}

	f.buses.buses[f.busID] = &entity.Bus{
		Base:      entity.Base{ID: f.busID},
		Name:      "Colombo Express",
		BusNumber: "NB-1234",
		NoOfSeats: 40,
		Schedule: []entity.ScheduleEntry{
			{Date: "10-06-2025", Times: []entity.TimeSlot{{StartTime: "08:00"}, {StartTime: "14:30"}}},
		},
	}

	f.svc = &bookingService{
		repo: &repository.Repository{
			User:    f.users,
			Session: newFakeSessionRepo(),
			Bus:     f.buses,
			Booking: f.bookings,
		},
		db:   f.db,
		mail: f.mail,
		support: utils.SupportConfig{
			ClientURL:      "http://localhost:3000",
			Phone:          "011-1234567",
			Email:          "support@sfservice.lk",
			CompanyName:    "Staff Bus Service.lk",
			CompanyAddress: "Colombo, Sri Lanka",
		},
		log: zap.NewNop(),
		now: time.Now,
	}

	return f
}

func (f *bookingFixture) validRequest() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		UserID:         f.userID.String(),
		StartLocation:  "Colombo",
		EndLocation:    "Kandy",
		BookingDate:    "10-06-2025",
		Time:           "08:00",
		BusID:          f.busID.String(),
		Seats:          []string{"A1", "A2"},
		PassengerName:  "Nimal Perera",
		PassengerPhone: "0771234567",
		TotalPrice:     2400,
	}
}

func (f *bookingFixture) seedBooking(userID uuid.UUID, date, departureTime string, seats ...string) *entity.Booking {
	b := &entity.Booking{
		BaseSimple:     entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:         userID,
		BusID:          f.busID,
		StartLocation:  "Colombo",
		EndLocation:    "Kandy",
		BookingDate:    date,
		DepartureTime:  departureTime,
		Seats:          seats,
		PassengerName:  "Someone Else",
		PassengerPhone: "0770000000",
		TotalPrice:     1200,
	}
	f.bookings.bookings = append(f.bookings.bookings, b)
	return b
}

func (f *bookingFixture) waitForMail(t *testing.T) {
	t.Helper()
	select {
	case <-f.mail.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for confirmation mail")
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", f.validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, f.userID.String(), resp.UserID)
	assert.Equal(t, f.busID.String(), resp.BusID)
	assert.Equal(t, "10-06-2025", resp.BookingDate)
	assert.Equal(t, "08:00", resp.Time)
	assert.Equal(t, []string{"A1", "A2"}, resp.Seats)
	assert.Equal(t, 2400.0, resp.TotalPrice)

	require.Len(t, f.bookings.bookings, 1)
	assert.True(t, f.tx.committed, "booking insert must be committed")

	f.waitForMail(t)
	mail := f.mail.lastSent()
	assert.Equal(t, "nimal@example.com", mail.to)
	assert.Equal(t, "Colombo → Kandy", mail.details.Route)
	assert.Equal(t, "A1, A2", mail.details.Seats)
	assert.Equal(t, "Rs. 2400.00", mail.details.Amount)
	assert.Equal(t, "http://localhost:3000/ticket/"+resp.ID, mail.details.BookingLink)
}

func TestCreateBooking_SeatConflict(t *testing.T) {
	f := newBookingFixture(t)
	f.seedBooking(uuid.New(), "10-06-2025", "08:00", "A1", "A2")

	req := f.validRequest()
	req.Seats = []string{"A2", "A3"}

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSeatConflict)
	assert.ErrorContains(t, err, "A2")
	assert.NotContains(t, err.Error(), "A3", "free seats must not be reported as conflicting")

	assert.Len(t, f.bookings.bookings, 1, "no new booking on conflict")
	assert.False(t, f.tx.committed)
	assert.True(t, f.tx.rolledBack)
	assert.Equal(t, 0, f.mail.sentCount())
}

func TestCreateBooking_RejectsNonPassenger(t *testing.T) {
	f := newBookingFixture(t)

	for _, role := range []string{"admin", ""} {
		resp, err := f.svc.CreateBooking(context.Background(), f.userID, role, f.validRequest())
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrAuthorization)
	}

	assert.Equal(t, 0, f.db.beginCalls, "role check happens before the transaction")
	assert.Empty(t, f.bookings.bookings)
}

func TestCreateBooking_MissingFields(t *testing.T) {
	f := newBookingFixture(t)

	req := f.validRequest()
	req.StartLocation = ""
	req.Seats = nil

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "all fields are required")

	assert.Empty(t, f.bookings.bookings)
	assert.Equal(t, 0, f.mail.sentCount())
}

func TestCreateBooking_UserNotFound(t *testing.T) {
	f := newBookingFixture(t)

	req := f.validRequest()
	req.UserID = uuid.NewString()

	_, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "user not found")
	assert.True(t, f.tx.rolledBack)
}

func TestCreateBooking_BusNotFound(t *testing.T) {
	f := newBookingFixture(t)

	req := f.validRequest()
	req.BusID = uuid.NewString()

	_, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "bus not found")
}

func TestCreateBooking_DateNotInSchedule(t *testing.T) {
	f := newBookingFixture(t)

	req := f.validRequest()
	req.BookingDate = "11-06-2025"

	_, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "bus not available on selected date")
	assert.Empty(t, f.bookings.bookings)
}

func TestCreateBooking_TimeNotInSchedule(t *testing.T) {
	f := newBookingFixture(t)

	req := f.validRequest()
	req.Time = "09:00"

	_, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "bus not available at selected time")
}

func TestCreateBooking_ExceedsCapacity(t *testing.T) {
	f := newBookingFixture(t)
	f.buses.buses[f.busID].NoOfSeats = 2

	req := f.validRequest()
	req.Seats = []string{"A1", "A2", "A3"}

	_, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "exceed bus capacity")
	assert.Empty(t, f.bookings.bookings)
}

func TestCreateBooking_ConflictCheckedBeforeCapacity(t *testing.T) {
	f := newBookingFixture(t)
	f.buses.buses[f.busID].NoOfSeats = 1
	f.seedBooking(uuid.New(), "10-06-2025", "08:00", "A1")

	req := f.validRequest()
	req.Seats = []string{"A1", "B1", "C1"}

	_, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	assert.ErrorIs(t, err, ErrSeatConflict, "conflict takes priority over capacity")
}

// The schedule lookup treats "2025-06-10" and "10-06-2025" as the same
// calendar date.
func TestCreateBooking_AcceptsISODateAgainstSchedule(t *testing.T) {
	f := newBookingFixture(t)

	req := f.validRequest()
	req.BookingDate = "2025-06-10"

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", resp.BookingDate, "date stored as submitted")
	f.waitForMail(t)
}

// The conflict lookup matches date strings verbatim. A booking stored as
// "10-06-2025" is invisible to a request submitted as "2025-06-10" even
// though both pass the schedule check for the same trip.
func TestCreateBooking_ConflictUsesRawDateString(t *testing.T) {
	f := newBookingFixture(t)
	f.seedBooking(uuid.New(), "10-06-2025", "08:00", "A1", "A2")

	req := f.validRequest()
	req.BookingDate = "2025-06-10"

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", req)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Len(t, f.bookings.bookings, 2)
	f.waitForMail(t)
}

func TestCreateBooking_MailFailureDoesNotVoidBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.mail.err = assert.AnError

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, "passenger", f.validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	f.waitForMail(t)
	assert.Len(t, f.bookings.bookings, 1, "booking stays despite mail failure")
}

func TestGetBookedSeats(t *testing.T) {
	f := newBookingFixture(t)
	f.seedBooking(uuid.New(), "10-06-2025", "08:00", "A1")
	f.seedBooking(uuid.New(), "10-06-2025", "08:00", "A2", "A3")
	f.seedBooking(uuid.New(), "10-06-2025", "14:30", "B5") // other slot

	resp, err := f.svc.GetBookedSeats(context.Background(), f.busID.String(), "10-06-2025", "08:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "A3"}, resp.BookedSeats)
}

func TestGetBookedSeats_EmptyTrip(t *testing.T) {
	f := newBookingFixture(t)
	f.seedBooking(uuid.New(), "10-06-2025", "08:00", "A1")

	// Different date spelling of the same day finds nothing. Exact match only.
	resp, err := f.svc.GetBookedSeats(context.Background(), f.busID.String(), "2025-06-10", "08:00")
	require.NoError(t, err)
	assert.NotNil(t, resp.BookedSeats)
	assert.Empty(t, resp.BookedSeats)
}

func TestGetBookedSeats_InvalidBusID(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.GetBookedSeats(context.Background(), "not-a-uuid", "10-06-2025", "08:00")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetBookings_PassengerSeesOwnOnly(t *testing.T) {
	f := newBookingFixture(t)
	own := f.seedBooking(f.userID, "10-06-2025", "08:00", "A1")
	f.seedBooking(uuid.New(), "10-06-2025", "14:30", "B1")

	resp, err := f.svc.GetBookings(context.Background(), f.userID, "passenger")
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, own.ID.String(), resp[0].ID)
}

func TestGetBookings_AdminSeesAll(t *testing.T) {
	f := newBookingFixture(t)
	f.seedBooking(f.userID, "10-06-2025", "08:00", "A1")
	f.seedBooking(uuid.New(), "10-06-2025", "14:30", "B1")

	resp, err := f.svc.GetBookings(context.Background(), uuid.New(), "admin")
	require.NoError(t, err)
	assert.Len(t, resp, 2)
}

func TestGetBookings_AnonymousRejected(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.GetBookings(context.Background(), uuid.Nil, "")
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(f.userID, "10-06-2025", "08:00", "A1")

	departure := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.Local)
	f.svc.now = func() time.Time { return departure.Add(-3 * time.Hour) }

	err := f.svc.CancelBooking(context.Background(), booking.ID.String(), f.userID, "passenger")
	require.NoError(t, err)
	assert.Empty(t, f.bookings.bookings)
}

func TestCancelBooking_WithinTwoHoursOfDeparture(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(f.userID, "10-06-2025", "08:00", "A1")

	departure := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.Local)
	f.svc.now = func() time.Time { return departure.Add(-90 * time.Minute) }

	err := f.svc.CancelBooking(context.Background(), booking.ID.String(), f.userID, "passenger")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorContains(t, err, "cannot cancel within 2 hours of departure")
	assert.Len(t, f.bookings.bookings, 1, "booking must survive a rejected cancellation")
}

func TestCancelBooking_NonOwnerRejected(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(f.userID, "10-06-2025", "08:00", "A1")

	departure := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.Local)
	f.svc.now = func() time.Time { return departure.Add(-24 * time.Hour) }

	err := f.svc.CancelBooking(context.Background(), booking.ID.String(), uuid.New(), "passenger")
	assert.ErrorIs(t, err, ErrAuthorization)
	assert.Len(t, f.bookings.bookings, 1)
}

func TestCancelBooking_AdminCanCancelAnyBooking(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(f.userID, "10-06-2025", "08:00", "A1")

	departure := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.Local)
	f.svc.now = func() time.Time { return departure.Add(-24 * time.Hour) }

	err := f.svc.CancelBooking(context.Background(), booking.ID.String(), uuid.New(), "admin")
	require.NoError(t, err)
	assert.Empty(t, f.bookings.bookings)
}

func TestCancelBooking_NotFound(t *testing.T) {
	f := newBookingFixture(t)

	err := f.svc.CancelBooking(context.Background(), uuid.NewString(), f.userID, "passenger")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelBooking_InvalidID(t *testing.T) {
	f := newBookingFixture(t)

	err := f.svc.CancelBooking(context.Background(), "not-a-uuid", f.userID, "passenger")
	assert.ErrorIs(t, err, ErrValidation)
}
