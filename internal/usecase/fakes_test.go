package usecase

import (
	"context"
	"sync"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"
	"bus-booking/pkg/mailer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory fakes for the repository and database interfaces. The booking
// service never touches SQL directly, so the transaction handle only needs
// to track commit/rollback.

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeDB struct {
	tx         *fakeTx
	beginCalls int
	beginErr   error
}

func (d *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (d *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (d *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return d.BeginTx(ctx, pgx.TxOptions{})
}

func (d *fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	d.beginCalls++
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func (d *fakeDB) Ping(ctx context.Context) error { return nil }

func (d *fakeDB) Close() {}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByIDTx(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	all := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	return all, nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.sessions[session.Token.String()] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(ctx context.Context) error { return nil }

type fakeBusRepo struct {
	buses map[uuid.UUID]*entity.Bus
}

func newFakeBusRepo() *fakeBusRepo {
	return &fakeBusRepo{buses: make(map[uuid.UUID]*entity.Bus)}
}

func (r *fakeBusRepo) Create(ctx context.Context, bus *entity.Bus) error {
	r.buses[bus.ID] = bus
	return nil
}

func (r *fakeBusRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	return r.buses[id], nil
}

func (r *fakeBusRepo) FindByIDTx(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Bus, error) {
	return r.buses[id], nil
}

func (r *fakeBusRepo) FindAll(ctx context.Context) ([]*entity.Bus, error) {
	all := make([]*entity.Bus, 0, len(r.buses))
	for _, b := range r.buses {
		all = append(all, b)
	}
	return all, nil
}

func (r *fakeBusRepo) Update(ctx context.Context, bus *entity.Bus) error {
	r.buses[bus.ID] = bus
	return nil
}

func (r *fakeBusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.buses, id)
	return nil
}

type fakeBookingRepo struct {
	bookings  []*entity.Booking
	createErr error
}

func (r *fakeBookingRepo) CreateTx(ctx context.Context, q database.Querier, booking *entity.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.bookings = append(r.bookings, booking)
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	out := make([]*entity.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeBookingRepo) FindByTrip(ctx context.Context, busID uuid.UUID, bookingDate, departureTime string) ([]*entity.Booking, error) {
	return r.findByTrip(busID, bookingDate, departureTime), nil
}

func (r *fakeBookingRepo) FindByTripTx(ctx context.Context, q database.Querier, busID uuid.UUID, bookingDate, departureTime string) ([]*entity.Booking, error) {
	return r.findByTrip(busID, bookingDate, departureTime), nil
}

// Exact string match on date and time, same as the SQL variant.
func (r *fakeBookingRepo) findByTrip(busID uuid.UUID, bookingDate, departureTime string) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.BusID == busID && b.BookingDate == bookingDate && b.DepartureTime == departureTime {
			out = append(out, b)
		}
	}
	return out
}

type sentMail struct {
	to      string
	details mailer.BookingDetails
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error

	// notify receives one value per send attempt, so tests can wait for
	// the detached confirmation goroutine.
	notify chan struct{}
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{notify: make(chan struct{}, 8)}
}

func (m *fakeMailer) SendBookingConfirmation(ctx context.Context, to string, details mailer.BookingDetails) error {
	m.mu.Lock()
	m.sent = append(m.sent, sentMail{to: to, details: details})
	m.mu.Unlock()
	m.notify <- struct{}{}
	return m.err
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) lastSent() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}
