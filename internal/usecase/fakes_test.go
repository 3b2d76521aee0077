package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"airport-api/internal/clock"
	"airport-api/internal/data/entity"
	"airport-api/internal/data/repository"
	"airport-api/internal/domain"
	"airport-api/pkg/queue"
	"airport-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var testNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

type memTxKey struct{}

// memStore is an in-memory database. WithTx serializes transactions on mu
// and restores the previous state when fn fails.
type memStore struct {
	mu sync.Mutex

	geometries map[uuid.UUID]domain.Geometry // flight id -> airplane grid
	airplanes  map[uuid.UUID]*entity.Airplane
	flightsOf  map[uuid.UUID][]uuid.UUID // airplane id -> flight ids
	orders     map[uuid.UUID]*entity.Order
	tickets    []*entity.Ticket
	users      map[uuid.UUID]*entity.User
	sessions   map[uuid.UUID]*entity.Session
}

func newMemStore() *memStore {
	return &memStore{
		geometries: map[uuid.UUID]domain.Geometry{},
		airplanes:  map[uuid.UUID]*entity.Airplane{},
		flightsOf:  map[uuid.UUID][]uuid.UUID{},
		orders:     map[uuid.UUID]*entity.Order{},
		users:      map[uuid.UUID]*entity.User{},
		sessions:   map[uuid.UUID]*entity.Session{},
	}
}

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	orders := maps.Clone(m.orders)
	tickets := slices.Clone(m.tickets)
	airplanes := make(map[uuid.UUID]*entity.Airplane, len(m.airplanes))
	for id, a := range m.airplanes {
		cp := *a
		airplanes[id] = &cp
	}

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.orders, m.tickets, m.airplanes = orders, tickets, airplanes
		return err
	}
	return nil
}

// lock takes mu unless ctx already runs inside WithTx.
func (m *memStore) lock(ctx context.Context) func() {
	if ctx.Value(memTxKey{}) != nil {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

func (m *memStore) addFlight(g domain.Geometry) uuid.UUID {
	id := uuid.New()
	m.geometries[id] = g
	return id
}

func (m *memStore) ticketCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickets)
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:       m,
		User:     &memUsers{m: m},
		Session:  &memSessions{m: m},
		Airplane: &memAirplanes{m: m},
		Flight:   &memFlights{m: m},
		Order:    &memOrders{m: m},
		Ticket:   &memTickets{m: m},
	}
}

// ==================== FLIGHTS ====================

type memFlights struct {
	repository.FlightRepository
	m *memStore
}

func (f *memFlights) FindGeometryForBooking(ctx context.Context, id uuid.UUID) (*domain.Geometry, error) {
	defer f.m.lock(ctx)()
	g, ok := f.m.geometries[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (f *memFlights) FindTakenSeats(ctx context.Context, id uuid.UUID) ([]entity.Seat, error) {
	defer f.m.lock(ctx)()
	seats := []entity.Seat{}
	for _, t := range f.m.tickets {
		if t.FlightID == id {
			seats = append(seats, entity.Seat{Row: t.Row, Seat: t.Seat})
		}
	}
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Seat < seats[j].Seat
	})
	return seats, nil
}

func (f *memFlights) FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FlightSummary, error) {
	defer f.m.lock(ctx)()
	out := map[uuid.UUID]*entity.FlightSummary{}
	for _, id := range ids {
		g, ok := f.m.geometries[id]
		if !ok {
			continue
		}
		s := &entity.FlightSummary{AirplaneCapacity: g.Capacity(), TicketsAvailable: g.Capacity()}
		s.ID = id
		for _, t := range f.m.tickets {
			if t.FlightID == id {
				s.TicketsAvailable--
			}
		}
		out[id] = s
	}
	return out, nil
}

// ==================== ORDERS ====================

type memOrders struct {
	repository.OrderRepository
	m *memStore
}

func (o *memOrders) Create(ctx context.Context, order *entity.Order) error {
	defer o.m.lock(ctx)()
	cp := *order
	cp.Tickets = nil
	o.m.orders[order.ID] = &cp
	return nil
}

func (o *memOrders) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	defer o.m.lock(ctx)()
	order, ok := o.m.orders[id]
	if !ok || order.UserID != userID {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (o *memOrders) FindByUser(ctx context.Context, userID uuid.UUID, _ repository.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	defer o.m.lock(ctx)()
	var out []*entity.Order
	for _, order := range o.m.orders {
		if order.UserID == userID {
			cp := *order
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*entity.Order{}, nil
	}
	return out[offset:min(len(out), offset+limit)], nil
}

func (o *memOrders) CountByUser(ctx context.Context, userID uuid.UUID, _ repository.OrderFilter) (int64, error) {
	defer o.m.lock(ctx)()
	var n int64
	for _, order := range o.m.orders {
		if order.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (o *memOrders) Delete(ctx context.Context, id uuid.UUID) error {
	defer o.m.lock(ctx)()
	if _, ok := o.m.orders[id]; !ok {
		return domain.NewNotFound("order", id)
	}
	delete(o.m.orders, id)
	o.m.tickets = slices.DeleteFunc(o.m.tickets, func(t *entity.Ticket) bool { return t.OrderID == id })
	return nil
}

// ==================== TICKETS ====================

type memTickets struct {
	repository.TicketRepository
	m *memStore
}

func (t *memTickets) Create(ctx context.Context, ticket *entity.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer t.m.lock(ctx)()
	for _, existing := range t.m.tickets {
		if existing.FlightID == ticket.FlightID && existing.Row == ticket.Row && existing.Seat == ticket.Seat {
			return &domain.SeatTakenError{FlightID: ticket.FlightID, Row: ticket.Row, Seat: ticket.Seat}
		}
	}
	cp := *ticket
	t.m.tickets = append(t.m.tickets, &cp)
	return nil
}

func (t *memTickets) FindByOrderIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]*entity.Ticket, error) {
	defer t.m.lock(ctx)()
	out := map[uuid.UUID][]*entity.Ticket{}
	for _, ticket := range t.m.tickets {
		if slices.Contains(ids, ticket.OrderID) {
			cp := *ticket
			out[ticket.OrderID] = append(out[ticket.OrderID], &cp)
		}
	}
	return out, nil
}

func (t *memTickets) FindFlightIDsByOrder(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error) {
	defer t.m.lock(ctx)()
	var ids []uuid.UUID
	for _, ticket := range t.m.tickets {
		if ticket.OrderID == orderID && !slices.Contains(ids, ticket.FlightID) {
			ids = append(ids, ticket.FlightID)
		}
	}
	return ids, nil
}

// ==================== AIRPLANES ====================

type memAirplanes struct {
	repository.AirplaneRepository
	m *memStore
}

func (a *memAirplanes) FindByID(ctx context.Context, id uuid.UUID) (*entity.Airplane, error) {
	defer a.m.lock(ctx)()
	plane, ok := a.m.airplanes[id]
	if !ok {
		return nil, nil
	}
	cp := *plane
	return &cp, nil
}

func (a *memAirplanes) LockByID(ctx context.Context, id uuid.UUID) (*entity.Airplane, error) {
	if ctx.Value(memTxKey{}) == nil {
		return nil, errors.New("LockByID outside transaction")
	}
	return a.FindByID(ctx, id)
}

func (a *memAirplanes) CountSoldTickets(ctx context.Context, id uuid.UUID) (int64, error) {
	defer a.m.lock(ctx)()
	var n int64
	for _, t := range a.m.tickets {
		if slices.Contains(a.m.flightsOf[id], t.FlightID) {
			n++
		}
	}
	return n, nil
}

func (a *memAirplanes) Update(ctx context.Context, plane *entity.Airplane) error {
	defer a.m.lock(ctx)()
	if _, ok := a.m.airplanes[plane.ID]; !ok {
		return domain.NewNotFound("airplane", plane.ID)
	}
	cp := *plane
	a.m.airplanes[plane.ID] = &cp
	for _, flightID := range a.m.flightsOf[plane.ID] {
		a.m.geometries[flightID] = plane.Geometry()
	}
	return nil
}

// ==================== USERS ====================

type memUsers struct {
	repository.UserRepository
	m *memStore
}

func (u *memUsers) Create(ctx context.Context, user *entity.User) error {
	defer u.m.lock(ctx)()
	for _, existing := range u.m.users {
		if existing.Email == user.Email {
			return domain.ErrConflict
		}
	}
	cp := *user
	u.m.users[user.ID] = &cp
	return nil
}

func (u *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	defer u.m.lock(ctx)()
	user, ok := u.m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (u *memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	defer u.m.lock(ctx)()
	for _, user := range u.m.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

type memSessions struct {
	repository.SessionRepository
	m *memStore
}

func (s *memSessions) Create(ctx context.Context, session *entity.Session) error {
	defer s.m.lock(ctx)()
	cp := *session
	s.m.sessions[session.ID] = &cp
	return nil
}

func (s *memSessions) Revoke(ctx context.Context, id uuid.UUID) error {
	defer s.m.lock(ctx)()
	session, ok := s.m.sessions[id]
	if !ok || session.RevokedAt != nil {
		return domain.ErrUnauthorized
	}
	now := testNow
	session.RevokedAt = &now
	return nil
}

// ==================== INFRA ====================

type recordingCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: map[string][]byte{}}
}

func (c *recordingCache) GetJSON(_ context.Context, key string, dst any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	return ok && json.Unmarshal(raw, dst) == nil
}

func (c *recordingCache) SetJSON(_ context.Context, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err == nil {
		c.entries[key] = raw
	}
}

func (c *recordingCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
		c.deleted = append(c.deleted, k)
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []any
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var _ queue.Publisher = (*recordingPublisher)(nil)

func testInfra(c Cache, p queue.Publisher) Infra {
	return Infra{Clock: clock.NewFixed(testNow), Cache: c, Events: p}
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{BcryptCost: 4},
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
}

var nopLog = zap.NewNop()

func repositoryOrderFilter() repository.OrderFilter {
	return repository.OrderFilter{}
}
