package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"airport-api/internal/data/entity"
	"airport-api/internal/domain"
	"airport-api/internal/testutil"
	"airport-api/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) (*Repository, testutil.Fixture, context.Context) {
	t.Helper()
	ctx := context.Background()
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	fx := testutil.InsertFlight(t, ctx, pool, 10, 5)
	return NewRepository(database.NewFromPool(pool), zap.NewNop()), fx, ctx
}

func bookSeat(ctx context.Context, repo *Repository, fx testutil.Fixture, seats ...entity.Seat) error {
	return repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		order := &entity.Order{UserID: fx.UserID}
		order.ID = uuid.New()
		order.CreatedAt = time.Now().UTC()
		if err := repo.Order.Create(ctx, order); err != nil {
			return err
		}
		for _, s := range seats {
			ticket := &entity.Ticket{ID: uuid.New(), OrderID: order.ID, FlightID: fx.FlightID, Row: s.Row, Seat: s.Seat}
			if err := repo.Ticket.Create(ctx, ticket); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestPostgres_GeometryForBooking(t *testing.T) {
	repo, fx, ctx := newTestRepository(t)

	var g *domain.Geometry
	err := repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		g, err = repo.Flight.FindGeometryForBooking(ctx, fx.FlightID)
		return err
	})
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	if g == nil || g.Rows != 10 || g.SeatsInRow != 5 {
		t.Fatalf("unexpected geometry %+v", g)
	}

	missing, err := repo.Flight.FindGeometryForBooking(ctx, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("expected nil geometry for unknown flight, got %+v %v", missing, err)
	}
}

func TestPostgres_DuplicateSeatIsSeatTaken(t *testing.T) {
	repo, fx, ctx := newTestRepository(t)

	if err := bookSeat(ctx, repo, fx, entity.Seat{Row: 1, Seat: 1}, entity.Seat{Row: 1, Seat: 2}); err != nil {
		t.Fatalf("first order: %v", err)
	}

	err := bookSeat(ctx, repo, fx, entity.Seat{Row: 2, Seat: 1}, entity.Seat{Row: 1, Seat: 2})
	var taken *domain.SeatTakenError
	if !errors.As(err, &taken) {
		t.Fatalf("expected SeatTakenError, got %v", err)
	}
	if taken.Row != 1 || taken.Seat != 2 || taken.FlightID != fx.FlightID {
		t.Fatalf("unexpected collision %+v", taken)
	}

	// the failed order rolled back including its (2, 1) ticket
	seats, err := repo.Flight.FindTakenSeats(ctx, fx.FlightID)
	if err != nil {
		t.Fatalf("taken seats: %v", err)
	}
	want := []entity.Seat{{Row: 1, Seat: 1}, {Row: 1, Seat: 2}}
	if len(seats) != len(want) {
		t.Fatalf("expected %v, got %v", want, seats)
	}
	for i := range want {
		if seats[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seats)
		}
	}

	orders, err := repo.Order.CountByUser(ctx, fx.UserID, OrderFilter{})
	if err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orders != 1 {
		t.Fatalf("expected 1 committed order, got %d", orders)
	}
}

func TestPostgres_ConcurrentBookingsOfOneSeat(t *testing.T) {
	repo, fx, ctx := newTestRepository(t)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		taken   int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := bookSeat(ctx, repo, fx, entity.Seat{Row: 3, Seat: 3})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, domain.ErrSeatTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if success != 1 || taken != workers-1 {
		t.Fatalf("expected 1 success and %d collisions, got %d and %d", workers-1, success, taken)
	}
}

func TestPostgres_FlightSummaryAvailability(t *testing.T) {
	repo, fx, ctx := newTestRepository(t)

	if err := bookSeat(ctx, repo, fx, entity.Seat{Row: 1, Seat: 1}, entity.Seat{Row: 4, Seat: 5}); err != nil {
		t.Fatalf("book: %v", err)
	}

	summaries, err := repo.Flight.FindSummaries(ctx, FlightFilter{RouteID: &fx.RouteID}, 5, 0)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(summaries))
	}
	s := summaries[0]
	if s.AirplaneCapacity != 50 || s.TicketsAvailable != 48 {
		t.Fatalf("expected capacity 50 and 48 available, got %d and %d", s.AirplaneCapacity, s.TicketsAvailable)
	}

	tomorrow := time.Now().UTC().Add(24 * time.Hour)
	count, err := repo.Flight.CountAll(ctx, FlightFilter{DepartureDate: &tomorrow})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected departure date filter to match, got %d", count)
	}
}

func TestPostgres_AirplaneGeometryLockedBySoldTicket(t *testing.T) {
	repo, fx, ctx := newTestRepository(t)

	sold, err := repo.Airplane.CountSoldTickets(ctx, fx.AirplaneID)
	if err != nil || sold != 0 {
		t.Fatalf("expected no tickets, got %d %v", sold, err)
	}
	if err := bookSeat(ctx, repo, fx, entity.Seat{Row: 10, Seat: 5}); err != nil {
		t.Fatalf("book: %v", err)
	}
	sold, err = repo.Airplane.CountSoldTickets(ctx, fx.AirplaneID)
	if err != nil || sold != 1 {
		t.Fatalf("expected 1 ticket, got %d %v", sold, err)
	}
}

func TestPostgres_DeleteOrderCascadesTickets(t *testing.T) {
	repo, fx, ctx := newTestRepository(t)

	if err := bookSeat(ctx, repo, fx, entity.Seat{Row: 2, Seat: 2}); err != nil {
		t.Fatalf("book: %v", err)
	}
	orders, err := repo.Order.FindByUser(ctx, fx.UserID, OrderFilter{}, 5, 0)
	if err != nil || len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d %v", len(orders), err)
	}

	flights, err := repo.Ticket.FindFlightIDsByOrder(ctx, orders[0].ID)
	if err != nil || len(flights) != 1 || flights[0] != fx.FlightID {
		t.Fatalf("unexpected order flights %v %v", flights, err)
	}

	if err := repo.Order.Delete(ctx, orders[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	seats, err := repo.Flight.FindTakenSeats(ctx, fx.FlightID)
	if err != nil || len(seats) != 0 {
		t.Fatalf("expected seats released, got %v %v", seats, err)
	}

	err = repo.Order.Delete(ctx, orders[0].ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
