package usecase

import (
	"context"
	"time"

	"airport-api/internal/clock"
	"airport-api/internal/data/entity"
	"airport-api/internal/data/repository"
	"airport-api/internal/domain"
	"airport-api/internal/dto/request"
	"airport-api/pkg/cache"
	"airport-api/pkg/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// TicketRequest is one seat to book.
type TicketRequest struct {
	FlightID uuid.UUID
	Row      int
	Seat     int
}

type OrderService interface {
	// CreateOrder books every ticket or none. Bounds are checked against each
	// flight's airplane inside the transaction, and a seat that is already
	// taken, by a committed order or earlier in the same list, aborts with
	// *domain.SeatTakenError.
	CreateOrder(ctx context.Context, userID uuid.UUID, tickets []TicketRequest) (*entity.Order, error)
	Create(ctx context.Context, userID uuid.UUID, req *request.OrderRequest) (*entity.Order, error)
	List(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest, filter repository.OrderFilter) ([]*entity.Order, int64, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*entity.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	repo   *repository.Repository
	clock  clock.Clock
	cache  Cache
	events queue.Publisher
	log    *zap.Logger
}

func NewOrderService(repo *repository.Repository, infra Infra, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		clock:  infra.Clock,
		cache:  infra.Cache,
		events: infra.Events,
		log:    log.With(zap.String("service", "order")),
	}
}

func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req *request.OrderRequest) (*entity.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	tickets := make([]TicketRequest, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		flightID, err := parseID("flight_id", t.FlightID)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, TicketRequest{FlightID: flightID, Row: t.Row, Seat: t.Seat})
	}
	return s.CreateOrder(ctx, userID, tickets)
}

func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, tickets []TicketRequest) (*entity.Order, error) {
	if len(tickets) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	var order *entity.Order
	err := s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		// 1. Validate every ticket against its flight's seat grid
		geometries := make(map[uuid.UUID]domain.Geometry)
		requested := make(map[TicketRequest]bool, len(tickets))
		for _, t := range tickets {
			g, ok := geometries[t.FlightID]
			if !ok {
				found, err := s.repo.Flight.FindGeometryForBooking(ctx, t.FlightID)
				if err != nil {
					return err
				}
				if found == nil {
					return domain.NewNotFound("flight", t.FlightID)
				}
				g = *found
				geometries[t.FlightID] = g
			}

			if err := domain.ValidateSeat(t.Row, t.Seat, g); err != nil {
				return err
			}

			if requested[t] {
				return &domain.SeatTakenError{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
			}
			requested[t] = true
		}

		// 2. Insert the order
		o := &entity.Order{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.clock.Now()},
			UserID:     userID,
		}
		if err := s.repo.Order.Create(ctx, o); err != nil {
			return err
		}

		// 3. Insert the tickets, a taken seat aborts the whole order
		o.Tickets = make([]*entity.Ticket, 0, len(tickets))
		for _, t := range tickets {
			ticket := &entity.Ticket{
				ID:       uuid.New(),
				OrderID:  o.ID,
				FlightID: t.FlightID,
				Row:      t.Row,
				Seat:     t.Seat,
			}
			if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
				return err
			}
			o.Tickets = append(o.Tickets, ticket)
		}

		order = o
		return nil
	})
	if err != nil {
		s.log.Info("Order rejected", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("tickets", len(order.Tickets)),
	)

	s.afterCommit(ctx, order)
	return order, nil
}

// afterCommit refreshes derived state. Failures here never undo the booking.
func (s *orderService) afterCommit(ctx context.Context, order *entity.Order) {
	s.invalidateFlights(ctx, flightIDsOf(order.Tickets))

	event := queue.OrderCreatedEvent{
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		CreatedAt: order.CreatedAt,
		Tickets:   make([]queue.TicketEvent, 0, len(order.Tickets)),
	}
	for _, t := range order.Tickets {
		event.Tickets = append(event.Tickets, queue.TicketEvent{
			TicketID: t.ID.String(),
			FlightID: t.FlightID.String(),
			Row:      t.Row,
			Seat:     t.Seat,
		})
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.Publish(pubCtx, event); err != nil {
		s.log.Warn("Failed to publish order event", zap.Error(err), zap.String("order_id", order.ID.String()))
	}
}

func (s *orderService) List(ctx context.Context, userID uuid.UUID, page *request.PaginatedRequest, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	orders, err := s.repo.Order.FindByUser(ctx, userID, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Order.CountByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.loadTickets(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *orderService) Get(ctx context.Context, userID, id uuid.UUID) (*entity.Order, error) {
	o, err := s.repo.Order.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("order", id)
	}
	if err := s.loadTickets(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	flightIDs, err := s.repo.Ticket.FindFlightIDsByOrder(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Order.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateFlights(ctx, flightIDs)
	return nil
}

// loadTickets attaches tickets, each with its flight summary, to orders.
func (s *orderService) loadTickets(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	byOrder, err := s.repo.Ticket.FindByOrderIDs(ctx, orderIDs)
	if err != nil {
		return err
	}

	var all []*entity.Ticket
	for _, o := range orders {
		o.Tickets = byOrder[o.ID]
		if o.Tickets == nil {
			o.Tickets = []*entity.Ticket{}
		}
		all = append(all, o.Tickets...)
	}

	flights, err := s.repo.Flight.FindSummariesByIDs(ctx, flightIDsOf(all))
	if err != nil {
		return err
	}
	for _, t := range all {
		t.Flight = flights[t.FlightID]
	}
	return nil
}

func (s *orderService) invalidateFlights(ctx context.Context, flightIDs []uuid.UUID) {
	keys := make([]string, 0, len(flightIDs))
	for _, id := range flightIDs {
		keys = append(keys, cache.AvailabilityKey(id))
	}
	s.cache.Delete(ctx, keys...)
}

func flightIDsOf(tickets []*entity.Ticket) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, t := range tickets {
		if !seen[t.FlightID] {
			seen[t.FlightID] = true
			ids = append(ids, t.FlightID)
		}
	}
	return ids
}
