package usecase

import (
	"context"

	"airport-api/internal/clock"
	"airport-api/internal/data/entity"
	"airport-api/internal/data/repository"
	"airport-api/internal/domain"
	"airport-api/internal/dto/request"
	"airport-api/internal/dto/response"
	"airport-api/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FlightService interface {
	List(ctx context.Context, page *request.PaginatedRequest, filter repository.FlightFilter) ([]*entity.FlightSummary, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.FlightDetail, error)
	Create(ctx context.Context, req *request.FlightRequest) (*entity.Flight, error)
	Update(ctx context.Context, id uuid.UUID, req *request.FlightRequest) (*entity.Flight, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Seats returns the seat map of a flight, served from cache when possible.
	Seats(ctx context.Context, id uuid.UUID) (*response.SeatMapResponse, error)
}

type flightService struct {
	repo  *repository.Repository
	clock clock.Clock
	cache Cache
	log   *zap.Logger
}

func NewFlightService(repo *repository.Repository, infra Infra, log *zap.Logger) FlightService {
	return &flightService{
		repo:  repo,
		clock: infra.Clock,
		cache: infra.Cache,
		log:   log.With(zap.String("service", "flight")),
	}
}

func (s *flightService) List(ctx context.Context, page *request.PaginatedRequest, filter repository.FlightFilter) ([]*entity.FlightSummary, int64, error) {
	flights, err := s.repo.Flight.FindSummaries(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Flight.CountAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

func (s *flightService) Get(ctx context.Context, id uuid.UUID) (*entity.FlightDetail, error) {
	d, err := s.repo.Flight.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.NewNotFound("flight", id)
	}
	return d, nil
}

func (s *flightService) Create(ctx context.Context, req *request.FlightRequest) (*entity.Flight, error) {
	f, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	f.ID = uuid.New()
	f.CreatedAt = now
	f.UpdatedAt = now

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		return s.repo.Flight.Create(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Flight created",
		zap.String("flight_id", f.ID.String()),
		zap.String("route_id", f.RouteID.String()),
		zap.Time("departure_time", f.DepartureTime),
	)
	return f, nil
}

func (s *flightService) Update(ctx context.Context, id uuid.UUID, req *request.FlightRequest) (*entity.Flight, error) {
	f, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.Flight.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.NewNotFound("flight", id)
		}
		f.ID = id
		f.CreatedAt = current.CreatedAt
		f.UpdatedAt = s.clock.Now()
		return s.repo.Flight.Update(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	// the airplane, and with it the seat grid, may have changed
	s.cache.Delete(ctx, cache.AvailabilityKey(id))
	return f, nil
}

func (s *flightService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Flight.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, cache.AvailabilityKey(id))
	return nil
}

func (s *flightService) Seats(ctx context.Context, id uuid.UUID) (*response.SeatMapResponse, error) {
	key := cache.AvailabilityKey(id)

	var cached response.SeatMapResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	g, err := s.repo.Flight.FindGeometryForBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.NewNotFound("flight", id)
	}

	taken, err := s.repo.Flight.FindTakenSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	seatMap := &response.SeatMapResponse{
		FlightID:         id.String(),
		Rows:             g.Rows,
		SeatsInRow:       g.SeatsInRow,
		Capacity:         g.Capacity(),
		TicketsAvailable: g.Capacity() - len(taken),
		TakenSeats:       response.SeatsToResponse(taken),
	}
	s.cache.SetJSON(ctx, key, seatMap)
	return seatMap, nil
}

func (s *flightService) fromRequest(req *request.FlightRequest) (*entity.Flight, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	routeID, err := parseID("route_id", req.RouteID)
	if err != nil {
		return nil, err
	}
	airplaneID, err := parseID("airplane_id", req.AirplaneID)
	if err != nil {
		return nil, err
	}
	crewIDs, err := parseIDs("crew_ids", req.CrewIDs)
	if err != nil {
		return nil, err
	}

	return &entity.Flight{
		RouteID:       routeID,
		AirplaneID:    airplaneID,
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
		CrewIDs:       crewIDs,
	}, nil
}
