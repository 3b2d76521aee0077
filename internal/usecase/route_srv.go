package usecase

import (
	"context"

	"airport-api/internal/clock"
	"airport-api/internal/data/entity"
	"airport-api/internal/data/repository"
	"airport-api/internal/domain"
	"airport-api/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RouteService interface {
	List(ctx context.Context, page *request.PaginatedRequest, filter repository.RouteFilter) ([]*entity.Route, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	Create(ctx context.Context, req *request.RouteRequest) (*entity.Route, error)
	Update(ctx context.Context, id uuid.UUID, req *request.RouteRequest) (*entity.Route, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type routeService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewRouteService(repo *repository.Repository, clk clock.Clock, log *zap.Logger) RouteService {
	return &routeService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "route")),
	}
}

func (s *routeService) List(ctx context.Context, page *request.PaginatedRequest, filter repository.RouteFilter) ([]*entity.Route, int64, error) {
	routes, err := s.repo.Route.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Route.CountAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return routes, total, nil
}

func (s *routeService) Get(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	r, err := s.repo.Route.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.NewNotFound("route", id)
	}
	return r, nil
}

func (s *routeService) Create(ctx context.Context, req *request.RouteRequest) (*entity.Route, error) {
	src, dst, err := s.parseEnds(req)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	r := &entity.Route{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		SourceID:      src,
		DestinationID: dst,
	}
	if err := s.repo.Route.Create(ctx, r); err != nil {
		return nil, err
	}

	s.log.Info("Route created", zap.String("route_id", r.ID.String()))
	return r, nil
}

func (s *routeService) Update(ctx context.Context, id uuid.UUID, req *request.RouteRequest) (*entity.Route, error) {
	src, dst, err := s.parseEnds(req)
	if err != nil {
		return nil, err
	}

	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.SourceID = src
	r.DestinationID = dst
	r.UpdatedAt = s.clock.Now()
	if err := s.repo.Route.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *routeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Route.Delete(ctx, id)
}

func (s *routeService) parseEnds(req *request.RouteRequest) (uuid.UUID, uuid.UUID, error) {
	if err := validateRequest(req); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	src, err := parseID("source_id", req.SourceID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	dst, err := parseID("destination_id", req.DestinationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if src == dst {
		return uuid.Nil, uuid.Nil, domain.NewValidationError("destination_id", "Must differ from source_id")
	}
	return src, dst, nil
}
