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

type AirplaneTypeService interface {
	List(ctx context.Context) ([]*entity.AirplaneType, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.AirplaneType, error)
	Create(ctx context.Context, req *request.AirplaneTypeRequest) (*entity.AirplaneType, error)
	Update(ctx context.Context, id uuid.UUID, req *request.AirplaneTypeRequest) (*entity.AirplaneType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type airplaneTypeService struct {
	repo  *repository.Repository
	clock clock.Clock
	log   *zap.Logger
}

func NewAirplaneTypeService(repo *repository.Repository, clk clock.Clock, log *zap.Logger) AirplaneTypeService {
	return &airplaneTypeService{
		repo:  repo,
		clock: clk,
		log:   log.With(zap.String("service", "airplane_type")),
	}
}

func (s *airplaneTypeService) List(ctx context.Context) ([]*entity.AirplaneType, error) {
	return s.repo.AirplaneType.FindAll(ctx)
}

func (s *airplaneTypeService) Get(ctx context.Context, id uuid.UUID) (*entity.AirplaneType, error) {
	t, err := s.repo.AirplaneType.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NewNotFound("airplane type", id)
	}
	return t, nil
}

func (s *airplaneTypeService) Create(ctx context.Context, req *request.AirplaneTypeRequest) (*entity.AirplaneType, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	t := &entity.AirplaneType{
		Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name: entity.AirplaneTypeName(req.Name),
	}
	if err := s.repo.AirplaneType.Create(ctx, t); err != nil {
		return nil, err
	}

	s.log.Info("Airplane type created", zap.String("airplane_type_id", t.ID.String()), zap.String("name", req.Name))
	return t, nil
}

func (s *airplaneTypeService) Update(ctx context.Context, id uuid.UUID, req *request.AirplaneTypeRequest) (*entity.AirplaneType, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = entity.AirplaneTypeName(req.Name)
	t.UpdatedAt = s.clock.Now()

	if err := s.repo.AirplaneType.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *airplaneTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.AirplaneType.Delete(ctx, id)
}
