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

type CrewService interface {
	List(ctx context.Context, page *request.PaginatedRequest, filter repository.CrewFilter) ([]*entity.Crew, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Crew, error)
	Create(ctx context.Context, req *request.CrewRequest) (*entity.Crew, error)
	Update(ctx context.Context, id uuid.UUID, req *request.CrewRequest) (*entity.Crew, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*entity.Crew, error)
}

type crewService struct {
	repo   *repository.Repository
	clock  clock.Clock
	images ImageStore
	log    *zap.Logger
}

func NewCrewService(repo *repository.Repository, infra Infra, log *zap.Logger) CrewService {
	return &crewService{
		repo:   repo,
		clock:  infra.Clock,
		images: infra.Images,
		log:    log.With(zap.String("service", "crew")),
	}
}

func (s *crewService) List(ctx context.Context, page *request.PaginatedRequest, filter repository.CrewFilter) ([]*entity.Crew, int64, error) {
	crews, err := s.repo.Crew.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Crew.CountAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return crews, total, nil
}

func (s *crewService) Get(ctx context.Context, id uuid.UUID) (*entity.Crew, error) {
	c, err := s.repo.Crew.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("crew", id)
	}
	return c, nil
}

func (s *crewService) Create(ctx context.Context, req *request.CrewRequest) (*entity.Crew, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	c := &entity.Crew{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  entity.CrewPosition(req.Position),
	}
	if err := s.repo.Crew.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info("Crew created", zap.String("crew_id", c.ID.String()), zap.String("position", req.Position))
	return c, nil
}

func (s *crewService) Update(ctx context.Context, id uuid.UUID, req *request.CrewRequest) (*entity.Crew, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.FirstName = req.FirstName
	c.LastName = req.LastName
	c.Position = entity.CrewPosition(req.Position)
	c.UpdatedAt = s.clock.Now()

	if err := s.repo.Crew.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *crewService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Crew.Delete(ctx, id); err != nil {
		return err
	}
	if c.Image != nil && s.images != nil {
		s.images.Remove(*c.Image)
	}
	return nil
}

func (s *crewService) UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*entity.Crew, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := replaceImage(ctx, s.images, s.log, "crew", c.FullName(), c.Image, upload, func(ctx context.Context, url string) error {
		return s.repo.Crew.UpdateImage(ctx, id, url)
	})
	if err != nil {
		return nil, err
	}
	c.Image = &url
	return c, nil
}
