package usecase

import (
	"context"
	"strings"

	"airport-api/internal/clock"
	"airport-api/internal/data/entity"
	"airport-api/internal/data/repository"
	"airport-api/internal/domain"
	"airport-api/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AirportService interface {
	List(ctx context.Context, page *request.PaginatedRequest, filter repository.AirportFilter) ([]*entity.Airport, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Airport, error)
	Create(ctx context.Context, req *request.AirportRequest) (*entity.Airport, error)
	Update(ctx context.Context, id uuid.UUID, req *request.AirportRequest) (*entity.Airport, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*entity.Airport, error)
}

type airportService struct {
	repo   *repository.Repository
	clock  clock.Clock
	images ImageStore
	log    *zap.Logger
}

func NewAirportService(repo *repository.Repository, infra Infra, log *zap.Logger) AirportService {
	return &airportService{
		repo:   repo,
		clock:  infra.Clock,
		images: infra.Images,
		log:    log.With(zap.String("service", "airport")),
	}
}

func (s *airportService) List(ctx context.Context, page *request.PaginatedRequest, filter repository.AirportFilter) ([]*entity.Airport, int64, error) {
	airports, err := s.repo.Airport.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Airport.CountAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return airports, total, nil
}

func (s *airportService) Get(ctx context.Context, id uuid.UUID) (*entity.Airport, error) {
	a, err := s.repo.Airport.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NewNotFound("airport", id)
	}
	return a, nil
}

func (s *airportService) Create(ctx context.Context, req *request.AirportRequest) (*entity.Airport, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	a := &entity.Airport{Base: entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}}
	applyAirport(a, req)
	if err := s.repo.Airport.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info("Airport created", zap.String("airport_id", a.ID.String()), zap.String("iata_code", a.IATACode))
	return a, nil
}

func (s *airportService) Update(ctx context.Context, id uuid.UUID, req *request.AirportRequest) (*entity.Airport, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyAirport(a, req)
	a.UpdatedAt = s.clock.Now()

	if err := s.repo.Airport.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *airportService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Airport.Delete(ctx, id); err != nil {
		return err
	}
	if a.Image != nil && s.images != nil {
		s.images.Remove(*a.Image)
	}
	return nil
}

func (s *airportService) UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*entity.Airport, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := replaceImage(ctx, s.images, s.log, "airport", a.Name, a.Image, upload, func(ctx context.Context, url string) error {
		return s.repo.Airport.UpdateImage(ctx, id, url)
	})
	if err != nil {
		return nil, err
	}
	a.Image = &url
	return a, nil
}

// applyAirport copies a validated request; latitude and longitude are
// guaranteed non-nil by the required tag.
func applyAirport(a *entity.Airport, req *request.AirportRequest) {
	a.Name = strings.TrimSpace(req.Name)
	a.City = strings.TrimSpace(req.City)
	a.Country = strings.TrimSpace(req.Country)
	a.IATACode = strings.ToUpper(req.IATACode)
	a.Latitude = *req.Latitude
	a.Longitude = *req.Longitude
}
