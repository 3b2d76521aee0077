package usecase

import (
	"context"
	"fmt"

	"airport-api/internal/clock"
	"airport-api/internal/data/entity"
	"airport-api/internal/data/repository"
	"airport-api/internal/domain"
	"airport-api/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AirplaneService interface {
	List(ctx context.Context, page *request.PaginatedRequest, filter repository.AirplaneFilter) ([]*entity.Airplane, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Airplane, error)
	Create(ctx context.Context, req *request.AirplaneRequest) (*entity.Airplane, error)
	Update(ctx context.Context, id uuid.UUID, req *request.AirplaneRequest) (*entity.Airplane, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*entity.Airplane, error)
}

type airplaneService struct {
	repo   *repository.Repository
	clock  clock.Clock
	images ImageStore
	log    *zap.Logger
}

func NewAirplaneService(repo *repository.Repository, infra Infra, log *zap.Logger) AirplaneService {
	return &airplaneService{
		repo:   repo,
		clock:  infra.Clock,
		images: infra.Images,
		log:    log.With(zap.String("service", "airplane")),
	}
}

func (s *airplaneService) List(ctx context.Context, page *request.PaginatedRequest, filter repository.AirplaneFilter) ([]*entity.Airplane, int64, error) {
	airplanes, err := s.repo.Airplane.FindAll(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Airplane.CountAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return airplanes, total, nil
}

func (s *airplaneService) Get(ctx context.Context, id uuid.UUID) (*entity.Airplane, error) {
	a, err := s.repo.Airplane.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.NewNotFound("airplane", id)
	}
	return a, nil
}

func (s *airplaneService) Create(ctx context.Context, req *request.AirplaneRequest) (*entity.Airplane, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	typeID, err := parseID("airplane_type_id", req.AirplaneTypeID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	a := &entity.Airplane{
		Base:           entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:           req.Name,
		Rows:           req.Rows,
		SeatsInRow:     req.SeatsInRow,
		AirplaneTypeID: typeID,
	}
	if err := s.repo.Airplane.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info("Airplane created",
		zap.String("airplane_id", a.ID.String()),
		zap.Int("rows", a.Rows),
		zap.Int("seats_in_row", a.SeatsInRow),
	)
	return a, nil
}

// Update refuses to change the seat grid once tickets have been sold on any
// flight of the airplane. The airplane row stays locked until the update
// commits, so no booking can slip in between the check and the write.
func (s *airplaneService) Update(ctx context.Context, id uuid.UUID, req *request.AirplaneRequest) (*entity.Airplane, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	typeID, err := parseID("airplane_type_id", req.AirplaneTypeID)
	if err != nil {
		return nil, err
	}

	var updated *entity.Airplane
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.Airplane.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.NewNotFound("airplane", id)
		}

		if a.Rows != req.Rows || a.SeatsInRow != req.SeatsInRow {
			sold, err := s.repo.Airplane.CountSoldTickets(ctx, id)
			if err != nil {
				return err
			}
			if sold > 0 {
				return fmt.Errorf("airplane %s has %d sold tickets, seat layout cannot change: %w", id, sold, domain.ErrConflict)
			}
		}

		a.Name = req.Name
		a.Rows = req.Rows
		a.SeatsInRow = req.SeatsInRow
		a.AirplaneTypeID = typeID
		a.UpdatedAt = s.clock.Now()
		if err := s.repo.Airplane.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *airplaneService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Airplane.Delete(ctx, id); err != nil {
		return err
	}
	if a.Image != nil && s.images != nil {
		s.images.Remove(*a.Image)
	}
	return nil
}

func (s *airplaneService) UploadImage(ctx context.Context, id uuid.UUID, upload ImageUpload) (*entity.Airplane, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := replaceImage(ctx, s.images, s.log, "airplane", a.Name, a.Image, upload, func(ctx context.Context, url string) error {
		return s.repo.Airplane.UpdateImage(ctx, id, url)
	})
	if err != nil {
		return nil, err
	}
	a.Image = &url
	return a, nil
}
