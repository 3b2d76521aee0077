package usecase

import (
	"context"
	"io"

	"airport-api/internal/clock"
	"airport-api/internal/data/repository"
	"airport-api/pkg/queue"
	"airport-api/pkg/utils"

	"go.uber.org/zap"
)

// Cache is the subset of *cache.Cache the services use. Implementations
// swallow their own failures.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) bool
	SetJSON(ctx context.Context, key string, value any)
	Delete(ctx context.Context, keys ...string)
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Save(resource, name, filename string, r io.Reader) (string, error)
	Remove(url string)
}

// Infra bundles the non-database collaborators of the services.
type Infra struct {
	Clock  clock.Clock
	Cache  Cache
	Events queue.Publisher
	Images ImageStore
}

type Service struct {
	Auth         AuthService
	AirplaneType AirplaneTypeService
	Airplane     AirplaneService
	Crew         CrewService
	Airport      AirportService
	Route        RouteService
	Flight       FlightService
	Order        OrderService
}

func NewService(repo *repository.Repository, infra Infra, config *utils.Config, log *zap.Logger) *Service {
	if infra.Clock == nil {
		infra.Clock = clock.NewSystem()
	}
	if infra.Cache == nil {
		infra.Cache = noCache{}
	}
	if infra.Events == nil {
		infra.Events = queue.NopPublisher{}
	}

	return &Service{
		Auth:         NewAuthService(repo, infra.Clock, config, log),
		AirplaneType: NewAirplaneTypeService(repo, infra.Clock, log),
		Airplane:     NewAirplaneService(repo, infra, log),
		Crew:         NewCrewService(repo, infra, log),
		Airport:      NewAirportService(repo, infra, log),
		Route:        NewRouteService(repo, infra.Clock, log),
		Flight:       NewFlightService(repo, infra, log),
		Order:        NewOrderService(repo, infra, log),
	}
}

type noCache struct{}

func (noCache) GetJSON(context.Context, string, any) bool { return false }
func (noCache) SetJSON(context.Context, string, any)      {}
func (noCache) Delete(context.Context, ...string)         {}
