package adaptor

import (
	"airport-api/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	AirplaneType *AirplaneTypeHandler
	Airplane     *AirplaneHandler
	Crew         *CrewHandler
	Airport      *AirportHandler
	Route        *RouteHandler
	Flight       *FlightHandler
	Order        *OrderHandler
}

// NewHandler builds every handler. maxImage caps upload size in bytes.
func NewHandler(service *usecase.Service, maxImage int64, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.Auth, log),
		AirplaneType: NewAirplaneTypeHandler(service.AirplaneType, log),
		Airplane:     NewAirplaneHandler(service.Airplane, maxImage, log),
		Crew:         NewCrewHandler(service.Crew, maxImage, log),
		Airport:      NewAirportHandler(service.Airport, maxImage, log),
		Route:        NewRouteHandler(service.Route, log),
		Flight:       NewFlightHandler(service.Flight, log),
		Order:        NewOrderHandler(service.Order, log),
	}
}
