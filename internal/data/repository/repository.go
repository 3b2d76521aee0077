package repository

import (
	"airport-api/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx           Transactor
	User         UserRepository
	Session      SessionRepository
	AirplaneType AirplaneTypeRepository
	Airplane     AirplaneRepository
	Crew         CrewRepository
	Airport      AirportRepository
	Route        RouteRepository
	Flight       FlightRepository
	Order        OrderRepository
	Ticket       TicketRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:           NewTransactor(db, log),
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		AirplaneType: NewAirplaneTypeRepository(db, log),
		Airplane:     NewAirplaneRepository(db, log),
		Crew:         NewCrewRepository(db, log),
		Airport:      NewAirportRepository(db, log),
		Route:        NewRouteRepository(db, log),
		Flight:       NewFlightRepository(db, log),
		Order:        NewOrderRepository(db, log),
		Ticket:       NewTicketRepository(db, log),
	}
}
