package entity

import (
	"time"

	"github.com/google/uuid"
)

type Flight struct {
	Base
	RouteID       uuid.UUID   `db:"route_id"`
	AirplaneID    uuid.UUID   `db:"airplane_id"`
	DepartureTime time.Time   `db:"departure_time"`
	ArrivalTime   time.Time   `db:"arrival_time"`
	CrewIDs       []uuid.UUID `db:"-"`
}

// FlightSummary is one row of the flight list view.
type FlightSummary struct {
	Flight
	RouteLabel       string
	AirplaneName     string
	AirplaneCapacity int
	TicketsAvailable int
	Crews            []string
}

// FlightDetail is a flight with its route, airplane, crews and sold seats loaded.
type FlightDetail struct {
	Flight
	Route      Route
	Airplane   Airplane
	Crews      []*Crew
	TakenSeats []Seat
}

// Seat is a (row, seat) pair on a flight.
type Seat struct {
	Row  int `db:"row_no"`
	Seat int `db:"seat_no"`
}
