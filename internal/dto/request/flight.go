package request

import "time"

type FlightRequest struct {
	RouteID       string    `json:"route_id" validate:"required,uuid"`
	AirplaneID    string    `json:"airplane_id" validate:"required,uuid"`
	CrewIDs       []string  `json:"crew_ids" validate:"dive,uuid"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required,gtfield=DepartureTime"`
}
