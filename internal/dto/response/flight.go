package response

import (
	"time"

	"airport-api/internal/data/entity"

	"github.com/google/uuid"
)

type FlightResponse struct {
	ID            string    `json:"id"`
	RouteID       string    `json:"route_id"`
	AirplaneID    string    `json:"airplane_id"`
	CrewIDs       []string  `json:"crew_ids"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type FlightListResponse struct {
	ID               string    `json:"id"`
	Route            string    `json:"route"`
	AirplaneName     string    `json:"airplane_name"`
	AirplaneCapacity int       `json:"airplane_capacity"`
	TicketsAvailable int       `json:"tickets_available"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Crews            []string  `json:"crews"`
}

type FlightDetailResponse struct {
	ID            string                 `json:"id"`
	Route         RouteDetailResponse    `json:"route"`
	Airplane      AirplaneDetailResponse `json:"airplane"`
	Crews         []CrewDetailResponse   `json:"crews"`
	DepartureTime time.Time              `json:"departure_time"`
	ArrivalTime   time.Time              `json:"arrival_time"`
	TakenSeats    []SeatResponse         `json:"taken_seats"`
}

type SeatResponse struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// SeatMapResponse is the cached availability of one flight.
type SeatMapResponse struct {
	FlightID         string         `json:"flight_id"`
	Rows             int            `json:"rows"`
	SeatsInRow       int            `json:"seats_in_row"`
	Capacity         int            `json:"capacity"`
	TicketsAvailable int            `json:"tickets_available"`
	TakenSeats       []SeatResponse `json:"taken_seats"`
}

func FlightToResponse(f *entity.Flight) FlightResponse {
	return FlightResponse{
		ID:            f.ID.String(),
		RouteID:       f.RouteID.String(),
		AirplaneID:    f.AirplaneID.String(),
		CrewIDs:       idStrings(f.CrewIDs),
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
	}
}

func FlightSummaryToResponse(s *entity.FlightSummary) FlightListResponse {
	crews := s.Crews
	if crews == nil {
		crews = []string{}
	}
	return FlightListResponse{
		ID:               s.ID.String(),
		Route:            s.RouteLabel,
		AirplaneName:     s.AirplaneName,
		AirplaneCapacity: s.AirplaneCapacity,
		TicketsAvailable: s.TicketsAvailable,
		DepartureTime:    s.DepartureTime,
		ArrivalTime:      s.ArrivalTime,
		Crews:            crews,
	}
}

func FlightSummariesToResponse(items []*entity.FlightSummary) []FlightListResponse {
	out := make([]FlightListResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FlightSummaryToResponse(s))
	}
	return out
}

func FlightDetailToResponse(d *entity.FlightDetail) FlightDetailResponse {
	crews := make([]CrewDetailResponse, 0, len(d.Crews))
	for _, c := range d.Crews {
		crews = append(crews, crewDetail(c))
	}
	return FlightDetailResponse{
		ID:            d.ID.String(),
		Route:         routeDetail(&d.Route),
		Airplane:      airplaneDetail(&d.Airplane),
		Crews:         crews,
		DepartureTime: d.DepartureTime,
		ArrivalTime:   d.ArrivalTime,
		TakenSeats:    SeatsToResponse(d.TakenSeats),
	}
}

func SeatsToResponse(seats []entity.Seat) []SeatResponse {
	out := make([]SeatResponse, 0, len(seats))
	for _, s := range seats {
		out = append(out, SeatResponse{Row: s.Row, Seat: s.Seat})
	}
	return out
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
