package request

type TicketRequest struct {
	FlightID string `json:"flight_id" validate:"required,uuid"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
}

// OrderRequest only checks shape; seat bounds are checked against the
// flight's airplane when the order is booked.
type OrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"dive"`
}
