package entity

import "github.com/google/uuid"

// Order is created once together with its tickets and never updated.
type Order struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	Tickets []*Ticket
}

type Ticket struct {
	ID       uuid.UUID `db:"id"`
	OrderID  uuid.UUID `db:"order_id"`
	FlightID uuid.UUID `db:"flight_id"`
	Row      int       `db:"row_no"`
	Seat     int       `db:"seat_no"`

	// set by order list/detail queries
	Flight *FlightSummary
}
