package queue

import "time"

// OrderCreatedEvent is published after an order and its tickets are committed.
type OrderCreatedEvent struct {
	OrderID   string        `json:"order_id"`
	UserID    string        `json:"user_id"`
	CreatedAt time.Time     `json:"created_at"`
	Tickets   []TicketEvent `json:"tickets"`
}

type TicketEvent struct {
	TicketID string `json:"ticket_id"`
	FlightID string `json:"flight_id"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
}
