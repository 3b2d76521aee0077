package response

import (
	"time"

	"airport-api/internal/data/entity"
)

type TicketResponse struct {
	ID       string `json:"id"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	FlightID string `json:"flight_id"`
}

type TicketListResponse struct {
	ID     string              `json:"id"`
	Row    int                 `json:"row"`
	Seat   int                 `json:"seat"`
	Flight *FlightListResponse `json:"flight"`
}

type OrderResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []TicketResponse `json:"tickets"`
}

type OrderListResponse struct {
	ID        string               `json:"id"`
	CreatedAt time.Time            `json:"created_at"`
	Tickets   []TicketListResponse `json:"tickets"`
}

var orderViews = views[*entity.Order]{
	ViewList:     func(o *entity.Order) any { return orderList(o) },
	ViewRetrieve: func(o *entity.Order) any { return orderList(o) },
	ViewCreate:   func(o *entity.Order) any { return orderWrite(o) },
}

func Order(view View, o *entity.Order) any { return orderViews.render(view, o) }

func Orders(view View, items []*entity.Order) []any { return orderViews.renderAll(view, items) }

func orderWrite(o *entity.Order) OrderResponse {
	tickets := make([]TicketResponse, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tickets = append(tickets, TicketResponse{
			ID:       t.ID.String(),
			Row:      t.Row,
			Seat:     t.Seat,
			FlightID: t.FlightID.String(),
		})
	}
	return OrderResponse{ID: o.ID.String(), CreatedAt: o.CreatedAt, Tickets: tickets}
}

func orderList(o *entity.Order) OrderListResponse {
	tickets := make([]TicketListResponse, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		item := TicketListResponse{ID: t.ID.String(), Row: t.Row, Seat: t.Seat}
		if t.Flight != nil {
			flight := FlightSummaryToResponse(t.Flight)
			item.Flight = &flight
		}
		tickets = append(tickets, item)
	}
	return OrderListResponse{ID: o.ID.String(), CreatedAt: o.CreatedAt, Tickets: tickets}
}
