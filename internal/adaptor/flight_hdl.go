package adaptor

import (
	"net/http"

	"airport-api/internal/data/repository"
	"airport-api/internal/dto/request"
	"airport-api/internal/dto/response"
	"airport-api/internal/usecase"
	"airport-api/pkg/utils"

	"go.uber.org/zap"
)

type FlightHandler struct {
	service usecase.FlightService
	log     *zap.Logger
}

func NewFlightHandler(service usecase.FlightService, log *zap.Logger) *FlightHandler {
	return &FlightHandler{
		service: service,
		log:     log.With(zap.String("handler", "flight")),
	}
}

// List handles GET /api/airport/flights?route=&departure_time=&arrival_time=
// Both time filters take a YYYY-MM-DD date.
func (h *FlightHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := repository.FlightFilter{
		RouteID:       q.uuid("route"),
		DepartureDate: q.date("departure_time"),
		ArrivalDate:   q.date("arrival_time"),
	}
	if !q.ok(w) {
		return
	}
	page := request.NewPaginatedRequest(r.URL.Query(), request.DefaultSmallPageSize)

	flights, total, err := h.service.List(r.Context(), page, filter)
	if err != nil {
		writeServiceError(w, h.log, err, "list flights")
		return
	}

	utils.ResponseSuccess(w, "success",
		response.NewPaginatedResponse(response.FlightSummariesToResponse(flights), page.Page, page.Limit(), total))
}

// Get handles GET /api/airport/flights/{id}
func (h *FlightHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "flight")
	if !ok {
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get flight")
		return
	}

	utils.ResponseSuccess(w, "success", response.FlightDetailToResponse(detail))
}

// Seats handles GET /api/airport/flights/{id}/seats
func (h *FlightHandler) Seats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "flight")
	if !ok {
		return
	}

	seats, err := h.service.Seats(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get flight seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// Create handles POST /api/airport/flights (staff)
func (h *FlightHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.FlightRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	f, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create flight")
		return
	}

	utils.ResponseCreated(w, "success", response.FlightToResponse(f))
}

// Update handles PUT /api/airport/flights/{id} (staff)
func (h *FlightHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "flight")
	if !ok {
		return
	}

	var req request.FlightRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	f, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update flight")
		return
	}

	utils.ResponseSuccess(w, "success", response.FlightToResponse(f))
}

// Delete handles DELETE /api/airport/flights/{id} (staff)
func (h *FlightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "flight")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete flight")
		return
	}

	utils.ResponseNoContent(w)
}
