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

type AirportHandler struct {
	service  usecase.AirportService
	maxImage int64
	log      *zap.Logger
}

func NewAirportHandler(service usecase.AirportService, maxImage int64, log *zap.Logger) *AirportHandler {
	return &AirportHandler{
		service:  service,
		maxImage: maxImage,
		log:      log.With(zap.String("handler", "airport")),
	}
}

// List handles GET /api/airport/airports?city=&country=
func (h *AirportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := repository.AirportFilter{City: q.string("city"), Country: q.string("country")}
	page := request.NewPaginatedRequest(r.URL.Query(), request.DefaultPageSize)

	airports, total, err := h.service.List(r.Context(), page, filter)
	if err != nil {
		writeServiceError(w, h.log, err, "list airports")
		return
	}

	utils.ResponseSuccess(w, "success",
		response.NewPaginatedResponse(response.Airports(response.ViewList, airports), page.Page, page.Limit(), total))
}

func (h *AirportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airport")
	if !ok {
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get airport")
		return
	}

	utils.ResponseSuccess(w, "success", response.Airport(response.ViewRetrieve, a))
}

func (h *AirportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.AirportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create airport")
		return
	}

	utils.ResponseCreated(w, "success", response.Airport(response.ViewCreate, a))
}

func (h *AirportHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airport")
	if !ok {
		return
	}

	var req request.AirportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update airport")
		return
	}

	utils.ResponseSuccess(w, "success", response.Airport(response.ViewUpdate, a))
}

func (h *AirportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airport")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete airport")
		return
	}

	utils.ResponseNoContent(w)
}

func (h *AirportHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airport")
	if !ok {
		return
	}

	upload, done, ok := imageUpload(w, r, h.maxImage)
	if !ok {
		return
	}
	defer done()

	a, err := h.service.UploadImage(r.Context(), id, upload)
	if err != nil {
		writeServiceError(w, h.log, err, "upload airport image")
		return
	}

	utils.ResponseSuccess(w, "success", response.Airport(response.ViewUpload, a))
}

type RouteHandler struct {
	service usecase.RouteService
	log     *zap.Logger
}

func NewRouteHandler(service usecase.RouteService, log *zap.Logger) *RouteHandler {
	return &RouteHandler{
		service: service,
		log:     log.With(zap.String("handler", "route")),
	}
}

// List handles GET /api/airport/routes?source=&destination=
func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := repository.RouteFilter{SourceID: q.uuid("source"), DestinationID: q.uuid("destination")}
	if !q.ok(w) {
		return
	}
	page := request.NewPaginatedRequest(r.URL.Query(), request.DefaultSmallPageSize)

	routes, total, err := h.service.List(r.Context(), page, filter)
	if err != nil {
		writeServiceError(w, h.log, err, "list routes")
		return
	}

	utils.ResponseSuccess(w, "success",
		response.NewPaginatedResponse(response.Routes(response.ViewList, routes), page.Page, page.Limit(), total))
}

func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "route")
	if !ok {
		return
	}

	route, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get route")
		return
	}

	utils.ResponseSuccess(w, "success", response.Route(response.ViewRetrieve, route))
}

func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create route")
		return
	}

	utils.ResponseCreated(w, "success", response.Route(response.ViewCreate, route))
}

func (h *RouteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "route")
	if !ok {
		return
	}

	var req request.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	route, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update route")
		return
	}

	utils.ResponseSuccess(w, "success", response.Route(response.ViewUpdate, route))
}

func (h *RouteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "route")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete route")
		return
	}

	utils.ResponseNoContent(w)
}
