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

type AirplaneTypeHandler struct {
	service usecase.AirplaneTypeService
	log     *zap.Logger
}

func NewAirplaneTypeHandler(service usecase.AirplaneTypeService, log *zap.Logger) *AirplaneTypeHandler {
	return &AirplaneTypeHandler{
		service: service,
		log:     log.With(zap.String("handler", "airplane_type")),
	}
}

// List handles GET /api/airport/airplane_types (unpaginated)
func (h *AirplaneTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list airplane types")
		return
	}

	out := make([]response.AirplaneTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, response.AirplaneTypeToResponse(t))
	}
	utils.ResponseSuccess(w, "success", out)
}

// Get handles GET /api/airport/airplane_types/{id}
func (h *AirplaneTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airplane type")
	if !ok {
		return
	}

	t, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get airplane type")
		return
	}

	utils.ResponseSuccess(w, "success", response.AirplaneTypeToResponse(t))
}

// Create handles POST /api/airport/airplane_types (staff)
func (h *AirplaneTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.AirplaneTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create airplane type")
		return
	}

	utils.ResponseCreated(w, "success", response.AirplaneTypeToResponse(t))
}

// Update handles PUT /api/airport/airplane_types/{id} (staff)
func (h *AirplaneTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airplane type")
	if !ok {
		return
	}

	var req request.AirplaneTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update airplane type")
		return
	}

	utils.ResponseSuccess(w, "success", response.AirplaneTypeToResponse(t))
}

// Delete handles DELETE /api/airport/airplane_types/{id} (staff)
func (h *AirplaneTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airplane type")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete airplane type")
		return
	}

	utils.ResponseNoContent(w)
}

type AirplaneHandler struct {
	service  usecase.AirplaneService
	maxImage int64
	log      *zap.Logger
}

func NewAirplaneHandler(service usecase.AirplaneService, maxImage int64, log *zap.Logger) *AirplaneHandler {
	return &AirplaneHandler{
		service:  service,
		maxImage: maxImage,
		log:      log.With(zap.String("handler", "airplane")),
	}
}

// List handles GET /api/airport/airplanes?airplane_type=
func (h *AirplaneHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := repository.AirplaneFilter{AirplaneTypeID: q.uuid("airplane_type")}
	if !q.ok(w) {
		return
	}
	page := request.NewPaginatedRequest(r.URL.Query(), request.DefaultPageSize)

	airplanes, total, err := h.service.List(r.Context(), page, filter)
	if err != nil {
		writeServiceError(w, h.log, err, "list airplanes")
		return
	}

	utils.ResponseSuccess(w, "success",
		response.NewPaginatedResponse(response.Airplanes(response.ViewList, airplanes), page.Page, page.Limit(), total))
}

// Get handles GET /api/airport/airplanes/{id}
func (h *AirplaneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airplane")
	if !ok {
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get airplane")
		return
	}

	utils.ResponseSuccess(w, "success", response.Airplane(response.ViewRetrieve, a))
}

// Create handles POST /api/airport/airplanes (staff)
func (h *AirplaneHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.AirplaneRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create airplane")
		return
	}

	utils.ResponseCreated(w, "success", response.Airplane(response.ViewCreate, a))
}

// Update handles PUT /api/airport/airplanes/{id} (staff)
func (h *AirplaneHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airplane")
	if !ok {
		return
	}

	var req request.AirplaneRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update airplane")
		return
	}

	utils.ResponseSuccess(w, "success", response.Airplane(response.ViewUpdate, a))
}

// Delete handles DELETE /api/airport/airplanes/{id} (staff)
func (h *AirplaneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airplane")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete airplane")
		return
	}

	utils.ResponseNoContent(w)
}

// UploadImage handles POST /api/airport/airplanes/{id}/upload-image (staff)
func (h *AirplaneHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "airplane")
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
		writeServiceError(w, h.log, err, "upload airplane image")
		return
	}

	utils.ResponseSuccess(w, "success", response.Airplane(response.ViewUpload, a))
}
