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

type CrewHandler struct {
	service  usecase.CrewService
	maxImage int64
	log      *zap.Logger
}

func NewCrewHandler(service usecase.CrewService, maxImage int64, log *zap.Logger) *CrewHandler {
	return &CrewHandler{
		service:  service,
		maxImage: maxImage,
		log:      log.With(zap.String("handler", "crew")),
	}
}

// List handles GET /api/airport/crews?position=
func (h *CrewHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := repository.CrewFilter{Position: q.string("position")}
	page := request.NewPaginatedRequest(r.URL.Query(), request.DefaultPageSize)

	crews, total, err := h.service.List(r.Context(), page, filter)
	if err != nil {
		writeServiceError(w, h.log, err, "list crews")
		return
	}

	utils.ResponseSuccess(w, "success",
		response.NewPaginatedResponse(response.Crews(response.ViewList, crews), page.Page, page.Limit(), total))
}

func (h *CrewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "crew")
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, err, "get crew")
		return
	}

	utils.ResponseSuccess(w, "success", response.Crew(response.ViewRetrieve, c))
}

func (h *CrewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CrewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create crew")
		return
	}

	utils.ResponseCreated(w, "success", response.Crew(response.ViewCreate, c))
}

func (h *CrewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "crew")
	if !ok {
		return
	}

	var req request.CrewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update crew")
		return
	}

	utils.ResponseSuccess(w, "success", response.Crew(response.ViewUpdate, c))
}

func (h *CrewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "crew")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete crew")
		return
	}

	utils.ResponseNoContent(w)
}

func (h *CrewHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "crew")
	if !ok {
		return
	}

	upload, done, ok := imageUpload(w, r, h.maxImage)
	if !ok {
		return
	}
	defer done()

	c, err := h.service.UploadImage(r.Context(), id, upload)
	if err != nil {
		writeServiceError(w, h.log, err, "upload crew image")
		return
	}

	utils.ResponseSuccess(w, "success", response.Crew(response.ViewUpload, c))
}
