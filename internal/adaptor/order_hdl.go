package adaptor

import (
	"errors"
	"net/http"

	"airport-api/internal/data/repository"
	"airport-api/internal/domain"
	"airport-api/internal/dto/request"
	"airport-api/internal/dto/response"
	"airport-api/internal/usecase"
	"airport-api/pkg/utils"

	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// Create handles POST /api/airport/orders (protected)
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Create(r.Context(), userID, &req)
	var missing *domain.NotFoundError
	if errors.As(err, &missing) {
		// an unknown flight inside the body is a bad request, not a missing order
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"tickets": missing.Error()})
		return
	}
	if err != nil {
		writeServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "success", response.Order(response.ViewCreate, order))
}

// List handles GET /api/airport/orders?created_at= (protected, own orders)
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	q := newQueryParser(r)
	filter := repository.OrderFilter{CreatedDate: q.date("created_at")}
	if !q.ok(w) {
		return
	}
	page := request.NewPaginatedRequest(r.URL.Query(), request.DefaultSmallPageSize)

	orders, total, err := h.service.List(r.Context(), userID, page, filter)
	if err != nil {
		writeServiceError(w, h.log, err, "list orders")
		return
	}

	utils.ResponseSuccess(w, "success",
		response.NewPaginatedResponse(response.Orders(response.ViewList, orders), page.Page, page.Limit(), total))
}

// Get handles GET /api/airport/orders/{id} (protected, own orders)
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, ok := pathID(w, r, "order")
	if !ok {
		return
	}

	order, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "success", response.Order(response.ViewRetrieve, order))
}

// Delete handles DELETE /api/airport/orders/{id} (staff)
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "order")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, err, "delete order")
		return
	}

	utils.ResponseNoContent(w)
}
