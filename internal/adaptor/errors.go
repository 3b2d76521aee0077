package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"airport-api/internal/domain"
	"airport-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeServiceError maps service errors onto HTTP responses. Anything it
// does not recognise is logged and reported as 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var (
		validation *domain.ValidationError
		bounds     *domain.BoundsError
		taken      *domain.SeatTakenError
	)

	switch {
	case errors.As(err, &validation):
		utils.ResponseBadRequest(w, "Validation failed", validation.Fields)

	case errors.As(err, &bounds):
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{bounds.Field: bounds.Error()})

	case errors.Is(err, domain.ErrEmptyOrder):
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"tickets": err.Error()})

	case errors.Is(err, domain.ErrInvalidImage):
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"image": err.Error()})

	case errors.As(err, &taken):
		log.Info(operation+" failed - seat taken", zap.Error(err))
		utils.ResponseConflict(w, "Seat already taken", map[string]any{
			"flight_id": taken.FlightID.String(),
			"row":       taken.Row,
			"seat":      taken.Seat,
		})

	case errors.Is(err, domain.ErrNotFound):
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, domain.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, domain.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "No active account found with the given credentials")

	case errors.Is(err, domain.ErrUnauthorized):
		utils.ResponseUnauthorized(w, "Authentication required")

	case errors.Is(err, domain.ErrForbidden):
		utils.ResponseForbidden(w, "You do not have permission to perform this action")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeJSON reads the request body into dst and answers 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter and answers 404 when it is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseNotFound(w, resource+" not found")
		return uuid.Nil, false
	}
	return id, true
}

// queryParser collects filter errors so a handler can report all of them at once.
type queryParser struct {
	r      *http.Request
	errors map[string]string
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{r: r, errors: map[string]string{}}
}

func (q *queryParser) string(name string) *string {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	return &v
}

func (q *queryParser) uuid(name string) *uuid.UUID {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		q.errors[name] = "Must be a valid UUID"
		return nil
	}
	return &id
}

// date accepts YYYY-MM-DD.
func (q *queryParser) date(name string) *time.Time {
	v := q.r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	d, err := time.Parse(time.DateOnly, v)
	if err != nil {
		q.errors[name] = "Must be a date in YYYY-MM-DD format"
		return nil
	}
	return &d
}

// ok answers 400 with the collected errors when there are any.
func (q *queryParser) ok(w http.ResponseWriter) bool {
	if len(q.errors) > 0 {
		utils.ResponseBadRequest(w, "Invalid query parameters", q.errors)
		return false
	}
	return true
}
