package usecase

import (
	"airport-api/internal/domain"
	"airport-api/pkg/utils"

	"github.com/google/uuid"
)

func validateRequest(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &domain.ValidationError{Fields: errs}
	}
	return nil
}

// parseID parses an id taken from a validated request body.
func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "Must be a valid UUID")
	}
	return id, nil
}

func parseIDs(field string, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for _, s := range raw {
		id, err := parseID(field, s)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
