package request

import (
	"net/url"

	"airport-api/pkg/utils"
)

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"page_size" validate:"min=1,max=100"`
}

// Page sizes per resource when the client sends no page_size.
const (
	DefaultPageSize      = 10
	DefaultSmallPageSize = 5
)

// NewPaginatedRequest reads ?page and ?page_size, falling back to defaultSize
// and capping the size at utils.MaxPageSize.
func NewPaginatedRequest(query url.Values, defaultSize int) *PaginatedRequest {
	return &PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ClampPageSize(utils.ParseInt(query.Get("page_size"), defaultSize), defaultSize),
	}
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	return utils.ClampPageSize(p.PerPage, DefaultPageSize)
}
