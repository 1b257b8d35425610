package request

import "fleet-dispatch/pkg/utils"

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// PaginatedRequest is embedded by list filters. Out of range values are
// clamped rather than rejected so dashboard links never 400.
type PaginatedRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

func (p PaginatedRequest) CurrentPage() int {
	return max(p.Page, 1)
}

func (p PaginatedRequest) Limit() int {
	return utils.ClampPerPage(p.PerPage, defaultPerPage, maxPerPage)
}

func (p PaginatedRequest) Offset() int {
	return (p.CurrentPage() - 1) * p.Limit()
}
