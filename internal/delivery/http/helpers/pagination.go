package helpers

import (
	"net/http"
	"strconv"

	"simpleevents/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// QueryInt reads an integer query parameter. A missing parameter yields def;
// a malformed one is an InvalidValueError naming the parameter.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.InvalidValue(name, s)
	}
	return v, nil
}

// ParsePagination reads page and page_size. It never fails: malformed or
// out-of-range values fall back to the defaults and page_size is capped at MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	page, err := QueryInt(r, "page", DefaultPage)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	pageSize, err := QueryInt(r, "page_size", DefaultPageSize)
	if err != nil || pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return domain.PaginationParams{Page: page, PageSize: min(pageSize, MaxPageSize)}
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta computes TotalPages as ceiling(total / pageSize), or 0 when pageSize is 0.
func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
