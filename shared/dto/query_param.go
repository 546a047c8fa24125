package dto

import (
	"net/http"
	"net/url"
	"rendezvous/shared/constant"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries paging and ordering of a list request. SortBy is matched against
// the repository's column list before it reaches SQL.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty,gte=1"`
	Limit   int    `json:"limit"    validate:"omitempty,gte=1,lte=100"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Malformed values are ignored.
// With defaults set, missing paging falls back to the first page of DefaultValueLimit
// and an oversized limit is clamped to MaxValueLimit.
func (q *QueryParams) FromRequest(r *http.Request, defaults bool) {
	values := r.URL.Query()

	q.Page = positive(values, constant.RequestParamPage, q.Page)
	q.Limit = positive(values, constant.RequestParamLimit, q.Limit)

	if sortBy := strings.TrimSpace(values.Get(constant.RequestParamSortBy)); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !defaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}

	q.Limit = min(q.Limit, constant.MaxValueLimit)
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func positive(values url.Values, key string, fallback int) int {
	parsed, err := strconv.Atoi(values.Get(key))
	if err != nil || parsed < 1 {
		return fallback
	}

	return parsed
}
