package dto

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"hotelos/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams is the paging and sorting part of every list endpoint.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

func positiveInt(values url.Values, key string) int {
	n, err := strconv.Atoi(values.Get(key))
	if err != nil || n < 1 {
		return 0
	}

	return n
}

// FromRequest reads page, limit, sort_by and sort_dir. Invalid numbers are
// ignored. With withDefaults, page and limit fall back to 1 and 10 so list
// endpoints never return an unbounded result.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	if page := positiveInt(values, constant.RequestParamPage); page > 0 {
		q.Page = page
	}

	if limit := positiveInt(values, constant.RequestParamLimit); limit > 0 {
		q.Limit = limit
	}

	if sortBy := values.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// RestrictSort drops SortBy when it is not one of columns, since it is
// interpolated into ORDER BY. SortDir falls back to ASC when only SortBy is set.
func (q *QueryParams) RestrictSort(columns ...string) {
	if q.SortBy == "" {
		return
	}

	for _, col := range columns {
		if strings.EqualFold(col, q.SortBy) {
			q.SortBy = col

			if q.SortDir == "" {
				q.SortDir = SortDirAsc
			}

			return
		}
	}

	q.SortBy = ""
	q.SortDir = ""
}

// Offset is the row offset of Page, zero when paging is off.
func (q *QueryParams) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// OrderBy renders the ORDER BY clause for table, or "" when unsorted.
func (q *QueryParams) OrderBy(table string) string {
	if q.SortBy == "" || q.SortDir == "" {
		return ""
	}

	return fmt.Sprintf("ORDER BY %s.%s %s", table, q.SortBy, q.SortDir)
}
