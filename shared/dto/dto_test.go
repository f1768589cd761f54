package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"hotelos/shared/constant"
	"hotelos/shared/dto"
	"hotelos/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "front-desk",
		ModifiedBy: "night-audit",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "front-desk", metadata.CreatedBy)
	assert.Equal(t, "night-audit", metadata.ModifiedBy)
}

func TestNewMetadata_NeverModified(t *testing.T) {
	metadata := dto.NewMetadata(model.Metadata{
		CreatedAt: time.Date(2024, 6, 8, 12, 0, 0, 0, time.UTC),
		CreatedBy: "front-desk",
	})

	assert.NotEmpty(t, metadata.CreatedAt)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "all parameters",
			queryParams:    map[string]string{"page": "2", "limit": "20", "sort_by": "room_number", "sort_dir": "asc"},
			defaultRequest: false,
			expected:       dto.QueryParams{Page: 2, Limit: 20, SortBy: "room_number", SortDir: "ASC"},
		},
		{
			name:           "defaults applied",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "no defaults",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name:           "invalid page and negative limit fall back",
			queryParams:    map[string]string{"page": "abc", "limit": "-5"},
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "unknown sort direction ignored",
			queryParams:    map[string]string{"sort_dir": "sideways"},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse("http://example.com/v1/rooms")
			assert.NoError(t, err)

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest(http.MethodGet, u.String(), nil)
			assert.NoError(t, err)

			got := dto.QueryParams{}
			got.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQueryParams_RestrictSort(t *testing.T) {
	tests := []struct {
		name     string
		in       dto.QueryParams
		expected dto.QueryParams
	}{
		{
			name:     "allowed column keeps direction",
			in:       dto.QueryParams{SortBy: "room_number", SortDir: dto.SortDirDesc},
			expected: dto.QueryParams{SortBy: "room_number", SortDir: dto.SortDirDesc},
		},
		{
			name:     "allowed column defaults to ascending",
			in:       dto.QueryParams{SortBy: "ROOM_NUMBER"},
			expected: dto.QueryParams{SortBy: "room_number", SortDir: dto.SortDirAsc},
		},
		{
			name:     "unknown column dropped",
			in:       dto.QueryParams{SortBy: "1; DROP TABLE rooms", SortDir: dto.SortDirAsc},
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.RestrictSort("room_number", "created_at")

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	checkIn := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equal with table",
			filter:    dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq, Table: "bookings"},
			wantWhere: "bookings.room_id = :room_id",
			wantArgs:  map[string]any{"room_id": "r1"},
		},
		{
			name:      "strictly less with arg name",
			filter:    dto.Filter{ArgName: "requested_check_out", Field: "check_in", Value: checkIn, Operator: dto.FilterOperatorLess},
			wantWhere: "check_in < :requested_check_out",
			wantArgs:  map[string]any{"requested_check_out": checkIn},
		},
		{
			name:      "strictly greater",
			filter:    dto.Filter{Field: "check_out", Value: checkIn, Operator: dto.FilterOperatorGreater},
			wantWhere: "check_out > :check_out",
			wantArgs:  map[string]any{"check_out": checkIn},
		},
		{
			name:      "in over slice",
			filter:    dto.Filter{Field: "status", Value: []string{"confirmed", "checked_in"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "confirmed", "status_1": "checked_in"},
		},
		{
			name:      "in over empty slice matches nothing",
			filter:    dto.Filter{Field: "room_id", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "like is case insensitive",
			filter:    dto.Filter{Field: "full_name", Value: "Rao", Operator: dto.FilterOperatorLike, Table: "guests"},
			wantWhere: "LOWER(guests.full_name) LIKE LOWER(:full_name)",
			wantArgs:  map[string]any{"full_name": "%Rao%"},
		},
		{
			name:      "unknown operator is dropped",
			filter:    dto.Filter{Field: "status", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "document_url", Operator: dto.FilterIsNull},
			wantWhere: "document_url IS NULL",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: "r1", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "status", Value: "confirmed", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "status_alt", Field: "status", Value: "checked_in", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND (status = :status OR status = :status_alt))", where)
	assert.Equal(t, map[string]any{"room_id": "r1", "status": "confirmed", "status_alt": "checked_in"}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestQueryParams_OffsetAndOrderBy(t *testing.T) {
	q := dto.QueryParams{Page: 3, Limit: 20, SortBy: "check_in", SortDir: dto.SortDirDesc}

	assert.Equal(t, 40, q.Offset())
	assert.Equal(t, "ORDER BY bookings.check_in DESC", q.OrderBy("bookings"))

	unpaged := dto.QueryParams{Limit: 5}
	assert.Zero(t, unpaged.Offset())
	assert.Empty(t, unpaged.OrderBy("bookings"))
}
