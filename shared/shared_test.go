package shared_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hotelos/shared"
	cacheMocks "hotelos/shared/cache/mocks"
	"hotelos/shared/constant"
	"hotelos/shared/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "one", input: "1", expected: boolPtr(true)},
		{name: "upper case", input: "FALSE", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 30, limit: 0, expected: 1},
		{name: "exact division", total: 30, limit: 10, expected: 3},
		{name: "rounds up", total: 31, limit: 10, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	floor := 3

	type updateRoom struct {
		RoomType string `db:"room_type"`
		Floor    *int   `db:"floor"`
		Notes    string `db:"notes"`
		Ignored  string
	}

	fields := shared.TransformFields(updateRoom{RoomType: "suite", Floor: &floor, Ignored: "x"}, "staff-1")

	assert.Equal(t, "suite", fields["room_type"])
	assert.Equal(t, 3, fields["floor"])
	assert.NotContains(t, fields, "notes")
	assert.NotContains(t, fields, "Ignored")
	assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")

	where, args := filter.GetWhereClause()
	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestFilterByIDs(t *testing.T) {
	filter := shared.FilterByIDs([]string{"b-1", "b-2"}, "id", "bookings")

	where, args := filter.GetWhereClause()
	assert.Equal(t, "(bookings.id IN (:id_0, :id_1))", where)
	assert.Equal(t, map[string]any{"id_0": "b-1", "id_1": "b-2"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:r-1", shared.BuildCacheKey("room:get", "r-1"))
	assert.Equal(t, "ratelimit:127.0.0.1:curl", shared.BuildCacheKey("ratelimit", "127.0.0.1", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "room_number", SortDir: "ASC"}
	filterA := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq}}}
	filterB := dto.FilterGroup{Filters: []any{dto.Filter{Field: "status", Value: "occupied", Operator: dto.FilterOperatorEq}}}

	keyA := shared.BuildCacheKeyWithQuery("room:gets", params, filterA)

	assert.True(t, strings.HasPrefix(keyA, "room:gets:1:10:room_number:ASC:"))
	assert.Equal(t, keyA, shared.BuildCacheKeyWithQuery("room:gets", params, filterA))
	assert.NotEqual(t, keyA, shared.BuildCacheKeyWithQuery("room:gets", params, filterB))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "room:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "room:count")
}
