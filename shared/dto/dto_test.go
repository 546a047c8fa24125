package dto_test

import (
	"net/http"
	"net/http/httptest"
	"rendezvous/shared/constant"
	"rendezvous/shared/dto"
	"rendezvous/shared/model"
	"rendezvous/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadataFromModel(t *testing.T) {
	createdAt := time.Date(2030, 3, 1, 8, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2030, 3, 2, 9, 30, 0, 0, time.UTC)

	t.Run("staff edit", func(t *testing.T) {
		metadata := dto.Metadata{}
		metadata.FromModel(model.Metadata{
			CreatedAt:  createdAt,
			ModifiedAt: modifiedAt,
			CreatedBy:  "u-1",
			ModifiedBy: "a-9",
		})

		assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
		assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
		assert.Equal(t, "u-1", metadata.CreatedBy)
		assert.Equal(t, "a-9", metadata.ModifiedBy)
	})

	t.Run("guest booking", func(t *testing.T) {
		metadata := dto.Metadata{}
		metadata.FromModel(model.Metadata{CreatedAt: createdAt, CreatedBy: constant.ContextGuest})

		assert.Empty(t, metadata.CreatedBy)
		assert.Empty(t, metadata.ModifiedAt)
	})
}

func TestQueryParamsFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		defaults bool
		expected dto.QueryParams
	}{
		{"everything", "page=2&limit=20&sort_by=scheduled_date&sort_dir=asc", false, dto.QueryParams{Page: 2, Limit: 20, SortBy: "scheduled_date", SortDir: dto.SortDirAsc}},
		{"nothing without defaults", "", false, dto.QueryParams{}},
		{"nothing with defaults", "", true, dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}},
		{"garbage page", "page=first", true, dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}},
		{"zero page", "page=0&limit=-4", true, dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}},
		{"oversized limit", "limit=5000", true, dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.MaxValueLimit}},
		{"unknown direction", "sort_by=plate&sort_dir=sideways", false, dto.QueryParams{SortBy: "plate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/v1/bookings?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(request, tt.defaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParamsOffset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, dto.QueryParams{Page: 3, Limit: 20}.Offset())
}

func TestFilterWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		where  string
		args   map[string]any
	}{
		{
			name:   "equality",
			filter: dto.Eq("bookings", "plate", "1234-AB-56"),
			where:  "bookings.plate = :plate",
			args:   map[string]any{"plate": "1234-AB-56"},
		},
		{
			name:   "renamed argument",
			filter: dto.Filter{Table: "bookings", Field: "scheduled_date", ArgName: "date_from", Value: "2030-03-12", Operator: dto.FilterOperatorGreaterEq},
			where:  "bookings.scheduled_date >= :date_from",
			args:   map[string]any{"date_from": "2030-03-12"},
		},
		{
			name:   "like",
			filter: dto.Filter{Field: "driver_code", Value: "drv", Operator: dto.FilterOperatorLike},
			where:  "LOWER(driver_code) LIKE LOWER(:driver_code)",
			args:   map[string]any{"driver_code": "%drv%"},
		},
		{
			name:   "in",
			filter: dto.Filter{Field: "status", Value: []string{"pending", "validated"}, Operator: dto.FilterOperatorIn},
			where:  "status IN (:status_0, :status_1)",
			args:   map[string]any{"status_0": "pending", "status_1": "validated"},
		},
		{
			name:   "empty in",
			filter: dto.Filter{Field: "id", Value: []int64{}, Operator: dto.FilterOperatorIn},
			where:  "FALSE",
			args:   map[string]any{},
		},
		{
			name:   "scalar in",
			filter: dto.Filter{Field: "id", Value: int64(7), Operator: dto.FilterOperatorIn},
			where:  "id IN (:id)",
			args:   map[string]any{"id": int64(7)},
		},
		{
			name:   "null",
			filter: dto.Filter{Table: "bookings", Field: "qr_code", Operator: dto.FilterIsNull},
			where:  "bookings.qr_code IS NULL",
			args:   map[string]any{},
		},
		{
			name:   "unknown operator",
			filter: dto.Filter{Field: "plate", Value: "x", Operator: "between"},
			where:  "",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGroupWhereClause(t *testing.T) {
	missing := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{Field: "qr_code", Operator: dto.FilterIsNull},
			dto.Filter{Field: "qr_code", Value: "", Operator: dto.FilterOperatorEq},
		},
	}

	group := dto.All(
		dto.Eq("bookings", "plate", "1234-AB-56"),
		missing,
		dto.Filter{Field: "ignored", Operator: "between"},
		"not a filter",
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.plate = :plate AND (qr_code IS NULL OR qr_code = :qr_code))", where)
	assert.Equal(t, map[string]any{"plate": "1234-AB-56", "qr_code": ""}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
