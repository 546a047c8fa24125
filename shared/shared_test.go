package shared_test

import (
	"context"
	"errors"
	"rendezvous/shared"
	cacheMocks "rendezvous/shared/cache/mocks"
	"rendezvous/shared/constant"
	"rendezvous/shared/dto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(5, 0))
	assert.Equal(t, 3, shared.CalculateTotalPage(21, 10))
	assert.Equal(t, 2, shared.CalculateTotalPage(20, 10))
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Plate  string `db:"plate"`
		Status string `db:"status"`
		Note   string
	}

	fields := shared.TransformFields(patch{Plate: "1234-AB-56", Note: "ignored"}, "driver-1")

	assert.Equal(t, "1234-AB-56", fields["plate"])
	assert.NotContains(t, fields, "status")
	assert.NotContains(t, fields, "Note")
	assert.Equal(t, "driver-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID(int64(42), "id", "bookings")
	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, int64(42), args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:42", shared.BuildCacheKey("booking:get", "42"))
	assert.Equal(t, "limiter", shared.BuildCacheKey("limiter"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := func(plate string) dto.FilterGroup {
		return dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters:  []any{dto.Filter{Field: "plate", Operator: dto.FilterOperatorEq, Value: plate}},
		}
	}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter("123-A-1"))
	again := shared.BuildCacheKeyWithQuery("booking:gets", params, filter("123-A-1"))
	other := shared.BuildCacheKeyWithQuery("booking:gets", params, filter("456-B-2"))

	assert.True(t, strings.HasPrefix(first, "booking:gets:"))
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets:*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "booking:count:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets")
	shared.InvalidateCaches(context.Background(), mockCache, "booking:count")
}

func TestCurrentUser(t *testing.T) {
	id, role := shared.CurrentUser(context.Background())
	assert.Empty(t, id)
	assert.Empty(t, role)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	id, role = shared.CurrentUser(ctx)
	assert.Equal(t, "u-1", id)
	assert.Equal(t, constant.RoleAdmin, role)
}

func TestIsStaff(t *testing.T) {
	assert.True(t, shared.IsStaff(constant.RoleAdmin))
	assert.True(t, shared.IsStaff(constant.RoleSuperAdmin))
	assert.False(t, shared.IsStaff(constant.RoleUser))
	assert.False(t, shared.IsStaff(""))
}
