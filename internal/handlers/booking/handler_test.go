package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	otelMocks "rendezvous/infras/otel/mocks"
	"rendezvous/internal/domains/booking/mocks"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/booking/model/dto"
	credDto "rendezvous/internal/domains/credential/model/dto"
	"rendezvous/internal/handlers/booking"
	gDto "rendezvous/shared/dto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockBooking, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBooking(ctrl)

	handler := booking.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var payload struct {
		Data  T      `json:"data"`
		Error string `json:"error"`
	}

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))

	return payload.Data
}

const createBody = `{
	"driver_code": "DRV-01",
	"plate": "1234-AB-56",
	"container_number": "MSCU1234567",
	"traffic_direction": "inbound",
	"container_state": "full",
	"operation": "import",
	"date": "2030-03-12",
	"time": "09:00"
}`

func TestCreateBooking(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
		assert.Equal(t, "1234-AB-56", req.Plate)
		assert.Equal(t, "09:00", req.Time)

		return dto.BookingResponse{ID: 7, Plate: req.Plate, Interval: "09:00 - 11:00", Status: string(model.StatusPending)}, nil
	})

	recorder := serve(router, http.MethodPost, "/bookings/", createBody)

	assert.Equal(t, http.StatusCreated, recorder.Code)

	res := decode[dto.BookingResponse](t, recorder)
	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, "09:00 - 11:00", res.Interval)
}

func TestCreateBookingRejectsBadBody(t *testing.T) {
	_, router := setup(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"malformed", `{"plate":`, "failed to decode request body"},
		{"missing plate", strings.Replace(createBody, `"1234-AB-56"`, `""`, 1), "plate is required"},
		{"bad time", strings.Replace(createBody, `"09:00"`, `"9 o'clock"`, 1), "time must be a time of day written HH:MM"},
		{"bad operation", strings.Replace(createBody, `"import"`, `"transit"`, 1), "operation must be one of import export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, http.MethodPost, "/bookings/", tt.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.message)
		})
	}
}

func TestCreateBookingConflict(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, &model.SchedulingConflictError{Plate: "1234-AB-56"})

	recorder := serve(router, http.MethodPost, "/bookings/", createBody)

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestGetBookingsFilters(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
		assert.Equal(t, 2, params.Page)
		assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
		require.Len(t, filter.Filters, 3)

		driver, ok := filter.Filters[1].(gDto.Filter)
		require.True(t, ok)
		assert.Equal(t, model.FieldDriverCode, driver.Field)
		assert.Equal(t, gDto.FilterOperatorLike, driver.Operator)

		return dto.GetBookingsResponse{TotalData: 1, TotalPage: 1}, nil
	})

	recorder := serve(router, http.MethodGet, "/bookings/?page=2&plate=1234-AB-56&driver_code=DRV&status=pending", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, decode[dto.GetBookingsResponse](t, recorder).TotalData)
}

func TestGetBookingsRejectsBadFilters(t *testing.T) {
	_, router := setup(t)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/bookings/?status=archived", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/bookings/?date=12-03-2030", "").Code)
}

func TestScheduleViews(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Today(gomock.Any()).Return(dto.GetBookingsResponse{TotalData: 2}, nil)
	svc.EXPECT().Upcoming(gomock.Any()).Return(dto.GetBookingsResponse{TotalData: 5}, nil)
	svc.EXPECT().Mine(gomock.Any(), gomock.Any()).Return(dto.GetBookingsResponse{}, &model.PermissionError{})

	assert.Equal(t, 2, decode[dto.GetBookingsResponse](t, serve(router, http.MethodGet, "/bookings/today", "")).TotalData)
	assert.Equal(t, 5, decode[dto.GetBookingsResponse](t, serve(router, http.MethodGet, "/bookings/upcoming", "")).TotalData)
	assert.Equal(t, http.StatusForbidden, serve(router, http.MethodGet, "/bookings/mine", "").Code)
}

func TestGetConflicts(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().FindConflicts(gomock.Any(), "1234-AB-56", "2030-03-12", "10:30", int64(4)).
		Return(dto.ConflictsResponse{Plate: "1234-AB-56", Conflicts: []dto.BookingResponse{{ID: 3}}}, nil)

	recorder := serve(router, http.MethodGet, "/bookings/conflicts?plate=1234-AB-56&date=2030-03-12&time=10:30&exclude_id=4", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, decode[dto.ConflictsResponse](t, recorder).Conflicts, 1)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/bookings/conflicts?exclude_id=x", "").Code)
}

func TestGetBookingByID(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Get(gomock.Any(), int64(9)).Return(dto.BookingResponse{ID: 9}, nil)
	svc.EXPECT().Get(gomock.Any(), int64(10)).Return(dto.BookingResponse{}, &model.NotFoundError{ID: 10})

	assert.Equal(t, int64(9), decode[dto.BookingResponse](t, serve(router, http.MethodGet, "/bookings/9", "")).ID)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/bookings/10", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/bookings/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/bookings/-1", "").Code)
}

func TestUpdateBooking(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Edit(gomock.Any(), int64(3), gomock.Any()).DoAndReturn(func(_ any, _ int64, req dto.UpdateBookingRequest) (dto.BookingResponse, error) {
		require.NotNil(t, req.Time)
		assert.Equal(t, "13:00", *req.Time)
		assert.Nil(t, req.Plate)

		return dto.BookingResponse{ID: 3, Time: "13:00"}, nil
	})

	recorder := serve(router, http.MethodPatch, "/bookings/3", `{"time":"13:00"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "13:00", decode[dto.BookingResponse](t, recorder).Time)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPatch, "/bookings/3", `{"plate":"   "}`).Code)
}

func TestDeleteBooking(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)
	svc.EXPECT().Delete(gomock.Any(), int64(6)).Return(&model.IllegalTransitionError{From: model.StatusCompleted, Action: model.ActionDelete})

	recorder := serve(router, http.MethodDelete, "/bookings/5", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Booking deleted successfully")

	recorder = serve(router, http.MethodDelete, "/bookings/6", "")
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "cannot delete a booking that is completed")
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		path   string
		action model.Action
	}{
		{"/bookings/2/validate", model.ActionValidate},
		{"/bookings/2/cancel", model.ActionCancel},
		{"/bookings/2/complete", model.ActionComplete},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			svc, router := setup(t)

			svc.EXPECT().Transition(gomock.Any(), int64(2), tt.action).Return(dto.BookingResponse{ID: 2}, nil)

			assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, tt.path, "").Code)
		})
	}
}

func TestTransitionRefused(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Transition(gomock.Any(), int64(2), model.ActionComplete).
		Return(dto.BookingResponse{}, &model.IllegalTransitionError{From: model.StatusPending, Action: model.ActionComplete})

	recorder := serve(router, http.MethodPost, "/bookings/2/complete", "")

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestGetCredential(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Credential(gomock.Any(), int64(8)).Return(credDto.CredentialResponse{BookingID: 8, UniqueCode: "abc"}, nil)

	recorder := serve(router, http.MethodGet, "/bookings/8/credential", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "abc", decode[credDto.CredentialResponse](t, recorder).UniqueCode)
}

func TestGetCredentialImage(t *testing.T) {
	svc, router := setup(t)

	png := []byte{0x89, 'P', 'N', 'G'}
	svc.EXPECT().CredentialImage(gomock.Any(), int64(8)).Return(png, nil)

	recorder := serve(router, http.MethodGet, "/bookings/8/credential/image", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, png, recorder.Body.Bytes())
}
