package admin_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	otelMocks "rendezvous/infras/otel/mocks"
	"rendezvous/internal/domains/booking/mocks"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/booking/model/dto"
	credDto "rendezvous/internal/domains/credential/model/dto"
	"rendezvous/internal/handlers/admin"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*mocks.MockBooking, http.Handler) {
	t.Helper()

	svc := mocks.NewMockBooking(gomock.NewController(t))

	handler := admin.New(svc, otelMocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

func TestBulkTransition(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().BulkTransition(gomock.Any(), model.ActionValidate, []int64{1, 2, 3}).
		Return(dto.BulkTransitionResponse{Action: "validate", Updated: 2}, nil)

	recorder := serve(router, http.MethodPost, "/admin/bookings/validate", `{"ids":[1,2,3]}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"action":"validate","updated":2}}`, recorder.Body.String())
}

func TestBulkTransitionRejects(t *testing.T) {
	_, router := setup(t)

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"unknown action", "/admin/bookings/archive", `{"ids":[1]}`},
		{"edit is not a bulk action", "/admin/bookings/edit", `{"ids":[1]}`},
		{"no ids", "/admin/bookings/cancel", `{"ids":[]}`},
		{"non positive id", "/admin/bookings/cancel", `{"ids":[4,0]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodPost, tt.target, tt.body).Code)
		})
	}
}

func TestRegenerateCredentials(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().RegenerateCredentials(gomock.Any()).Return(credDto.RegenerateResponse{Scanned: 4, Regenerated: 3, Failed: 1}, nil)

	recorder := serve(router, http.MethodPost, "/admin/credentials/regenerate", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"scanned":4,"regenerated":3,"failed":1}}`, recorder.Body.String())
}

func TestRegenerateCredentialsFailure(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().RegenerateCredentials(gomock.Any()).Return(credDto.RegenerateResponse{}, errors.New("listing failed"))

	assert.Equal(t, http.StatusInternalServerError, serve(router, http.MethodPost, "/admin/credentials/regenerate", "").Code)
}
