package http_test

import (
	"net/http"
	"net/http/httptest"
	"rendezvous/config"
	"rendezvous/infras/jwt"
	jwtMocks "rendezvous/infras/jwt/mocks"
	otelMocks "rendezvous/infras/otel/mocks"
	bookingMocks "rendezvous/internal/domains/booking/mocks"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/booking/model/dto"
	"rendezvous/internal/handlers/admin"
	"rendezvous/internal/handlers/booking"
	"rendezvous/permissions"
	cacheMocks "rendezvous/shared/cache/mocks"
	transport "rendezvous/transport/http"
	"rendezvous/transport/http/middleware"
	"rendezvous/transport/http/router"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type server struct {
	bookings *bookingMocks.MockBooking
	tokens   *jwtMocks.MockJWT
	handler  http.Handler
}

func setup(t *testing.T) server {
	t.Helper()

	ctrl := gomock.NewController(t)
	bookings := bookingMocks.NewMockBooking(ctrl)
	tokens := jwtMocks.NewMockJWT(ctrl)
	ot := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.Name = "rendezvous"
	cfg.App.APIKey = "internal"

	r := router.New(router.DomainHandlers{
		Booking: booking.New(bookings, ot),
		Admin:   admin.New(bookings, ot),
	})

	h := transport.New(cfg, r,
		middleware.NewAppMiddleware(ot, cfg, cacheMocks.NewMockRedisCache(ctrl)),
		middleware.NewAuthRoleMiddleware(tokens, ot, permissions.Get(), cfg),
	)

	return server{bookings: bookings, tokens: tokens, handler: h.Handler()}
}

func (s server) do(method, target string, header map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	for key, value := range header {
		request.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, request)

	return recorder
}

func TestHealth(t *testing.T) {
	s := setup(t)

	recorder := s.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("Content-Type"))
}

func TestAnonymousRead(t *testing.T) {
	s := setup(t)

	s.bookings.EXPECT().Get(gomock.Any(), int64(4)).Return(dto.BookingResponse{ID: 4}, nil)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/bookings/4", nil).Code)
}

func TestStaffRoutesNeedToken(t *testing.T) {
	s := setup(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/v1/bookings/today", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/v1/bookings/4/validate", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/v1/admin/credentials/regenerate", nil).Code)
}

func TestStaffTransition(t *testing.T) {
	s := setup(t)

	s.tokens.EXPECT().ValidateToken(gomock.Any(), "staff").Return(&jwt.Claims{UserID: "a-1", Role: "admin"}, nil)
	s.tokens.EXPECT().ValidateToken(gomock.Any(), "driver").Return(&jwt.Claims{UserID: "u-1", Role: "user"}, nil)
	s.bookings.EXPECT().Transition(gomock.Any(), int64(4), model.ActionValidate).Return(dto.BookingResponse{ID: 4}, nil)

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/v1/bookings/4/validate", map[string]string{"Authorization": "Bearer staff"}).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/v1/bookings/4/validate", map[string]string{"Authorization": "Bearer driver"}).Code)
}
