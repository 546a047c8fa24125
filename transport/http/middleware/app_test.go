package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"rendezvous/config"
	otelMocks "rendezvous/infras/otel/mocks"
	cacheMocks "rendezvous/shared/cache/mocks"
	"rendezvous/transport/http/middleware"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limited(t *testing.T, maxRequests int) (*cacheMocks.MockRedisCache, http.Handler) {
	t.Helper()

	store := cacheMocks.NewMockRedisCache(gomock.NewController(t))

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, store)

	ok := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	return store, app.Tracing(app.RateLimit()(ok))
}

func hit(handler http.Handler) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/v1/bookings/today", nil)
	request.RemoteAddr = "10.0.0.7:51234"

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

func TestRateLimitFirstRequest(t *testing.T) {
	store, handler := limited(t, 2)

	store.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(1), 60*time.Second, nil)

	recorder := hit(handler)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", recorder.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimitExceeded(t *testing.T) {
	store, handler := limited(t, 2)

	store.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(int64(3), 41500*time.Millisecond, nil)

	recorder := hit(handler)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "0", recorder.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "42", recorder.Header().Get("Retry-After"))
}

func TestRateLimitKeyIgnoresPeerPort(t *testing.T) {
	store, handler := limited(t, 5)

	var keys []string

	store.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Times(2).
		DoAndReturn(func(_ any, key string, _ int) (int64, time.Duration, error) {
			keys = append(keys, key)

			return int64(len(keys)), time.Minute, nil
		})

	hit(handler)

	request := httptest.NewRequest(http.MethodGet, "/v1/bookings/today", nil)
	request.RemoteAddr = "10.0.0.7:60001"
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Len(t, keys, 2)
	assert.Equal(t, keys[0], keys[1])
}

func TestRateLimitFailsOpen(t *testing.T) {
	store, handler := limited(t, 2)

	store.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), time.Duration(0), errors.New("redis down"))

	recorder := hit(handler)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("X-RateLimit-Remaining"))
}
