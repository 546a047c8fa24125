package downstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"rendezvous/infras/downstream"
	otelMocks "rendezvous/infras/otel/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendCreated(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, downstream.ReceivePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := downstream.NewWithHTTPClient(server.Client(), server.URL+"/", otelMocks.NewOtel())

	err := client.Send(context.Background(), map[string]any{"source": "portail_externe", "booking_id": 7})

	require.NoError(t, err)
	assert.Equal(t, "portail_externe", received["source"])
	assert.Equal(t, server.URL+downstream.ReceivePath, client.URL())
}

func TestSendNonCreated(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer server.Close()

			client := downstream.NewWithHTTPClient(server.Client(), server.URL, otelMocks.NewOtel())

			err := client.Send(context.Background(), map[string]string{})

			var statusErr *downstream.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, status, statusErr.Status)
			assert.Equal(t, "nope", statusErr.Body)
		})
	}
}

func TestSendTimeout(t *testing.T) {
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()
	defer close(release)

	httpClient := server.Client()
	httpClient.Timeout = 50 * time.Millisecond

	client := downstream.NewWithHTTPClient(httpClient, server.URL, otelMocks.NewOtel())

	err := client.Send(context.Background(), map[string]string{})

	assert.ErrorContains(t, err, "failed to reach downstream")
}

func TestSendUnreachable(t *testing.T) {
	client := downstream.NewWithHTTPClient(http.DefaultClient, "http://127.0.0.1:1", otelMocks.NewOtel())

	assert.Error(t, client.Send(context.Background(), map[string]string{}))
}
