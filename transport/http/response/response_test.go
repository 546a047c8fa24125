package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"rendezvous/shared/failure"
	"rendezvous/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
)

type conflict struct{}

func (conflict) Error() string   { return "plate 1234-AB-56 already booked" }
func (conflict) StatusCode() int { return http.StatusConflict }
func (conflict) Details() any    { return map[string]int64{"booking_id": 7} }

func TestWithError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"failure", failure.NotFound("booking 9 not found"), http.StatusNotFound, `{"error":"booking 9 not found"}`},
		{"coded with details", fmt.Errorf("create: %w", conflict{}), http.StatusConflict, `{"error":"create: plate 1234-AB-56 already booked","details":{"booking_id":7}}`},
		{"unclassified", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.code, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, recorder.Body.String())
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithJSON(recorder, http.StatusCreated, map[string]string{"status": "pending"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"pending"}}`, recorder.Body.String())
}

func TestWithPNG(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithPNG(recorder, []byte{0x89, 'P', 'N', 'G'})

	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, recorder.Body.Bytes())
}
