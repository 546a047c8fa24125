package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"rendezvous/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedErr struct {
	code int
}

func (c codedErr) Error() string   { return "coded" }
func (c codedErr) StatusCode() int { return c.code }
func (c codedErr) Details() any    { return []string{"plate"} }

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", failure.BadRequest(errors.New("validation failed")), http.StatusBadRequest, "validation failed"},
		{"bad request from string", failure.BadRequestFromString("custom bad request"), http.StatusBadRequest, "custom bad request"},
		{"unauthorized", failure.Unauthorized("token expired"), http.StatusUnauthorized, "token expired"},
		{"internal", failure.InternalError(errors.New("db down")), http.StatusInternalServerError, "db down"},
		{"explicit", failure.New(http.StatusBadGateway, "storage unreachable"), http.StatusBadGateway, "storage unreachable"},
		{"not found", failure.NotFound("booking not found"), http.StatusNotFound, "booking not found"},
		{"conflict", failure.Conflict("taken"), http.StatusConflict, "taken"},
		{"forbidden", failure.Forbidden("nope"), http.StatusForbidden, "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			assert.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

func TestCauseIsKept(t *testing.T) {
	cause := errors.New("scheduled_date is not a date")
	err := failure.BadRequest(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "scheduled_date is not a date", err.Error())
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"failure", failure.ForbiddenError, http.StatusForbidden},
		{"wrapped failure", fmt.Errorf("outer: %w", failure.BadRequestFromString("bad page")), http.StatusBadRequest},
		{"coded", codedErr{code: http.StatusConflict}, http.StatusConflict},
		{"wrapped coded", fmt.Errorf("outer: %w", codedErr{code: http.StatusBadGateway}), http.StatusBadGateway},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestGetDetails(t *testing.T) {
	assert.Equal(t, []string{"plate"}, failure.GetDetails(codedErr{}))
	assert.Nil(t, failure.GetDetails(errors.New("plain")))
}
