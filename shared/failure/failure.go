package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that maps to an HTTP status. Cause keeps the underlying error reachable
// through errors.Is and errors.As without leaking it into the response.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) StatusCode() int {
	return e.Code
}

func (e *Failure) Unwrap() error {
	return e.Cause
}

// New returns a Failure with an explicit status.
func New(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// wrap keeps err as the cause. A nil err stays nil so callers can wrap unconditionally.
func wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: code, Message: err.Error(), Cause: err}
}

// BadRequest rejects the caller's input with err's message.
func BadRequest(err error) error {
	return wrap(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

// InternalError reports err as a server fault.
func InternalError(err error) error {
	return wrap(http.StatusInternalServerError, err)
}

func NotFound(entityName string) error {
	return New(http.StatusNotFound, entityName)
}

func Conflict(message string) error {
	return New(http.StatusConflict, message)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, msg)
}

// Coded is implemented by domain errors that know their own HTTP status.
type Coded interface {
	StatusCode() int
}

// Detailed is implemented by errors carrying structured, field-addressable details.
type Detailed interface {
	Details() any
}

// GetCode returns the status of the first coded error in err's chain, 500 otherwise.
func GetCode(err error) int {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.StatusCode()
	}

	return http.StatusInternalServerError
}

// GetDetails returns the structured details of an error, if any.
func GetDetails(err error) any {
	var detailed Detailed
	if errors.As(err, &detailed) {
		return detailed.Details()
	}

	return nil
}
