package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"rendezvous/shared/constant"
	"rendezvous/shared/failure"

	"github.com/rs/zerolog/log"
)

// Data is the success envelope.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the failure envelope. Details carries field-level context such as the conflicting booking.
type Error struct {
	Error   *string `json:"error,omitempty"`
	Details any     `json:"details,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError renders err with its status. Errors without a status of their own are reported
// by status text only, their message goes to the log.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	message := err.Error()

	var coded failure.Coded
	if !errors.As(err, &coded) {
		log.Error().Err(err).Int("status", code).Msg("request failed")

		message = http.StatusText(code)
	}

	write(writer, code, Error{Error: &message, Details: failure.GetDetails(err)})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// WithPNG sends raw image bytes.
func WithPNG(writer http.ResponseWriter, data []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePNG)
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(data); err != nil {
		log.Warn().Err(err).Msg("failed to write image")
	}
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Int("status", code).Msg("failed to encode response")
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
