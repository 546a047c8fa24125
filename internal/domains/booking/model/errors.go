package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// FieldError is the field-addressable view of a validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FormatError means a value does not match the pattern of its field.
type FormatError struct {
	Field   string
	Value   string
	Example string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s has an invalid format (expected e.g. %s)", e.Field, e.Example)
}

func (e *FormatError) FieldName() string { return e.Field }
func (e *FormatError) StatusCode() int   { return http.StatusBadRequest }

// PastDateError means the requested day is before today.
type PastDateError struct {
	Date  time.Time
	Today time.Time
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("date %s is in the past", e.Date.Format(time.DateOnly))
}

func (e *PastDateError) FieldName() string { return FieldScheduledDate }
func (e *PastDateError) StatusCode() int   { return http.StatusBadRequest }

// OutOfHoursError means the requested start is outside gate opening hours.
type OutOfHoursError struct {
	Time ClockTime
}

func (e *OutOfHoursError) Error() string {
	return fmt.Sprintf("time %s is outside opening hours (06:00 to 22:59)", e.Time)
}

func (e *OutOfHoursError) FieldName() string { return FieldScheduledTime }
func (e *OutOfHoursError) StatusCode() int   { return http.StatusBadRequest }

// ValidationError aggregates every failing field of one request.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error { return e.Errors }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Details lists one entry per failing field.
func (e *ValidationError) Details() any {
	details := make([]FieldError, 0, len(e.Errors))

	for _, err := range e.Errors {
		field := ""

		var named interface{ FieldName() string }
		if errors.As(err, &named) {
			field = named.FieldName()
		}

		details = append(details, FieldError{Field: field, Reason: err.Error()})
	}

	return details
}

// SchedulingConflictError means an active booking for the same plate overlaps the requested window.
type SchedulingConflictError struct {
	Plate     string
	Window    Window
	BookingID int64
}

func (e *SchedulingConflictError) Error() string {
	if e.Window.Start.IsZero() {
		return fmt.Sprintf("truck %s already has a booking overlapping this window", e.Plate)
	}

	return fmt.Sprintf("truck %s already has a booking between %s on %s", e.Plate, e.Window, e.Window.Start.Format(time.DateOnly))
}

func (e *SchedulingConflictError) StatusCode() int { return http.StatusConflict }

func (e *SchedulingConflictError) Details() any {
	return []FieldError{{Field: FieldScheduledTime, Reason: e.Error()}}
}

// IllegalTransitionError means the action is not allowed from the current status.
type IllegalTransitionError struct {
	From   Status
	Action Action
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a booking that is %s", e.Action, e.From)
}

func (e *IllegalTransitionError) StatusCode() int { return http.StatusConflict }

// NotFoundError means no booking has the requested id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %d not found", e.ID)
}

func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// PermissionError means the caller does not own the booking.
type PermissionError struct {
	BookingID int64
	UserID    string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("booking %d does not belong to the current user", e.BookingID)
}

func (e *PermissionError) StatusCode() int { return http.StatusForbidden }

// CredentialEncodingError means the QR artifact could not be produced or stored.
type CredentialEncodingError struct {
	UniqueCode string
	Err        error
}

func (e *CredentialEncodingError) Error() string {
	return fmt.Sprintf("failed to issue credential for %s: %v", e.UniqueCode, e.Err)
}

func (e *CredentialEncodingError) Unwrap() error   { return e.Err }
func (e *CredentialEncodingError) StatusCode() int { return http.StatusInternalServerError }

// DownstreamNotifyError means the receiving system did not acknowledge the notification.
type DownstreamNotifyError struct {
	URL    string
	Status int
	Err    error
}

func (e *DownstreamNotifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("downstream notification to %s failed: %v", e.URL, e.Err)
	}

	return fmt.Sprintf("downstream notification to %s answered %d", e.URL, e.Status)
}

func (e *DownstreamNotifyError) Unwrap() error   { return e.Err }
func (e *DownstreamNotifyError) StatusCode() int { return http.StatusBadGateway }
