// Package rules holds the pure field checks applied before a booking is accepted.
package rules

import (
	"regexp"
	"rendezvous/internal/domains/booking/model"
	"strings"
	"time"
)

// Gate opening hours, compared on the hour component only. Any start within the closing hour is accepted.
const (
	OpeningHour = 6
	ClosingHour = 22
)

type pattern struct {
	field   string
	expr    *regexp.Regexp
	example string
}

var patterns = []pattern{
	{field: model.FieldDriverCode, expr: regexp.MustCompile(`^[A-Z]{1,2}\d{6}$`), example: "AB123456"},
	{field: model.FieldPlate, expr: regexp.MustCompile(`^\d{3,4}-[A-Z]{1,3}-\d{1,4}$`), example: "1234-AB-56"},
	{field: model.FieldContainerNumber, expr: regexp.MustCompile(`^[A-Z]{4}\d{7}$`), example: "MSCU1234567"},
}

// Normalize trims surrounding whitespace. Case is significant and left untouched.
func Normalize(value string) string {
	return strings.TrimSpace(value)
}

// CheckFormat matches value against the pattern registered for field.
// Fields without a pattern are accepted as-is.
func CheckFormat(field, value string) (string, error) {
	value = Normalize(value)

	for _, p := range patterns {
		if p.field != field {
			continue
		}

		if !p.expr.MatchString(value) {
			return value, &model.FormatError{Field: field, Value: value, Example: p.example}
		}
	}

	return value, nil
}

func CheckDriverCode(value string) (string, error) {
	return CheckFormat(model.FieldDriverCode, value)
}

func CheckPlate(value string) (string, error) {
	return CheckFormat(model.FieldPlate, value)
}

func CheckContainerNumber(value string) (string, error) {
	return CheckFormat(model.FieldContainerNumber, value)
}

// CheckDate rejects days before today. Both are compared as calendar days.
func CheckDate(date, today time.Time) error {
	d := calendarDay(date)
	t := calendarDay(today)

	if d.Before(t) {
		return &model.PastDateError{Date: d, Today: t}
	}

	return nil
}

// CheckTime accepts starts whose hour lies in [OpeningHour, ClosingHour].
func CheckTime(at model.ClockTime) error {
	if !at.Valid() || at.Hour() < OpeningHour || at.Hour() > ClosingHour {
		return &model.OutOfHoursError{Time: at}
	}

	return nil
}

// CheckChoices rejects values outside the enumerations.
func CheckChoices(direction model.TrafficDirection, state model.ContainerState, operation model.Operation) []error {
	var errs []error

	if !direction.Valid() {
		errs = append(errs, &model.FormatError{Field: model.FieldTrafficDirection, Value: string(direction), Example: "inbound or outbound"})
	}

	if !state.Valid() {
		errs = append(errs, &model.FormatError{Field: model.FieldContainerState, Value: string(state), Example: "full or empty"})
	}

	if !operation.Valid() {
		errs = append(errs, &model.FormatError{Field: model.FieldOperation, Value: string(operation), Example: "import or export"})
	}

	return errs
}

// Validate checks every field of s and normalizes it in place.
// All failures are reported together.
func Validate(s *model.Schedule, today time.Time) error {
	var errs []error

	collect := func(target *string, check func(string) (string, error)) {
		value, err := check(*target)
		*target = value

		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(&s.DriverCode, CheckDriverCode)
	collect(&s.Plate, CheckPlate)
	collect(&s.ContainerNumber, CheckContainerNumber)

	errs = append(errs, CheckChoices(s.TrafficDirection, s.ContainerState, s.Operation)...)

	if err := CheckDate(s.ScheduledDate, today); err != nil {
		errs = append(errs, err)
	}

	if err := CheckTime(s.ScheduledTime); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &model.ValidationError{Errors: errs}
	}

	return nil
}

// Changes flags which fields of an edit were supplied.
type Changes struct {
	DriverCode       bool
	Plate            bool
	ContainerNumber  bool
	TrafficDirection bool
	ContainerState   bool
	Operation        bool
	Date             bool
	Time             bool
}

// Schedule reports whether any field defining the window changed.
func (c Changes) Schedule() bool {
	return c.Plate || c.Date || c.Time
}

func (c Changes) Any() bool {
	return c.DriverCode || c.Plate || c.ContainerNumber || c.TrafficDirection || c.ContainerState || c.Operation || c.Date || c.Time
}

// ValidatePartial checks only the supplied fields of s, so an untouched past date does not block an edit.
func ValidatePartial(s *model.Schedule, changed Changes, today time.Time) error {
	var errs []error

	collect := func(supplied bool, target *string, check func(string) (string, error)) {
		if !supplied {
			return
		}

		value, err := check(*target)
		*target = value

		if err != nil {
			errs = append(errs, err)
		}
	}

	collect(changed.DriverCode, &s.DriverCode, CheckDriverCode)
	collect(changed.Plate, &s.Plate, CheckPlate)
	collect(changed.ContainerNumber, &s.ContainerNumber, CheckContainerNumber)

	errs = append(errs, CheckChoices(s.TrafficDirection, s.ContainerState, s.Operation)...)

	if changed.Date {
		if err := CheckDate(s.ScheduledDate, today); err != nil {
			errs = append(errs, err)
		}
	}

	if changed.Time {
		if err := CheckTime(s.ScheduledTime); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &model.ValidationError{Errors: errs}
	}

	return nil
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
