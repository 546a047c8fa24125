package dto

import (
	"fmt"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/booking/rules"
	"rendezvous/shared"
	"rendezvous/shared/constant"
	gDto "rendezvous/shared/dto"
	"rendezvous/shared/failure"
	"time"
)

type CreateBookingRequest struct {
	DriverCode       string `json:"driver_code"       validate:"required,notblank"`
	Plate            string `json:"plate"             validate:"required,notblank"`
	ContainerNumber  string `json:"container_number"  validate:"required,notblank"`
	TrafficDirection string `json:"traffic_direction" validate:"required,oneof=inbound outbound"`
	ContainerState   string `json:"container_state"   validate:"required,oneof=full empty"`
	Operation        string `json:"operation"         validate:"required,oneof=import export"`
	Date             string `json:"date"              validate:"required,datetime=2006-01-02"`
	Time             string `json:"time"              validate:"required,clocktime"`
}

// ToSchedule parses the request. Field rules are applied later by the service.
func (c *CreateBookingRequest) ToSchedule() (model.Schedule, error) {
	date, err := ParseDate(c.Date)
	if err != nil {
		return model.Schedule{}, err
	}

	at, err := model.ParseClockTime(c.Time)
	if err != nil {
		return model.Schedule{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	return model.Schedule{
		DriverCode:       c.DriverCode,
		Plate:            c.Plate,
		ContainerNumber:  c.ContainerNumber,
		TrafficDirection: model.TrafficDirection(c.TrafficDirection),
		ContainerState:   model.ContainerState(c.ContainerState),
		Operation:        model.Operation(c.Operation),
		ScheduledDate:    date,
		ScheduledTime:    at,
	}, nil
}

// UpdateBookingRequest is a partial edit; nil fields are left unchanged.
type UpdateBookingRequest struct {
	DriverCode       *string `json:"driver_code"       validate:"omitempty,notblank"`
	Plate            *string `json:"plate"             validate:"omitempty,notblank"`
	ContainerNumber  *string `json:"container_number"  validate:"omitempty,notblank"`
	TrafficDirection *string `json:"traffic_direction" validate:"omitempty,oneof=inbound outbound"`
	ContainerState   *string `json:"container_state"   validate:"omitempty,oneof=full empty"`
	Operation        *string `json:"operation"         validate:"omitempty,oneof=import export"`
	Date             *string `json:"date"              validate:"omitempty,datetime=2006-01-02"`
	Time             *string `json:"time"              validate:"omitempty,clocktime"`
}

// Merge overlays the supplied fields on current.
func (u *UpdateBookingRequest) Merge(current model.Schedule) (model.Schedule, rules.Changes, error) {
	merged := current
	changes := rules.Changes{}

	if u.DriverCode != nil {
		merged.DriverCode, changes.DriverCode = *u.DriverCode, true
	}

	if u.Plate != nil {
		merged.Plate, changes.Plate = *u.Plate, true
	}

	if u.ContainerNumber != nil {
		merged.ContainerNumber, changes.ContainerNumber = *u.ContainerNumber, true
	}

	if u.TrafficDirection != nil {
		merged.TrafficDirection, changes.TrafficDirection = model.TrafficDirection(*u.TrafficDirection), true
	}

	if u.ContainerState != nil {
		merged.ContainerState, changes.ContainerState = model.ContainerState(*u.ContainerState), true
	}

	if u.Operation != nil {
		merged.Operation, changes.Operation = model.Operation(*u.Operation), true
	}

	if u.Date != nil {
		date, err := ParseDate(*u.Date)
		if err != nil {
			return current, changes, err
		}

		merged.ScheduledDate, changes.Date = date, true
	}

	if u.Time != nil {
		at, err := model.ParseClockTime(*u.Time)
		if err != nil {
			return current, changes, failure.BadRequest(err) //nolint:wrapcheck
		}

		merged.ScheduledTime, changes.Time = at, true
	}

	return merged, changes, nil
}

// ParseDate reads a YYYY-MM-DD calendar day as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(constant.DayFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value)) //nolint:wrapcheck
	}

	return date, nil
}

type BookingResponse struct {
	ID                   int64  `json:"id"`
	UniqueCode           string `json:"unique_code"`
	DriverCode           string `json:"driver_code"`
	Plate                string `json:"plate"`
	ContainerNumber      string `json:"container_number"`
	TrafficDirection     string `json:"traffic_direction"`
	ContainerState       string `json:"container_state"`
	Operation            string `json:"operation"`
	OperationDescription string `json:"operation_description"`
	Date                 string `json:"date"`
	Time                 string `json:"time"`
	Interval             string `json:"interval"`
	Status               string `json:"status"`
	HasCredential        bool   `json:"has_credential"`
	OwnerID              string `json:"owner_id,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UniqueCode = model.UniqueCode
	r.DriverCode = model.DriverCode
	r.Plate = model.Plate
	r.ContainerNumber = model.ContainerNumber
	r.TrafficDirection = string(model.TrafficDirection)
	r.ContainerState = string(model.ContainerState)
	r.Operation = string(model.Operation)
	r.OperationDescription = model.OperationDescription()
	r.Date = model.ScheduledDate.Format(constant.DayFormat)
	r.Time = model.ScheduledTime.String()
	r.Interval = model.Interval()
	r.Status = string(model.Status)
	r.HasCredential = model.HasCredential()

	if model.OwnerID != nil {
		r.OwnerID = *model.OwnerID
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BulkTransitionRequest struct {
	IDs []int64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type BulkTransitionResponse struct {
	Action  string `json:"action"`
	Updated int64  `json:"updated"`
}

type ConflictsResponse struct {
	Plate     string            `json:"plate"`
	Date      string            `json:"date"`
	Interval  string            `json:"interval"`
	Conflicts []BookingResponse `json:"conflicts"`
}

func (r *ConflictsResponse) FromModels(plate string, window model.Window, models []model.Booking) {
	r.Plate = plate
	r.Date = window.Start.Format(constant.DayFormat)
	r.Interval = window.String()

	r.Conflicts = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Conflicts[i].FromModel(mod)
	}
}
