package model

import (
	"fmt"
	"rendezvous/shared/constant"
	"rendezvous/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldUniqueCode       = "unique_code"
	FieldDriverCode       = "driver_code"
	FieldPlate            = "plate"
	FieldContainerNumber  = "container_number"
	FieldTrafficDirection = "traffic_direction"
	FieldContainerState   = "container_state"
	FieldOperation        = "operation"
	FieldScheduledDate    = "scheduled_date"
	FieldScheduledTime    = "scheduled_time"
	FieldStatus           = "status"
	FieldCredentialImage  = "credential_image"
	FieldOwnerID          = "owner_id"
	FieldCreatedAt        = constant.FieldCreatedAt
)

type TrafficDirection string

const (
	DirectionInbound  TrafficDirection = "inbound"
	DirectionOutbound TrafficDirection = "outbound"
)

func (d TrafficDirection) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

type ContainerState string

const (
	ContainerFull  ContainerState = "full"
	ContainerEmpty ContainerState = "empty"
)

func (c ContainerState) Valid() bool {
	return c == ContainerFull || c == ContainerEmpty
}

type Operation string

const (
	OperationImport Operation = "import"
	OperationExport Operation = "export"
)

func (o Operation) Valid() bool {
	return o == OperationImport || o == OperationExport
}

// Booking is a reservation of a 2-hour service window for one truck at the terminal gate.
type Booking struct {
	ID               int64            `db:"id"                insert:"false"`
	UniqueCode       string           `db:"unique_code"`
	DriverCode       string           `db:"driver_code"`
	Plate            string           `db:"plate"`
	ContainerNumber  string           `db:"container_number"`
	TrafficDirection TrafficDirection `db:"traffic_direction"`
	ContainerState   ContainerState   `db:"container_state"`
	Operation        Operation        `db:"operation"`
	ScheduledDate    time.Time        `db:"scheduled_date"`
	ScheduledTime    ClockTime        `db:"scheduled_time"`
	Status           Status           `db:"status"`
	CredentialImage  *string          `db:"credential_image"`
	OwnerID          *string          `db:"owner_id"`
	model.Metadata
}

// Window is the service window reserved by the booking.
func (b Booking) Window() Window {
	return NewWindow(b.ScheduledDate, b.ScheduledTime)
}

// Interval renders the window as "HH:MM - HH:MM".
func (b Booking) Interval() string {
	return b.Window().String()
}

// OperationDescription is the human-readable summary shown to gate staff.
func (b Booking) OperationDescription() string {
	if b.Operation == OperationImport {
		if b.ContainerState == ContainerEmpty {
			return "Import - empty truck without chassis"
		}

		return "Import - full truck"
	}

	return fmt.Sprintf("Export - full truck with %s container", b.ContainerState)
}

// HasCredential reports whether an artifact reference is recorded.
func (b Booking) HasCredential() bool {
	return b.CredentialImage != nil && *b.CredentialImage != ""
}

// OwnedBy reports whether userID owns the booking. Anonymous bookings have no owner.
func (b Booking) OwnedBy(userID string) bool {
	return b.OwnerID != nil && userID != "" && *b.OwnerID == userID
}

// Schedule holds the editable fields of a booking.
type Schedule struct {
	DriverCode       string           `db:"driver_code"`
	Plate            string           `db:"plate"`
	ContainerNumber  string           `db:"container_number"`
	TrafficDirection TrafficDirection `db:"traffic_direction"`
	ContainerState   ContainerState   `db:"container_state"`
	Operation        Operation        `db:"operation"`
	ScheduledDate    time.Time        `db:"scheduled_date"`
	ScheduledTime    ClockTime        `db:"scheduled_time"`
}

// Schedule returns the editable view of the booking.
func (b Booking) Schedule() Schedule {
	return Schedule{
		DriverCode:       b.DriverCode,
		Plate:            b.Plate,
		ContainerNumber:  b.ContainerNumber,
		TrafficDirection: b.TrafficDirection,
		ContainerState:   b.ContainerState,
		Operation:        b.Operation,
		ScheduledDate:    b.ScheduledDate,
		ScheduledTime:    b.ScheduledTime,
	}
}

// Apply copies every field of s onto the booking.
func (b *Booking) Apply(s Schedule) {
	b.DriverCode = s.DriverCode
	b.Plate = s.Plate
	b.ContainerNumber = s.ContainerNumber
	b.TrafficDirection = s.TrafficDirection
	b.ContainerState = s.ContainerState
	b.Operation = s.Operation
	b.ScheduledDate = s.ScheduledDate
	b.ScheduledTime = s.ScheduledTime
}

// SameSlot reports whether two schedules target the same plate, day and start time.
func (s Schedule) SameSlot(other Schedule) bool {
	return s.Plate == other.Plate && s.ScheduledDate.Equal(other.ScheduledDate) && s.ScheduledTime == other.ScheduledTime
}
