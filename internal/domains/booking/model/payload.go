package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Payload is the canonical content encoded into a credential. Field order is fixed.
type Payload struct {
	UniqueCode      string         `json:"unique_code"`
	DriverCode      string         `json:"driver_code"`
	Plate           string         `json:"plate"`
	ContainerNumber string         `json:"container_number"`
	ContainerState  ContainerState `json:"container_state"`
	Operation       Operation      `json:"operation"`
	Date            string         `json:"date"`
}

// Payload returns the canonical payload of the booking.
func (b Booking) Payload() Payload {
	return Payload{
		UniqueCode:      b.UniqueCode,
		DriverCode:      b.DriverCode,
		Plate:           b.Plate,
		ContainerNumber: b.ContainerNumber,
		ContainerState:  b.ContainerState,
		Operation:       b.Operation,
		Date:            b.ScheduledDate.Format(time.DateOnly),
	}
}

// Encode serializes the payload as compact JSON without HTML escaping.
func (p Payload) Encode() ([]byte, error) {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to encode credential payload: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DownstreamPayload is the body sent to the receiving system.
type DownstreamPayload struct {
	Payload
	CreatedAt string `json:"created_at"`
	Status    Status `json:"status"`
	BookingID int64  `json:"booking_id"`
	Source    string `json:"source"`
}

// DownstreamPayload extends the canonical payload with lifecycle fields and the source tag.
func (b Booking) DownstreamPayload(source string) DownstreamPayload {
	return DownstreamPayload{
		Payload:   b.Payload(),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		Status:    b.Status,
		BookingID: b.ID,
		Source:    source,
	}
}
