package model

import "time"

type EventType string

const (
	EventCreated   EventType = "booking.created"
	EventValidated EventType = "booking.validated"
	EventCancelled EventType = "booking.cancelled"
	EventCompleted EventType = "booking.completed"
	EventEdited    EventType = "booking.edited"
	EventDeleted   EventType = "booking.deleted"
)

var transitionEvents = map[Action]EventType{
	ActionValidate: EventValidated,
	ActionCancel:   EventCancelled,
	ActionComplete: EventCompleted,
}

// EventFor maps a status-changing action to the event it emits.
func EventFor(a Action) EventType {
	return transitionEvents[a]
}

// Event is published on the lifecycle topic, keyed by booking id.
type Event struct {
	Type       EventType `json:"type"`
	BookingID  int64     `json:"booking_id"`
	UniqueCode string    `json:"unique_code"`
	Plate      string    `json:"plate"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Status     Status    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (b Booking) Event(eventType EventType, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.ID,
		UniqueCode: b.UniqueCode,
		Plate:      b.Plate,
		Date:       b.ScheduledDate.Format(time.DateOnly),
		Time:       b.ScheduledTime.String(),
		Status:     b.Status,
		OccurredAt: at,
	}
}
