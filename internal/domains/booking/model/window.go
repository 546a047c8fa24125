package model

import (
	"fmt"
	"time"
)

// ServiceWindowDuration is the fixed length of every booking window.
const ServiceWindowDuration = 2 * time.Hour

// Window is the half-open interval [Start, End) a truck occupies at the gate.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow anchors at on the calendar day of date.
// Windows starting late in the evening run past midnight on the absolute timeline.
func NewWindow(date time.Time, at ClockTime) Window {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := day.Add(at.Duration())

	return Window{Start: start, End: start.Add(ServiceWindowDuration)}
}

// Overlaps reports whether the two windows share any instant. Touching windows do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

func (w Window) String() string {
	return fmt.Sprintf("%s - %s", w.Start.Format("15:04"), w.End.Format("15:04"))
}

// Overlapping returns the bookings in existing whose window overlaps candidate.
func Overlapping(candidate Window, existing []Booking) []Booking {
	var hits []Booking

	for _, booking := range existing {
		if booking.Window().Overlaps(candidate) {
			hits = append(hits, booking)
		}
	}

	return hits
}
