package model_test

import (
	"rendezvous/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var day = time.Date(2030, 3, 12, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) model.ClockTime {
	return model.NewClockTime(hour, minute)
}

func TestWindow_Overlaps(t *testing.T) {
	tests := []struct {
		name  string
		a, b  model.ClockTime
		wants bool
	}{
		{"same start", at(9, 0), at(9, 0), true},
		{"inside", at(9, 0), at(10, 30), true},
		{"adjacent after", at(8, 0), at(10, 0), false},
		{"adjacent before", at(10, 0), at(8, 0), false},
		{"one minute short of adjacent", at(8, 1), at(10, 0), true},
		{"far apart", at(6, 0), at(14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := model.NewWindow(day, tt.a)
			b := model.NewWindow(day, tt.b)

			assert.Equal(t, tt.wants, a.Overlaps(b))
			assert.Equal(t, tt.wants, b.Overlaps(a), "overlap must be symmetric")
		})
	}
}

func TestWindow_CrossesMidnight(t *testing.T) {
	w := model.NewWindow(day, at(22, 0))

	assert.Equal(t, "22:00 - 00:00", w.String())
	assert.Equal(t, day.AddDate(0, 0, 1), w.End)
	assert.False(t, w.Overlaps(model.NewWindow(day.AddDate(0, 0, 1), at(6, 0))))
}

func TestOverlapping(t *testing.T) {
	existing := []model.Booking{
		{ID: 1, ScheduledDate: day, ScheduledTime: at(8, 0)},
		{ID: 2, ScheduledDate: day, ScheduledTime: at(9, 0)},
		{ID: 3, ScheduledDate: day, ScheduledTime: at(12, 0)},
	}

	hits := model.Overlapping(model.NewWindow(day, at(10, 30)), existing)

	assert.Len(t, hits, 1)
	assert.Equal(t, int64(2), hits[0].ID)
	assert.Empty(t, model.Overlapping(model.NewWindow(day, at(10, 0)), existing[:1]))
}

func TestBooking_Interval(t *testing.T) {
	booking := model.Booking{ScheduledDate: day, ScheduledTime: at(8, 0)}

	assert.Equal(t, "08:00 - 10:00", booking.Interval())
}
