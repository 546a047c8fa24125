package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"rendezvous/shared/constant"
	"time"
)

const minutesPerDay = 24 * 60

// ClockTime is a time of day with minute precision, stored as minutes after midnight.
type ClockTime int

// NewClockTime builds a ClockTime from hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime accepts "HH:MM" and "HH:MM:SS"; seconds are dropped.
func ParseClockTime(value string) (ClockTime, error) {
	for _, layout := range []string{constant.TimeOfDayForm, time.TimeOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return NewClockTime(t.Hour(), t.Minute()), nil
		}
	}

	return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", value)
}

func (c ClockTime) Hour() int {
	return int(c) / 60
}

func (c ClockTime) Minute() int {
	return int(c) % 60
}

// Duration is the offset from midnight.
func (c ClockTime) Duration() time.Duration {
	return time.Duration(c) * time.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Scan implements sql.Scanner. lib/pq hands TIME columns over as time.Time.
func (c *ClockTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c = NewClockTime(v.Hour(), v.Minute())

		return nil
	case []byte:
		return c.parseInto(string(v))
	case string:
		return c.parseInto(v)
	case nil:
		*c = 0

		return nil
	default:
		return fmt.Errorf("cannot scan %T into ClockTime", src)
	}
}

func (c *ClockTime) parseInto(value string) error {
	parsed, err := ParseClockTime(value)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Value implements driver.Valuer.
func (c ClockTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", c.Hour(), c.Minute()), nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to decode time of day: %w", err)
	}

	return c.parseInto(value)
}

// Valid reports whether c falls within a single day.
func (c ClockTime) Valid() bool {
	return c >= 0 && c < minutesPerDay
}
