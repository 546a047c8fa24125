package timezone_test

import (
	"rendezvous/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	require.NotNil(t, timezone.GetLocation())

	now := timezone.Now()
	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestFormatUsesAppLocation(t *testing.T) {
	instant := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, instant.In(timezone.GetLocation()).Format(time.RFC3339), timezone.Format(instant, time.RFC3339))
	assert.True(t, timezone.ToAppTime(instant).Equal(instant))
}

func TestFixedClockAndDay(t *testing.T) {
	instant := time.Date(2030, 5, 14, 23, 30, 0, 0, timezone.GetLocation())
	clock := timezone.FixedClock(instant)

	assert.True(t, clock.Now().Equal(instant))

	day := timezone.Day(clock.Now())
	assert.Equal(t, time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC), day)
}

func TestSystemClock(t *testing.T) {
	assert.False(t, timezone.NewClock().Now().IsZero())
}
