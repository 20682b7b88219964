package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	c := New(loc)

	start, end, err := c.DayBounds("19-10-2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.Equal(t, time.Date(2026, 10, 18, 18, 30, 0, 0, time.UTC), start.UTC())
}

func TestNormalize(t *testing.T) {
	c := New(time.UTC)

	d, err := c.Normalize("2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, "19-10-2026", d)

	d, err = c.Normalize(" 01-02-2026 ")
	require.NoError(t, err)
	assert.Equal(t, "01-02-2026", d)

	_, err = c.Normalize("19/10/2026")
	assert.Error(t, err)
}

func TestNowUsesInjectedClock(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)
	loc := time.FixedZone("IST", 5*3600+1800)
	c := Clock{Location: loc, NowFunc: func() time.Time { return fixed }}

	assert.Equal(t, "20-10-2026", c.Today(), "already the next day in IST")
	assert.Equal(t, "20-10-2026", c.DateOf(fixed))
}
