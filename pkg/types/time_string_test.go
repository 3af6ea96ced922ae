package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	later, err := ts.AddMinutes(50)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:50"), later)

	later, err = ts.AddMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, ts, later)

	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:30"))
	assert.False(t, TimeString("09:30").IsAfter("09:30"))
}

func TestTimeStringOnDate(t *testing.T) {
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.Local)
	at := TimeString("14:30").OnDate(date)

	assert.Equal(t, 14, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, date.Day(), at.Day())
}

func TestNewTimeString(t *testing.T) {
	now := time.Date(2025, 10, 15, 8, 5, 59, 0, time.Local)
	assert.Equal(t, TimeString("08:05"), NewTimeString(now))
}
