package tariff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Monday 2025-06-02.
func monday(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestIsSpecialRushWindow(t *testing.T) {
	snap := buildSnapshot([]RushWindow{
		{WeekDay: 1, From: "08:00", To: "10:00"},
	}, nil)

	assert.False(t, snap.IsSpecial(monday(7, 59)))
	assert.True(t, snap.IsSpecial(monday(8, 0)), "from is inclusive")
	assert.True(t, snap.IsSpecial(monday(9, 59)))
	assert.False(t, snap.IsSpecial(monday(10, 0)), "to is exclusive")

	// Same clock time on a Tuesday is normal.
	tuesday := monday(9, 0).AddDate(0, 0, 1)
	assert.False(t, snap.IsSpecial(tuesday))
}

func TestIsSpecialOverlappingWindowsUnion(t *testing.T) {
	snap := buildSnapshot([]RushWindow{
		{WeekDay: 1, From: "08:00", To: "10:00"},
		{WeekDay: 1, From: "09:00", To: "11:00"},
	}, nil)

	assert.True(t, snap.IsSpecial(monday(9, 30)))
	assert.True(t, snap.IsSpecial(monday(10, 30)))
	assert.False(t, snap.IsSpecial(monday(11, 0)))
}

func TestIsSpecialVacationInclusiveDates(t *testing.T) {
	snap := buildSnapshot(nil, []Vacation{
		{Name: "Eid", From: "2025-06-02", To: "2025-06-04"},
	})

	assert.True(t, snap.IsSpecial(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, snap.IsSpecial(time.Date(2025, 6, 4, 23, 59, 0, 0, time.UTC)))
	assert.False(t, snap.IsSpecial(time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)))
	assert.False(t, snap.IsSpecial(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
}

func TestVacationOverridesTimeOfDay(t *testing.T) {
	// 03:00 on a vacation day is special even with no rush window near it.
	snap := buildSnapshot([]RushWindow{
		{WeekDay: 1, From: "08:00", To: "10:00"},
	}, []Vacation{
		{Name: "Holiday", From: "2025-06-02", To: "2025-06-02"},
	})

	assert.True(t, snap.IsSpecial(monday(3, 0)))
}

func TestNextBoundaryFindsWindowEdges(t *testing.T) {
	snap := buildSnapshot([]RushWindow{
		{WeekDay: 1, From: "08:00", To: "10:00"},
	}, nil)

	assert.Equal(t, monday(8, 0), snap.NextBoundary(monday(7, 0)))
	assert.Equal(t, monday(10, 0), snap.NextBoundary(monday(8, 0)), "boundary must be strictly after t")
	assert.Equal(t, monday(10, 0), snap.NextBoundary(monday(9, 30)))

	// After the last edge of the day the boundary is midnight.
	nextMidnight := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, nextMidnight, snap.NextBoundary(monday(10, 0)))
}

func TestNextBoundaryEmptyCalendarIsMidnight(t *testing.T) {
	snap := buildSnapshot(nil, nil)
	nextMidnight := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, nextMidnight, snap.NextBoundary(monday(15, 42)))
}

func TestParseMinutes(t *testing.T) {
	m, err := parseMinutes("08:30")
	assert.NoError(t, err)
	assert.Equal(t, 510, m)

	_, err = parseMinutes("8:30am")
	assert.Error(t, err)

	_, err = parseMinutes("25:00")
	assert.Error(t, err)
}
