package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// windowCalendar marks [start, end) intervals as special and reports
// boundaries at window edges plus midnight, mirroring the tariff snapshot.
type windowCalendar struct {
	windows [][2]time.Time
}

func (c *windowCalendar) IsSpecial(t time.Time) bool {
	for _, w := range c.windows {
		if !t.Before(w[0]) && t.Before(w[1]) {
			return true
		}
	}
	return false
}

func (c *windowCalendar) NextBoundary(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
	for _, w := range c.windows {
		for _, edge := range w {
			if edge.After(t) && edge.Before(next) {
				next = edge
			}
		}
	}
	return next
}

func mondayAt(h, m int) time.Time {
	return time.Date(2025, 6, 2, h, m, 0, 0, time.UTC)
}

func TestComputeChargeNormalAndRushSplit(t *testing.T) {
	cal := &windowCalendar{windows: [][2]time.Time{
		{mondayAt(8, 0), mondayAt(10, 0)},
	}}

	total, segments, err := ComputeCharge(mondayAt(7, 0), mondayAt(9, 0), 5, 10, cal)
	require.NoError(t, err)
	require.Len(t, segments, 2)

	assert.Equal(t, RateModeNormal, segments[0].RateMode)
	assert.Equal(t, 1.0, segments[0].Hours)
	assert.Equal(t, 5.0, segments[0].Amount)

	assert.Equal(t, RateModeSpecial, segments[1].RateMode)
	assert.Equal(t, 1.0, segments[1].Hours)
	assert.Equal(t, 10.0, segments[1].Amount)

	assert.Equal(t, 15.0, total)
	assert.Equal(t, mondayAt(8, 0), segments[0].To)
	assert.Equal(t, mondayAt(8, 0), segments[1].From)
}

func TestComputeChargeSingleSegment(t *testing.T) {
	cal := &windowCalendar{}

	total, segments, err := ComputeCharge(mondayAt(9, 0), mondayAt(11, 30), 5, 10, cal)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, 2.5, segments[0].Hours)
	assert.Equal(t, 12.5, total)
}

func TestComputeChargeEntirelyInsideRush(t *testing.T) {
	cal := &windowCalendar{windows: [][2]time.Time{
		{mondayAt(8, 0), mondayAt(10, 0)},
	}}

	total, segments, err := ComputeCharge(mondayAt(8, 15), mondayAt(9, 15), 5, 10, cal)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, RateModeSpecial, segments[0].RateMode)
	assert.Equal(t, 10.0, total)
}

func TestComputeChargeMergesAdjacentEqualModes(t *testing.T) {
	// Two abutting rush windows must bill as one continuous special segment.
	cal := &windowCalendar{windows: [][2]time.Time{
		{mondayAt(8, 0), mondayAt(9, 0)},
		{mondayAt(9, 0), mondayAt(10, 0)},
	}}

	total, segments, err := ComputeCharge(mondayAt(8, 0), mondayAt(10, 0), 5, 10, cal)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, RateModeSpecial, segments[0].RateMode)
	assert.Equal(t, 2.0, segments[0].Hours)
	assert.Equal(t, 20.0, total)
}

func TestComputeChargeZeroDuration(t *testing.T) {
	cal := &windowCalendar{}

	total, segments, err := ComputeCharge(mondayAt(9, 0), mondayAt(9, 0), 5, 10, cal)
	require.NoError(t, err)
	assert.Empty(t, segments)
	assert.Zero(t, total)
}

func TestComputeChargeRejectsReversedInterval(t *testing.T) {
	cal := &windowCalendar{}

	_, _, err := ComputeCharge(mondayAt(9, 0), mondayAt(8, 0), 5, 10, cal)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestComputeChargeCrossesMidnight(t *testing.T) {
	cal := &windowCalendar{}

	from := mondayAt(23, 0)
	to := from.Add(2 * time.Hour)
	total, segments, err := ComputeCharge(from, to, 4, 8, cal)
	require.NoError(t, err)
	// Midnight is a boundary but the mode does not change, so the walk
	// merges both halves back into one segment.
	require.Len(t, segments, 1)
	assert.Equal(t, 2.0, segments[0].Hours)
	assert.Equal(t, 8.0, total)
}

func TestComputeChargeTotalMatchesSegmentSum(t *testing.T) {
	cal := &windowCalendar{windows: [][2]time.Time{
		{mondayAt(8, 0), mondayAt(10, 0)},
	}}

	total, segments, err := ComputeCharge(mondayAt(7, 20), mondayAt(10, 40), 3.33, 6.66, cal)
	require.NoError(t, err)

	var sum float64
	for _, s := range segments {
		sum += s.Amount
	}
	assert.InDelta(t, sum, total, 0.001)
}
