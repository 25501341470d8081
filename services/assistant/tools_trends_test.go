package assistant

import (
	"context"
	"testing"
	"time"

	bookingRepo "harborview/database/repository/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOccupancyTrendsZeroFillsMissingSides(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.checkIns = []bookingRepo.DayCount{
		{Date: "2025-06-20", Count: 3},
		{Date: "2025-06-21", Count: 1},
	}
	repo.checkOuts = []bookingRepo.DayCount{
		{Date: "2025-06-21", Count: 2},
		{Date: "2025-06-22", Count: 4},
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_occupancy_trends", map[string]any{
		"startDate": "2025-06-20",
		"endDate":   "2025-06-22",
	})

	require.NotContains(t, result, "error")
	days, ok := result["days"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, days, 3)

	assert.Equal(t, "2025-06-20", days[0]["date"])
	assert.Equal(t, 3, days[0]["checkIns"])
	assert.Equal(t, 0, days[0]["checkOuts"])

	assert.Equal(t, "2025-06-21", days[1]["date"])
	assert.Equal(t, 1, days[1]["checkIns"])
	assert.Equal(t, 2, days[1]["checkOuts"])

	assert.Equal(t, "2025-06-22", days[2]["date"])
	assert.Equal(t, 0, days[2]["checkIns"])
	assert.Equal(t, 4, days[2]["checkOuts"])
}

func TestGetOccupancyWarningsSeverities(t *testing.T) {
	counts := map[int]int64{0: 6, 1: 4, 2: 1, 3: 5}
	repo := newFakeBookingRepo()
	repo.overlapFn = func(from, to time.Time) (int64, error) {
		today := nowMidnight(testNow)
		week := int(from.Sub(today).Hours() / (24 * 7))
		return counts[week], nil
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_occupancy_warnings", map[string]any{
		"weeksAhead": float64(4),
	})

	require.NotContains(t, result, "error")
	warnings, ok := result["warnings"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, warnings, 2)

	// Week 2 has 4 overlapping bookings: under target, not severe.
	assert.Equal(t, 2, warnings[0]["week"])
	assert.Equal(t, int64(4), warnings[0]["bookings"])
	assert.Equal(t, "medium", warnings[0]["severity"])

	// Week 3 has 1 overlapping booking: severe.
	assert.Equal(t, 3, warnings[1]["week"])
	assert.Equal(t, int64(1), warnings[1]["bookings"])
	assert.Equal(t, "high", warnings[1]["severity"])
	assert.Contains(t, warnings[1]["recommendation"], "flash promotion")

	assert.NotContains(t, result, "message")
}

func TestGetOccupancyWarningsHealthyMessage(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.overlapFn = func(from, to time.Time) (int64, error) { return 9, nil }
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_occupancy_warnings", map[string]any{})

	require.NotContains(t, result, "error")
	assert.Empty(t, result["warnings"])
	assert.Equal(t, "Occupancy looks healthy for the next 4 weeks.", result["message"])
}

func TestGetOccupancyWarningsClampsWeeks(t *testing.T) {
	repo := newFakeBookingRepo()
	var windows int
	repo.overlapFn = func(from, to time.Time) (int64, error) {
		windows++
		return 9, nil
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_occupancy_warnings", map[string]any{
		"weeksAhead": float64(99),
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, 4, result["weeksAhead"])
	assert.Equal(t, 4, windows)
}
