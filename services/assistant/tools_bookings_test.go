package assistant

import (
	"context"
	"testing"
	"time"

	bookingRepo "harborview/database/repository/booking"
	"harborview/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBookingStatsBucketsUnknownStatuses(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.statusRows = []bookingRepo.StatusCount{
		{Status: models.BookingStatusConfirmed, Count: 3, Revenue: 900},
		{Status: models.BookingStatusCancelled, Count: 1, Revenue: 150},
		{Status: "no_show", Count: 2, Revenue: 80},
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_booking_stats", map[string]any{
		"period": "week",
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, 6, result["totalBookings"])
	assert.Equal(t, 1130.0, result["totalRevenue"])
	assert.Equal(t, 3, result["confirmed"])
	assert.Equal(t, 1, result["cancelled"])
	assert.Equal(t, 0, result["pending"])
	assert.Equal(t, 2, result["other"])
}

func TestGetPaymentSummarySplitsPaidAmount(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.paymentRows = []bookingRepo.PaymentCount{
		{Status: models.PaymentStatusPaid, Count: 4, Amount: 1200},
		{Status: models.PaymentStatusPending, Count: 2, Amount: 500},
		{Status: "disputed", Count: 1, Amount: 90},
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_payment_summary", map[string]any{
		"period": "month",
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, 7, result["totalBookings"])
	assert.Equal(t, 1790.0, result["totalAmount"])
	assert.Equal(t, 1200.0, result["paidAmount"])
	assert.Equal(t, 4, result["paid"])
	assert.Equal(t, 2, result["pending"])
	assert.Equal(t, 1, result["other"])
}

func TestGetRevenueReportShapesRoomBreakdown(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.paidRevenue = 2350
	repo.roomRows = []bookingRepo.RoomRevenue{
		{Room: "Seaview Suite", Bookings: 3, Revenue: 1500},
		{Room: "Garden Double", Bookings: 4, Revenue: 850},
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_revenue_report", map[string]any{
		"startDate": "2025-06-01",
		"endDate":   "2025-06-30",
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, 2350.0, result["totalRevenue"])
	byRoom, ok := result["byRoom"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, byRoom, 2)
	assert.Equal(t, "Seaview Suite", byRoom[0]["room"])
	assert.Equal(t, 1500.0, byRoom[0]["revenue"])
}

func TestGetRevenueReportRejectsBadDates(t *testing.T) {
	ts := newTestToolset(t, nil, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_revenue_report", map[string]any{
		"startDate": "June 1st",
		"endDate":   "2025-06-30",
	})

	require.Contains(t, result, "error")
	assert.Equal(t, "invalid date for startDate: June 1st (expected YYYY-MM-DD)", result["error"])
}

func TestSearchBookingsClampsLimit(t *testing.T) {
	repo := newFakeBookingRepo()
	for i := 0; i < 15; i++ {
		repo.searchHits = append(repo.searchHits, models.Booking{
			ID:            string(rune('a' + i)),
			GuestLastName: "Silva",
		})
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "search_bookings", map[string]any{
		"query": "silva",
		"limit": float64(50),
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, searchLimit, result["count"])
}

func TestGetBookingDetailsNotFound(t *testing.T) {
	ts := newTestToolset(t, nil, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_booking_details", map[string]any{
		"bookingId": "BK-404",
	})

	require.Contains(t, result, "error")
	assert.Equal(t, "Booking not found: BK-404", result["error"])
}

func TestGetBookingDetailsByReference(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(models.Booking{
		ID:             "b1",
		Reference:      "HV-2025-0042",
		GuestFirstName: "Ana",
		GuestLastName:  "Silva",
		RoomName:       "Seaview Suite",
		CheckIn:        time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		Nights:         3,
		TotalAmount:    540,
		BookingStatus:  models.BookingStatusConfirmed,
		PaymentStatus:  models.PaymentStatusPaid,
	})
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_booking_details", map[string]any{
		"bookingId": "HV-2025-0042",
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, "b1", result["id"])
	assert.Equal(t, "Ana Silva", result["guestName"])
	assert.Equal(t, "2025-06-20", result["checkIn"])
	assert.Equal(t, 540.0, result["totalAmount"])
}

func TestGetTodaySnapshotJoinsAllCounters(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.arrivals = 4
	repo.departures = 2
	repo.createdOn = 3
	repo.pendingPays = 5
	repo.inHouse = 12
	repo.paidRevenue = 1875
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_today_snapshot", map[string]any{})

	require.NotContains(t, result, "error")
	assert.Equal(t, "2025-06-18", result["date"])
	assert.Equal(t, int64(4), result["arrivals"])
	assert.Equal(t, int64(2), result["departures"])
	assert.Equal(t, int64(3), result["newBookings"])
	assert.Equal(t, int64(5), result["pendingPayments"])
	assert.Equal(t, int64(12), result["inHouse"])
	assert.Equal(t, 1875.0, result["revenueToday"])
}

func TestGetBookingSources(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.sourceRows = []bookingRepo.SourceCount{
		{Source: "direct", Count: 6, Revenue: 2100},
		{Source: "booking.com", Count: 4, Revenue: 1400},
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_booking_sources", map[string]any{
		"period": "month",
	})

	require.NotContains(t, result, "error")
	sources, ok := result["sources"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, sources, 2)
	assert.Equal(t, "direct", sources[0]["source"])
	assert.Equal(t, 6, sources[0]["bookings"])
}

func TestPeriodStartBoundaries(t *testing.T) {
	ts := newTestToolset(t, nil, nil, nil)

	today, err := ts.periodStart("today")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC), today)

	week, err := ts.periodStart("week")
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 0, -7), week)

	year, err := ts.periodStart("year")
	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(-1, 0, 0), year)

	_, err = ts.periodStart("quarter")
	assert.Error(t, err)
}
