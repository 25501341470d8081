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

func guestBooking(room string, checkIn time.Time, nights int, amount float64, paymentStatus string) models.Booking {
	return models.Booking{
		GuestFirstName: "Ana",
		GuestLastName:  "Silva",
		GuestEmail:     "ana@example.com",
		GuestPhone:     "+351 912 000 000",
		GuestCountry:   "PT",
		RoomName:       room,
		CheckIn:        checkIn,
		Nights:         nights,
		TotalAmount:    amount,
		PaymentStatus:  paymentStatus,
	}
}

func TestGetGuestProfileNotFound(t *testing.T) {
	ts := newTestToolset(t, nil, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_guest_profile", map[string]any{
		"email": "ghost@example.com",
	})

	require.Contains(t, result, "error")
	assert.Equal(t, "Guest not found: ghost@example.com", result["error"])
}

func TestGetGuestProfileSpendCountsPaidOnly(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.byEmail["ana@example.com"] = []models.Booking{
		guestBooking("Seaview Suite", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 2, 400, models.PaymentStatusPaid),
		guestBooking("Garden Double", time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC), 3, 450, models.PaymentStatusPending),
		guestBooking("Seaview Suite", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 1, 220, models.PaymentStatusPaid),
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_guest_profile", map[string]any{
		"email": "ana@example.com",
	})

	require.NotContains(t, result, "error")
	assert.Equal(t, "Ana Silva", result["name"])
	assert.Equal(t, 3, result["totalBookings"])
	assert.Equal(t, 620.0, result["totalSpend"])
	assert.Equal(t, 6, result["totalNights"])
	assert.Equal(t, "Seaview Suite", result["favoriteRoom"])
	assert.Equal(t, "2024-03-10", result["firstStay"])
	assert.Equal(t, "2025-05-01", result["lastStay"])
}

func TestBuildGuestProfileFavoriteRoomTieKeepsFirst(t *testing.T) {
	bookings := []models.Booking{
		guestBooking("Garden Double", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1, 100, models.PaymentStatusPaid),
		guestBooking("Seaview Suite", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 1, 200, models.PaymentStatusPaid),
	}

	p := buildGuestProfile("ana@example.com", bookings)

	assert.Equal(t, "Garden Double", p.FavoriteRoom)
}

func TestGetTopGuestsSortsAndLimits(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.guestGroups = []bookingRepo.GuestGroup{
		{Email: "a@example.com", Name: "A", Bookings: 2, Revenue: 900},
		{Email: "b@example.com", Name: "B", Bookings: 5, Revenue: 400},
		{Email: "c@example.com", Name: "C", Bookings: 3, Revenue: 1200},
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_top_guests", map[string]any{
		"sortBy": "bookings",
		"limit":  float64(2),
	})

	require.NotContains(t, result, "error")
	guests, ok := result["guests"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, guests, 2)
	assert.Equal(t, "b@example.com", guests[0]["email"])
	assert.Equal(t, "c@example.com", guests[1]["email"])
}

func TestGetTopGuestsDefaultsToRevenue(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.guestGroups = []bookingRepo.GuestGroup{
		{Email: "a@example.com", Revenue: 900},
		{Email: "c@example.com", Revenue: 1200},
	}
	ts := newTestToolset(t, repo, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_top_guests", map[string]any{})

	require.NotContains(t, result, "error")
	assert.Equal(t, "revenue", result["sortBy"])
	guests := result["guests"].([]map[string]any)
	require.Len(t, guests, 2)
	assert.Equal(t, "c@example.com", guests[0]["email"])
}

func TestGetTopGuestsServesRepeatsFromCache(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.guestGroups = []bookingRepo.GuestGroup{
		{Email: "c@example.com", Name: "C", Bookings: 3, Revenue: 1200},
		{Email: "a@example.com", Name: "A", Bookings: 2, Revenue: 900},
	}
	cache := newFakeResultCache()
	ts := newTestToolset(t, repo, nil, nil)
	ts.cache = cache

	first := ts.ExecuteToolCall(context.Background(), "get_top_guests", map[string]any{})
	require.NotContains(t, first, "error")
	assert.Equal(t, 1, repo.guestGroupCalls)
	assert.Equal(t, topGuestsCacheTTL, cache.ttls["top_guests:revenue:5"])

	// An identical call within the TTL never reaches the repository.
	second := ts.ExecuteToolCall(context.Background(), "get_top_guests", map[string]any{})
	assert.Equal(t, 1, repo.guestGroupCalls)
	require.NotContains(t, second, "error")
	guests, ok := second["guests"].([]any)
	require.True(t, ok)
	require.Len(t, guests, 2)
	top, ok := guests[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "c@example.com", top["email"])

	// Different arguments form a different key and recompute.
	third := ts.ExecuteToolCall(context.Background(), "get_top_guests", map[string]any{
		"sortBy": "bookings",
	})
	require.NotContains(t, third, "error")
	assert.Equal(t, 2, repo.guestGroupCalls)
}

func TestGetTopGuestsRejectsUnknownSort(t *testing.T) {
	ts := newTestToolset(t, nil, nil, nil)

	result := ts.ExecuteToolCall(context.Background(), "get_top_guests", map[string]any{
		"sortBy": "nights",
	})

	require.Contains(t, result, "error")
	assert.Equal(t, "invalid sortBy: nights (expected revenue or bookings)", result["error"])
}
