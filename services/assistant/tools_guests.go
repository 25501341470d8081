package assistant

import (
	"context"
	"fmt"
	"sort"

	"harborview/models"

	"github.com/google/generative-ai-go/genai"
)

func (t *Toolset) guestTools() []Tool {
	return []Tool{
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_guest_profile",
				Description: "A guest's aggregated history: spend, nights, favorite room, first and last stay.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"email": {Type: genai.TypeString, Description: "Guest email address"},
					},
					Required: []string{"email"},
				},
			},
			Run: t.getGuestProfile,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_top_guests",
				Description: "Top guests ranked by cumulative spend or booking count. Only guests with paid bookings appear.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"sortBy": {
							Type:        genai.TypeString,
							Description: "Ranking criterion",
							Enum:        []string{"revenue", "bookings"},
						},
						"limit": {Type: genai.TypeInteger, Description: "Maximum results, default 5"},
					},
				},
			},
			Run: t.getTopGuests,
		},
	}
}

// getGuestProfile builds a profile fresh from the guest's bookings. A guest
// with no bookings is an error, never an empty-but-valid profile.
func (t *Toolset) getGuestProfile(ctx context.Context, args map[string]any) (map[string]any, error) {
	email, err := requireString(args, "email")
	if err != nil {
		return nil, err
	}

	bookings, err := t.bookings.ListByGuestEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, fmt.Errorf("Guest not found: %s", email)
	}

	profile := buildGuestProfile(email, bookings)
	return map[string]any{
		"email":         profile.Email,
		"name":          profile.Name,
		"phone":         profile.Phone,
		"country":       profile.Country,
		"totalBookings": profile.TotalBookings,
		"totalSpend":    profile.TotalSpend,
		"totalNights":   profile.TotalNights,
		"favoriteRoom":  profile.FavoriteRoom,
		"firstStay":     profile.FirstStay.Format("2006-01-02"),
		"lastStay":      profile.LastStay.Format("2006-01-02"),
	}, nil
}

// buildGuestProfile aggregates the bookings of one guest. Spend only counts
// paid bookings; nights and booking count include everything. The favorite
// room is the most frequent room name, ties broken by encounter order.
func buildGuestProfile(email string, bookings []models.Booking) *models.GuestProfile {
	p := &models.GuestProfile{
		Email:         email,
		Name:          bookings[0].GuestName(),
		Phone:         bookings[0].GuestPhone,
		Country:       bookings[0].GuestCountry,
		TotalBookings: len(bookings),
		FirstStay:     bookings[0].CheckIn,
		LastStay:      bookings[0].CheckIn,
	}

	roomCounts := map[string]int{}
	best := 0
	for i := range bookings {
		b := &bookings[i]
		p.TotalNights += b.Nights
		if b.PaymentStatus == models.PaymentStatusPaid {
			p.TotalSpend += b.TotalAmount
		}
		roomCounts[b.RoomName]++
		// Strictly greater keeps the first-encountered room on ties.
		if roomCounts[b.RoomName] > best {
			best = roomCounts[b.RoomName]
			p.FavoriteRoom = b.RoomName
		}
		if b.CheckIn.Before(p.FirstStay) {
			p.FirstStay = b.CheckIn
		}
		if b.CheckIn.After(p.LastStay) {
			p.LastStay = b.CheckIn
		}
	}
	return p
}

func (t *Toolset) getTopGuests(ctx context.Context, args map[string]any) (map[string]any, error) {
	sortBy := argString(args, "sortBy", "revenue")
	if sortBy != "revenue" && sortBy != "bookings" {
		return nil, fmt.Errorf("invalid sortBy: %s (expected revenue or bookings)", sortBy)
	}
	limit := argInt(args, "limit", 5)
	if limit <= 0 || limit > searchLimit {
		limit = 5
	}

	// The ranking scans every paid booking, so recent identical requests
	// are served from the short-lived result cache.
	cacheKey := fmt.Sprintf("top_guests:%s:%d", sortBy, limit)
	if cached, ok := t.cachedResult(ctx, cacheKey); ok {
		return cached, nil
	}

	groups, err := t.bookings.GroupPaidByGuest(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if sortBy == "bookings" {
			return groups[i].Bookings > groups[j].Bookings
		}
		return groups[i].Revenue > groups[j].Revenue
	})
	if len(groups) > limit {
		groups = groups[:limit]
	}

	guests := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		guests = append(guests, map[string]any{
			"email":    g.Email,
			"name":     g.Name,
			"bookings": g.Bookings,
			"nights":   g.Nights,
			"revenue":  g.Revenue,
		})
	}
	result := map[string]any{
		"sortBy": sortBy,
		"guests": guests,
	}
	t.storeResult(ctx, cacheKey, result, topGuestsCacheTTL)
	return result, nil
}
