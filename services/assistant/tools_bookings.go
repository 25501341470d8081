package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"harborview/models"

	"github.com/google/generative-ai-go/genai"
	"go.mongodb.org/mongo-driver/mongo"
)

const searchLimit = 10

// periodStart resolves a period keyword to its start boundary: "today" is
// midnight of the current day, the others subtract the period length from now.
func (t *Toolset) periodStart(period string) (time.Time, error) {
	now := t.now()
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("invalid period: %s (expected today, week, month or year)", period)
	}
}

var periodSchema = &genai.Schema{
	Type:        genai.TypeString,
	Description: "Reporting period",
	Enum:        []string{"today", "week", "month", "year"},
}

func (t *Toolset) bookingTools() []Tool {
	return []Tool{
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_booking_stats",
				Description: "Booking counts and revenue for a period, broken down by booking status.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"period": periodSchema},
					Required:   []string{"period"},
				},
			},
			Run: t.getBookingStats,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_payment_summary",
				Description: "Payment counts and amounts for a period, broken down by payment status.",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"period": periodSchema},
					Required:   []string{"period"},
				},
			},
			Run: t.getPaymentSummary,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_revenue_report",
				Description: "Paid revenue between two dates, with a per-room breakdown.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"startDate": {Type: genai.TypeString, Description: "Start date, YYYY-MM-DD"},
						"endDate":   {Type: genai.TypeString, Description: "End date (exclusive), YYYY-MM-DD"},
					},
					Required: []string{"startDate", "endDate"},
				},
			},
			Run: t.getRevenueReport,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "search_bookings",
				Description: "Search bookings by guest name, email, phone or payment reference.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query":  {Type: genai.TypeString, Description: "Free-text search query"},
						"status": {Type: genai.TypeString, Description: "Optional booking status filter"},
						"limit":  {Type: genai.TypeInteger, Description: "Maximum results, up to 10"},
					},
					Required: []string{"query"},
				},
			},
			Run: t.searchBookings,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_booking_details",
				Description: "Full details of one booking, looked up by ID or payment reference.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"bookingId": {Type: genai.TypeString, Description: "Booking ID or payment reference"},
					},
					Required: []string{"bookingId"},
				},
			},
			Run: t.getBookingDetails,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_recent_bookings",
				Description: "The most recently created bookings.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"limit": {Type: genai.TypeInteger, Description: "Maximum results, default 5"},
					},
				},
			},
			Run: t.getRecentBookings,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_today_snapshot",
				Description: "Today's operational snapshot: arrivals, departures, new bookings, pending payments, in-house guests and paid revenue.",
				Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
			},
			Run: t.getTodaySnapshot,
		},
		{
			Declaration: &genai.FunctionDeclaration{
				Name:        "get_booking_sources",
				Description: "Booking counts and revenue for a period, broken down by booking source (direct, OTA, walk-in...).",
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: map[string]*genai.Schema{"period": periodSchema},
					Required:   []string{"period"},
				},
			},
			Run: t.getBookingSources,
		},
	}
}

func (t *Toolset) getBookingStats(ctx context.Context, args map[string]any) (map[string]any, error) {
	period := argString(args, "period", "today")
	since, err := t.periodStart(period)
	if err != nil {
		return nil, err
	}

	rows, err := t.bookings.CountByStatusSince(ctx, since)
	if err != nil {
		return nil, err
	}

	var total, other int
	var revenue float64
	buckets := map[string]int{}
	for _, row := range rows {
		total += row.Count
		revenue += row.Revenue
		switch row.Status {
		case models.BookingStatusPending,
			models.BookingStatusConfirmed,
			models.BookingStatusCheckedIn,
			models.BookingStatusCheckedOut,
			models.BookingStatusCancelled:
			buckets[row.Status] += row.Count
		default:
			// Statuses outside the known enum still count toward the total
			// but surface in an explicit bucket so drift is visible.
			other += row.Count
		}
	}

	return map[string]any{
		"period":        period,
		"totalBookings": total,
		"totalRevenue":  revenue,
		"pending":       buckets[models.BookingStatusPending],
		"confirmed":     buckets[models.BookingStatusConfirmed],
		"checkedIn":     buckets[models.BookingStatusCheckedIn],
		"checkedOut":    buckets[models.BookingStatusCheckedOut],
		"cancelled":     buckets[models.BookingStatusCancelled],
		"other":         other,
	}, nil
}

func (t *Toolset) getPaymentSummary(ctx context.Context, args map[string]any) (map[string]any, error) {
	period := argString(args, "period", "today")
	since, err := t.periodStart(period)
	if err != nil {
		return nil, err
	}

	rows, err := t.bookings.PaymentSummarySince(ctx, since)
	if err != nil {
		return nil, err
	}

	var total, other int
	var totalAmount, paidAmount float64
	buckets := map[string]int{}
	for _, row := range rows {
		total += row.Count
		totalAmount += row.Amount
		switch row.Status {
		case models.PaymentStatusPaid:
			buckets[row.Status] += row.Count
			paidAmount += row.Amount
		case models.PaymentStatusPending,
			models.PaymentStatusFailed,
			models.PaymentStatusRefunded:
			buckets[row.Status] += row.Count
		default:
			other += row.Count
		}
	}

	return map[string]any{
		"period":        period,
		"totalBookings": total,
		"totalAmount":   totalAmount,
		"paidAmount":    paidAmount,
		"paid":          buckets[models.PaymentStatusPaid],
		"pending":       buckets[models.PaymentStatusPending],
		"failed":        buckets[models.PaymentStatusFailed],
		"refunded":      buckets[models.PaymentStatusRefunded],
		"other":         other,
	}, nil
}

func (t *Toolset) getRevenueReport(ctx context.Context, args map[string]any) (map[string]any, error) {
	from, err := requireDate(args, "startDate")
	if err != nil {
		return nil, err
	}
	to, err := requireDate(args, "endDate")
	if err != nil {
		return nil, err
	}
	// Treat the end date as inclusive: the window closes at the next midnight.
	to = to.AddDate(0, 0, 1)

	total, err := t.bookings.PaidRevenueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	rooms, err := t.bookings.PaidRevenueByRoom(ctx, from, to)
	if err != nil {
		return nil, err
	}

	byRoom := make([]map[string]any, 0, len(rooms))
	for _, room := range rooms {
		byRoom = append(byRoom, map[string]any{
			"room":     room.Room,
			"bookings": room.Bookings,
			"revenue":  room.Revenue,
		})
	}

	return map[string]any{
		"startDate":    argString(args, "startDate", ""),
		"endDate":      argString(args, "endDate", ""),
		"totalRevenue": total,
		"byRoom":       byRoom,
	}, nil
}

func (t *Toolset) searchBookings(ctx context.Context, args map[string]any) (map[string]any, error) {
	query, err := requireString(args, "query")
	if err != nil {
		return nil, err
	}
	status := argString(args, "status", "")
	limit := argInt(args, "limit", searchLimit)
	if limit <= 0 || limit > searchLimit {
		limit = searchLimit
	}

	found, err := t.bookings.Search(ctx, query, status, int64(limit))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"query":    query,
		"count":    len(found),
		"bookings": bookingSummaries(found),
	}, nil
}

func (t *Toolset) getBookingDetails(ctx context.Context, args map[string]any) (map[string]any, error) {
	id, err := requireString(args, "bookingId")
	if err != nil {
		return nil, err
	}

	b, err := t.bookings.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("Booking not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"id":              b.ID,
		"reference":       b.Reference,
		"guestName":       b.GuestName(),
		"guestEmail":      b.GuestEmail,
		"guestPhone":      b.GuestPhone,
		"guestCountry":    b.GuestCountry,
		"room":            b.RoomName,
		"roomNumber":      b.RoomNumber,
		"checkIn":         b.CheckIn.Format("2006-01-02"),
		"checkOut":        b.CheckOut.Format("2006-01-02"),
		"nights":          b.Nights,
		"adults":          b.Adults,
		"children":        b.Children,
		"totalAmount":     b.TotalAmount,
		"bookingStatus":   b.BookingStatus,
		"paymentStatus":   b.PaymentStatus,
		"paymentMethod":   b.PaymentMethod,
		"bookingSource":   b.BookingSource,
		"specialRequests": b.SpecialRequests,
		"createdAt":       b.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (t *Toolset) getRecentBookings(ctx context.Context, args map[string]any) (map[string]any, error) {
	limit := argInt(args, "limit", 5)
	if limit <= 0 || limit > searchLimit {
		limit = 5
	}

	found, err := t.bookings.ListRecent(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"count":    len(found),
		"bookings": bookingSummaries(found),
	}, nil
}

// getTodaySnapshot fans its six independent reads out concurrently and joins
// on completion; there is no ordering dependency between them.
func (t *Toolset) getTodaySnapshot(ctx context.Context, args map[string]any) (map[string]any, error) {
	now := t.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var (
		arrivals, departures, created, pendingPay, inHouse int64
		revenue                                            float64
		errs                                               [6]error
		wg                                                 sync.WaitGroup
	)

	wg.Add(6)
	go func() { defer wg.Done(); arrivals, errs[0] = t.bookings.CountArrivalsOn(ctx, now) }()
	go func() { defer wg.Done(); departures, errs[1] = t.bookings.CountDeparturesOn(ctx, now) }()
	go func() { defer wg.Done(); created, errs[2] = t.bookings.CountCreatedOn(ctx, now) }()
	go func() { defer wg.Done(); pendingPay, errs[3] = t.bookings.CountPendingPayments(ctx) }()
	go func() { defer wg.Done(); inHouse, errs[4] = t.bookings.CountInHouse(ctx) }()
	go func() { defer wg.Done(); revenue, errs[5] = t.bookings.PaidRevenueBetween(ctx, dayStart, dayEnd) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return map[string]any{
		"date":            dayStart.Format("2006-01-02"),
		"arrivals":        arrivals,
		"departures":      departures,
		"newBookings":     created,
		"pendingPayments": pendingPay,
		"inHouse":         inHouse,
		"revenueToday":    revenue,
	}, nil
}

func (t *Toolset) getBookingSources(ctx context.Context, args map[string]any) (map[string]any, error) {
	period := argString(args, "period", "month")
	since, err := t.periodStart(period)
	if err != nil {
		return nil, err
	}

	rows, err := t.bookings.CountBySourceSince(ctx, since)
	if err != nil {
		return nil, err
	}

	sources := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, map[string]any{
			"source":   row.Source,
			"bookings": row.Count,
			"revenue":  row.Revenue,
		})
	}
	return map[string]any{
		"period":  period,
		"sources": sources,
	}, nil
}

// bookingSummaries shapes bookings into compact summaries; raw documents are
// never returned to the model.
func bookingSummaries(bookings []models.Booking) []map[string]any {
	out := make([]map[string]any, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		out = append(out, map[string]any{
			"id":            b.ID,
			"reference":     b.Reference,
			"guestName":     b.GuestName(),
			"guestEmail":    b.GuestEmail,
			"room":          b.RoomName,
			"checkIn":       b.CheckIn.Format("2006-01-02"),
			"checkOut":      b.CheckOut.Format("2006-01-02"),
			"nights":        b.Nights,
			"totalAmount":   b.TotalAmount,
			"bookingStatus": b.BookingStatus,
			"paymentStatus": b.PaymentStatus,
		})
	}
	return out
}
