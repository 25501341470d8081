package bookingRepo

import (
	"context"
	"time"

	"harborview/models"
)

// StatusCount is one grouped aggregation row over booking_status.
type StatusCount struct {
	Status  string  `bson:"_id"`
	Count   int     `bson:"count"`
	Revenue float64 `bson:"revenue"`
}

// PaymentCount is one grouped aggregation row over payment_status.
type PaymentCount struct {
	Status string  `bson:"_id"`
	Count  int     `bson:"count"`
	Amount float64 `bson:"amount"`
}

// RoomRevenue is paid revenue grouped by room name.
type RoomRevenue struct {
	Room     string  `bson:"_id"`
	Bookings int     `bson:"bookings"`
	Revenue  float64 `bson:"revenue"`
}

// DayCount is a per-day bucket count (date formatted YYYY-MM-DD).
type DayCount struct {
	Date  string `bson:"_id"`
	Count int    `bson:"count"`
}

// SourceCount is one grouped aggregation row over booking_source.
type SourceCount struct {
	Source  string  `bson:"_id"`
	Count   int     `bson:"count"`
	Revenue float64 `bson:"revenue"`
}

// GuestGroup aggregates a guest's paid bookings.
type GuestGroup struct {
	Email    string  `bson:"_id"`
	Name     string  `bson:"name"`
	Bookings int     `bson:"bookings"`
	Nights   int     `bson:"nights"`
	Revenue  float64 `bson:"revenue"`
}

// BookingRepository defines data access for booking records. Mutations are
// single-document, single-field writes; the two status axes are never touched
// by the same operation.
type BookingRepository interface {
	// GetByID retrieves a booking by its ID, falling back to the payment
	// reference when no ID matches. Returns mongo.ErrNoDocuments when absent.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Insert stores a new booking record.
	Insert(ctx context.Context, b *models.Booking) error
	// UpdateBookingStatus sets booking_status on one record.
	UpdateBookingStatus(ctx context.Context, id, status string) error
	// UpdatePaymentStatus sets payment_status on one record.
	UpdatePaymentStatus(ctx context.Context, id, status string) error
	// AppendSpecialRequest appends a note to the special_requests field
	// without overwriting existing content.
	AppendSpecialRequest(ctx context.Context, id, note string) error

	// CountByStatusSince groups bookings created since the given time by
	// booking_status with per-status count and revenue.
	CountByStatusSince(ctx context.Context, since time.Time) ([]StatusCount, error)
	// PaymentSummarySince groups bookings created since the given time by
	// payment_status with per-status count and amount.
	PaymentSummarySince(ctx context.Context, since time.Time) ([]PaymentCount, error)
	// CountBySourceSince groups bookings created since the given time by
	// booking_source with per-source count and revenue.
	CountBySourceSince(ctx context.Context, since time.Time) ([]SourceCount, error)
	// Search matches the query case-insensitively against guest name (first,
	// last and full), email, phone and payment reference. The optional status
	// filter is ANDed on. Results are newest first, capped at limit.
	Search(ctx context.Context, query, status string, limit int64) ([]models.Booking, error)
	// ListRecent returns the most recently created bookings.
	ListRecent(ctx context.Context, limit int64) ([]models.Booking, error)
	// ListByGuestEmail returns every booking for a guest email, oldest first.
	ListByGuestEmail(ctx context.Context, email string) ([]models.Booking, error)

	// PaidRevenueBetween sums total_amount over paid bookings whose creation
	// time falls in [from, to).
	PaidRevenueBetween(ctx context.Context, from, to time.Time) (float64, error)
	// PaidRevenueByRoom breaks paid revenue in [from, to) down by room name.
	PaidRevenueByRoom(ctx context.Context, from, to time.Time) ([]RoomRevenue, error)
	// GroupPaidByGuest aggregates all paid bookings grouped by guest email.
	GroupPaidByGuest(ctx context.Context) ([]GuestGroup, error)

	// CountArrivalsOn counts confirmed or checked-in bookings arriving on day.
	CountArrivalsOn(ctx context.Context, day time.Time) (int64, error)
	// CountDeparturesOn counts confirmed or checked-in bookings leaving on day.
	CountDeparturesOn(ctx context.Context, day time.Time) (int64, error)
	// CountCreatedOn counts bookings created on day.
	CountCreatedOn(ctx context.Context, day time.Time) (int64, error)
	// CountPendingPayments counts bookings with payment_status pending.
	CountPendingPayments(ctx context.Context) (int64, error)
	// CountInHouse counts bookings with booking_status checked_in.
	CountInHouse(ctx context.Context) (int64, error)

	// CheckInsPerDay buckets check-ins per day over [from, to).
	CheckInsPerDay(ctx context.Context, from, to time.Time) ([]DayCount, error)
	// CheckOutsPerDay buckets check-outs per day over [from, to).
	CheckOutsPerDay(ctx context.Context, from, to time.Time) ([]DayCount, error)
	// OnTheBooksRevenue sums total_amount over non-cancelled bookings whose
	// stay starts in [from, to), regardless of payment status.
	OnTheBooksRevenue(ctx context.Context, from, to time.Time) (float64, error)
	// CountOverlapping counts bookings whose stay overlaps [from, to).
	CountOverlapping(ctx context.Context, from, to time.Time) (int64, error)
}
