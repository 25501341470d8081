package assistant

import (
	"context"
	"sort"
	"time"

	bookingRepo "harborview/database/repository/booking"
	"harborview/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// fakeBookingRepo is an in-memory stand-in for the Mongo booking repository.
// Aggregation results are preset per test; mutations are recorded for
// assertions. Methods that need window-sensitive behavior take a hook.
type fakeBookingRepo struct {
	bookings map[string]*models.Booking

	statusRows  []bookingRepo.StatusCount
	paymentRows []bookingRepo.PaymentCount
	sourceRows  []bookingRepo.SourceCount
	searchHits  []models.Booking
	recent      []models.Booking
	byEmail     map[string][]models.Booking
	roomRows    []bookingRepo.RoomRevenue
	guestGroups     []bookingRepo.GuestGroup
	guestGroupCalls int
	checkIns    []bookingRepo.DayCount
	checkOuts   []bookingRepo.DayCount

	arrivals    int64
	departures  int64
	createdOn   int64
	pendingPays int64
	inHouse     int64
	paidRevenue float64

	otbFn     func(from, to time.Time) (float64, error)
	overlapFn func(from, to time.Time) (int64, error)

	statusUpdates  map[string]string
	paymentUpdates map[string]string
	notes          map[string][]string

	err error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:       map[string]*models.Booking{},
		byEmail:        map[string][]models.Booking{},
		statusUpdates:  map[string]string{},
		paymentUpdates: map[string]string{},
		notes:          map[string][]string{},
	}
}

func (f *fakeBookingRepo) add(b models.Booking) {
	f.bookings[b.ID] = &b
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if b, ok := f.bookings[id]; ok {
		return b, nil
	}
	for _, b := range f.bookings {
		if b.Reference == id {
			return b, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	if f.err != nil {
		return f.err
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(ctx context.Context, id, status string) error {
	if f.err != nil {
		return f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	b.BookingStatus = status
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	if f.err != nil {
		return f.err
	}
	b, ok := f.bookings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	b.PaymentStatus = status
	f.paymentUpdates[id] = status
	return nil
}

func (f *fakeBookingRepo) AppendSpecialRequest(ctx context.Context, id, note string) error {
	if f.err != nil {
		return f.err
	}
	f.notes[id] = append(f.notes[id], note)
	return nil
}

// CountByStatusSince returns the preset rows when given, otherwise groups the
// stored bookings so mutation-then-read scenarios see their own writes.
func (f *fakeBookingRepo) CountByStatusSince(ctx context.Context, since time.Time) ([]bookingRepo.StatusCount, error) {
	if f.err != nil || f.statusRows != nil {
		return f.statusRows, f.err
	}
	grouped := map[string]*bookingRepo.StatusCount{}
	var order []string
	for _, b := range f.bookings {
		if b.CreatedAt.Before(since) {
			continue
		}
		row, ok := grouped[b.BookingStatus]
		if !ok {
			row = &bookingRepo.StatusCount{Status: b.BookingStatus}
			grouped[b.BookingStatus] = row
			order = append(order, b.BookingStatus)
		}
		row.Count++
		row.Revenue += b.TotalAmount
	}
	sort.Strings(order)
	rows := make([]bookingRepo.StatusCount, 0, len(order))
	for _, status := range order {
		rows = append(rows, *grouped[status])
	}
	return rows, nil
}

func (f *fakeBookingRepo) PaymentSummarySince(ctx context.Context, since time.Time) ([]bookingRepo.PaymentCount, error) {
	return f.paymentRows, f.err
}

func (f *fakeBookingRepo) CountBySourceSince(ctx context.Context, since time.Time) ([]bookingRepo.SourceCount, error) {
	return f.sourceRows, f.err
}

func (f *fakeBookingRepo) Search(ctx context.Context, query, status string, limit int64) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	hits := f.searchHits
	if int64(len(hits)) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (f *fakeBookingRepo) ListRecent(ctx context.Context, limit int64) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.recent
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByGuestEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return f.byEmail[email], f.err
}

func (f *fakeBookingRepo) PaidRevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return f.paidRevenue, f.err
}

func (f *fakeBookingRepo) PaidRevenueByRoom(ctx context.Context, from, to time.Time) ([]bookingRepo.RoomRevenue, error) {
	return f.roomRows, f.err
}

func (f *fakeBookingRepo) GroupPaidByGuest(ctx context.Context) ([]bookingRepo.GuestGroup, error) {
	f.guestGroupCalls++
	return f.guestGroups, f.err
}

func (f *fakeBookingRepo) CountArrivalsOn(ctx context.Context, day time.Time) (int64, error) {
	return f.arrivals, f.err
}

func (f *fakeBookingRepo) CountDeparturesOn(ctx context.Context, day time.Time) (int64, error) {
	return f.departures, f.err
}

func (f *fakeBookingRepo) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	return f.createdOn, f.err
}

func (f *fakeBookingRepo) CountPendingPayments(ctx context.Context) (int64, error) {
	return f.pendingPays, f.err
}

func (f *fakeBookingRepo) CountInHouse(ctx context.Context) (int64, error) {
	return f.inHouse, f.err
}

func (f *fakeBookingRepo) CheckInsPerDay(ctx context.Context, from, to time.Time) ([]bookingRepo.DayCount, error) {
	return f.checkIns, f.err
}

func (f *fakeBookingRepo) CheckOutsPerDay(ctx context.Context, from, to time.Time) ([]bookingRepo.DayCount, error) {
	return f.checkOuts, f.err
}

func (f *fakeBookingRepo) OnTheBooksRevenue(ctx context.Context, from, to time.Time) (float64, error) {
	if f.otbFn != nil {
		return f.otbFn(from, to)
	}
	return 0, f.err
}

func (f *fakeBookingRepo) CountOverlapping(ctx context.Context, from, to time.Time) (int64, error) {
	if f.overlapFn != nil {
		return f.overlapFn(from, to)
	}
	return 0, f.err
}

// fakeInsightRepo keeps insights in insertion order.
type fakeInsightRepo struct {
	saved []models.Insight
	hits  []models.Insight
	err   error
}

func (f *fakeInsightRepo) Save(ctx context.Context, insight *models.Insight) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *insight)
	return nil
}

func (f *fakeInsightRepo) Search(ctx context.Context, query, category string, limit int64) ([]models.Insight, error) {
	return f.hits, f.err
}

func (f *fakeInsightRepo) ListRecent(ctx context.Context, limit int64) ([]models.Insight, error) {
	return f.saved, f.err
}

// fakeQueue records enqueued tasks.
type fakeQueue struct {
	taskTypes []string
	payloads  []any
	err       error
}

func (f *fakeQueue) Enqueue(ctx context.Context, taskType string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.taskTypes = append(f.taskTypes, taskType)
	f.payloads = append(f.payloads, payload)
	return nil
}

// fakeResultCache is an in-memory ResultCache recording stored TTLs.
type fakeResultCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{
		entries: map[string][]byte{},
		ttls:    map[string]time.Duration{},
	}
}

func (f *fakeResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	return f.entries[key], nil
}

func (f *fakeResultCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

// testNow is the fixed clock used across tool tests: a Wednesday mid-month.
var testNow = time.Date(2025, time.June, 18, 15, 30, 0, 0, time.UTC)

func newTestToolset(t interface{ Fatalf(string, ...any) }, bookings *fakeBookingRepo, insights *fakeInsightRepo, queue *fakeQueue) *Toolset {
	if bookings == nil {
		bookings = newFakeBookingRepo()
	}
	if insights == nil {
		insights = &fakeInsightRepo{}
	}
	if queue == nil {
		queue = &fakeQueue{}
	}
	ts, err := NewToolset(bookings, insights, queue, nil)
	if err != nil {
		t.Fatalf("NewToolset: %v", err)
	}
	ts.now = func() time.Time { return testNow }
	return ts
}
