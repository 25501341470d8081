package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"harborview/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CountByStatusSince groups bookings created since the given time by
// booking_status, with count and revenue per status group.
func (r *MongoBookingRepo) CountByStatusSince(ctx context.Context, since time.Time) ([]StatusCount, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$booking_status",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("status aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []StatusCount
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding status aggregation: %w", err)
	}
	return results, nil
}

// PaymentSummarySince groups bookings created since the given time by
// payment_status, with count and amount per group.
func (r *MongoBookingRepo) PaymentSummarySince(ctx context.Context, since time.Time) ([]PaymentCount, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$payment_status",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("payment aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []PaymentCount
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding payment aggregation: %w", err)
	}
	return results, nil
}

// CountBySourceSince groups bookings created since the given time by
// booking_source, with count and revenue per source.
func (r *MongoBookingRepo) CountBySourceSince(ctx context.Context, since time.Time) ([]SourceCount, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$booking_source",
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total_amount"},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("source aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []SourceCount
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding source aggregation: %w", err)
	}
	return results, nil
}

// PaidRevenueBetween sums total_amount over paid bookings created in [from, to).
func (r *MongoBookingRepo) PaidRevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return r.sumAmount(ctx, bson.M{
		"payment_status": models.PaymentStatusPaid,
		"created_at":     bson.M{"$gte": from, "$lt": to},
	})
}

// OnTheBooksRevenue sums total_amount over non-cancelled bookings whose stay
// starts in [from, to), regardless of payment status.
func (r *MongoBookingRepo) OnTheBooksRevenue(ctx context.Context, from, to time.Time) (float64, error) {
	return r.sumAmount(ctx, bson.M{
		"booking_status": bson.M{"$ne": models.BookingStatusCancelled},
		"check_in":       bson.M{"$gte": from, "$lt": to},
	})
}

func (r *MongoBookingRepo) sumAmount(ctx context.Context, match bson.M) (float64, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("revenue aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding revenue aggregation: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// PaidRevenueByRoom breaks paid revenue in [from, to) down by room name.
func (r *MongoBookingRepo) PaidRevenueByRoom(ctx context.Context, from, to time.Time) ([]RoomRevenue, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"payment_status": models.PaymentStatusPaid,
			"created_at":     bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$room_name",
			"bookings": bson.M{"$sum": 1},
			"revenue":  bson.M{"$sum": "$total_amount"},
		}}},
		{{Key: "$sort", Value: bson.M{"revenue": -1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("room revenue aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []RoomRevenue
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding room revenue aggregation: %w", err)
	}
	return results, nil
}

// GroupPaidByGuest aggregates all paid bookings grouped by guest email.
// Guests without a single paid booking do not appear.
func (r *MongoBookingRepo) GroupPaidByGuest(ctx context.Context) ([]GuestGroup, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"payment_status": models.PaymentStatusPaid}}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$guest_email",
			"name":     bson.M{"$first": "$guest_first_name"},
			"bookings": bson.M{"$sum": 1},
			"nights":   bson.M{"$sum": "$nights"},
			"revenue":  bson.M{"$sum": "$total_amount"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("guest aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []GuestGroup
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding guest aggregation: %w", err)
	}
	return results, nil
}

// CountArrivalsOn counts confirmed or checked-in bookings arriving on day.
func (r *MongoBookingRepo) CountArrivalsOn(ctx context.Context, day time.Time) (int64, error) {
	start, end := dayWindow(day)
	return r.count(ctx, bson.M{
		"check_in":       bson.M{"$gte": start, "$lt": end},
		"booking_status": bson.M{"$in": []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}},
	})
}

// CountDeparturesOn counts confirmed or checked-in bookings leaving on day.
func (r *MongoBookingRepo) CountDeparturesOn(ctx context.Context, day time.Time) (int64, error) {
	start, end := dayWindow(day)
	return r.count(ctx, bson.M{
		"check_out":      bson.M{"$gte": start, "$lt": end},
		"booking_status": bson.M{"$in": []string{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}},
	})
}

// CountCreatedOn counts bookings created on day.
func (r *MongoBookingRepo) CountCreatedOn(ctx context.Context, day time.Time) (int64, error) {
	start, end := dayWindow(day)
	return r.count(ctx, bson.M{"created_at": bson.M{"$gte": start, "$lt": end}})
}

// CountPendingPayments counts bookings still awaiting payment.
func (r *MongoBookingRepo) CountPendingPayments(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"payment_status": models.PaymentStatusPending})
}

// CountInHouse counts currently checked-in bookings.
func (r *MongoBookingRepo) CountInHouse(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"booking_status": models.BookingStatusCheckedIn})
}

// CountOverlapping counts bookings whose stay overlaps [from, to).
func (r *MongoBookingRepo) CountOverlapping(ctx context.Context, from, to time.Time) (int64, error) {
	return r.count(ctx, bson.M{
		"booking_status": bson.M{"$ne": models.BookingStatusCancelled},
		"check_in":       bson.M{"$lt": to},
		"check_out":      bson.M{"$gt": from},
	})
}

func (r *MongoBookingRepo) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count error: %w", err)
	}
	return n, nil
}

// CheckInsPerDay buckets check-ins per day over [from, to).
func (r *MongoBookingRepo) CheckInsPerDay(ctx context.Context, from, to time.Time) ([]DayCount, error) {
	return r.perDay(ctx, "check_in", from, to)
}

// CheckOutsPerDay buckets check-outs per day over [from, to).
func (r *MongoBookingRepo) CheckOutsPerDay(ctx context.Context, from, to time.Time) ([]DayCount, error) {
	return r.perDay(ctx, "check_out", from, to)
}

func (r *MongoBookingRepo) perDay(ctx context.Context, field string, from, to time.Time) ([]DayCount, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			field:            bson.M{"$gte": from, "$lt": to},
			"booking_status": bson.M{"$ne": models.BookingStatusCancelled},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$" + field}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("per-day aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []DayCount
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding per-day aggregation: %w", err)
	}
	return results, nil
}

// dayWindow returns [midnight, midnight+24h) around the given time.
func dayWindow(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
