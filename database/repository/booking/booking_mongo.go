package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"harborview/database"
	"harborview/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// opContext derives a bounded context for a single repository operation.
func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reference", Value: 1}}},
		{Keys: bson.D{{Key: "guest_email", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "check_in", Value: 1}}},
		{Keys: bson.D{{Key: "check_out", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID, falling back to the payment reference.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		err = r.coll.FindOne(ctx, bson.M{"reference": id}).Decode(&b)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Insert stores a new booking record.
func (r *MongoBookingRepo) Insert(ctx context.Context, b *models.Booking) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// UpdateBookingStatus sets booking_status on a single record.
func (r *MongoBookingRepo) UpdateBookingStatus(ctx context.Context, id, status string) error {
	return r.setField(ctx, id, "booking_status", status)
}

// UpdatePaymentStatus sets payment_status on a single record.
func (r *MongoBookingRepo) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	return r.setField(ctx, id, "payment_status", status)
}

// setField performs a single-field $set on one booking document. The two
// status axes stay independent because each mutation writes exactly one field.
func (r *MongoBookingRepo) setField(ctx context.Context, id, field, value string) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AppendSpecialRequest appends an audit note to special_requests without
// overwriting what is already there.
func (r *MongoBookingRepo) AppendSpecialRequest(ctx context.Context, id, note string) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	b, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	updated := note
	if b.SpecialRequests != "" {
		updated = b.SpecialRequests + "\n" + note
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": b.ID},
		bson.M{"$set": bson.M{"special_requests": updated}})
	if err != nil {
		return fmt.Errorf("failed to append special request: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Search matches the query against guest identity fields and the payment
// reference, newest first.
func (r *MongoBookingRepo) Search(ctx context.Context, query, status string, limit int64) ([]models.Booking, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	regex := bson.M{"$regex": query, "$options": "i"}
	// Concatenated full-name matches ("jane doe") span two fields, so the
	// full name is rebuilt with $concat for the regex to see across them.
	fullName := bson.M{"$expr": bson.M{"$regexMatch": bson.M{
		"input":   bson.M{"$concat": bson.A{"$guest_first_name", " ", "$guest_last_name"}},
		"regex":   query,
		"options": "i",
	}}}
	filter := bson.M{
		"$or": []bson.M{
			{"guest_first_name": regex},
			{"guest_last_name": regex},
			fullName,
			{"guest_email": regex},
			{"guest_phone": regex},
			{"reference": regex},
		},
	}
	if status != "" {
		filter["booking_status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("booking search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding search results: %w", err)
	}
	return out, nil
}

// ListRecent returns the most recently created bookings.
func (r *MongoBookingRepo) ListRecent(ctx context.Context, limit int64) ([]models.Booking, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding recent bookings: %w", err)
	}
	return out, nil
}

// ListByGuestEmail returns every booking for a guest email, oldest first.
func (r *MongoBookingRepo) ListByGuestEmail(ctx context.Context, email string) ([]models.Booking, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"guest_email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list guest bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding guest bookings: %w", err)
	}
	return out, nil
}
