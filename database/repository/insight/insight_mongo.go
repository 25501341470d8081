package insightRepo

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

// MongoInsightRepo implements InsightRepository using MongoDB.
type MongoInsightRepo struct {
	coll *mongo.Collection
}

// NewMongoInsightRepo creates a new instance of InsightRepository using MongoDB.
func NewMongoInsightRepo() InsightRepository {
	repo := &MongoInsightRepo{coll: database.Collection("insights")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create insight indexes: %v\n", err)
	}
	return repo
}

func (r *MongoInsightRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Save inserts a new insight record.
func (r *MongoInsightRepo) Save(ctx context.Context, insight *models.Insight) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, insight); err != nil {
		return fmt.Errorf("failed to save insight: %w", err)
	}
	return nil
}

// Search matches the query against content or tags, sorted by importance
// descending then recency, capped at limit.
func (r *MongoInsightRepo) Search(ctx context.Context, query, category string, limit int64) ([]models.Insight, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	regex := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{
		"$or": []bson.M{
			{"content": regex},
			{"tags": regex},
		},
	}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "importance", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("insight search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Insight
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding insights: %w", err)
	}
	return out, nil
}

// ListRecent returns the most recently saved insights.
func (r *MongoInsightRepo) ListRecent(ctx context.Context, limit int64) ([]models.Insight, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Insight
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding insights: %w", err)
	}
	return out, nil
}
