package insightRepo

import (
	"context"

	"harborview/models"
)

// InsightRepository stores assistant insights. Records are created and
// queried, never mutated or deleted.
type InsightRepository interface {
	// Save inserts a new insight record.
	Save(ctx context.Context, insight *models.Insight) error
	// Search matches the query against insight content or tags, optionally
	// filtered by category, sorted by importance then recency, capped at limit.
	Search(ctx context.Context, query, category string, limit int64) ([]models.Insight, error)
	// ListRecent returns the most recently saved insights.
	ListRecent(ctx context.Context, limit int64) ([]models.Insight, error)
}
